// Package app defines common runtime contracts shared by the executable
// entrypoints under cmd/.
package app

// Runner represents a runnable application component.
type Runner interface {
	Run() error
}
