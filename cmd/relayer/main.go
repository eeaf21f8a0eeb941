package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/chainsafe/token-bridge-validator/pkg/app"
	"github.com/chainsafe/token-bridge-validator/pkg/app/relayer"
	"github.com/chainsafe/token-bridge-validator/pkg/config"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	var runner app.Runner = relayer.NewServer(cfg)
	if err := runner.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Relayer exited with error: %v\n", err)
		os.Exit(1)
	}
}
