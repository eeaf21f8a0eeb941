// Package contracts holds minimal go-ethereum bindings for the bridge contract suite.
package contracts

import (
	"fmt"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// bound pairs a parsed ABI with a contract handle.
type bound struct {
	address  common.Address
	abi      *abi.ABI
	contract *bind.BoundContract
}

func newBound(meta *bind.MetaData, address common.Address, backend bind.ContractBackend) (*bound, error) {
	parsed, err := meta.GetAbi()
	if err != nil {
		return nil, fmt.Errorf("failed to parse abi: %w", err)
	}
	return &bound{
		address:  address,
		abi:      parsed,
		contract: bind.NewBoundContract(address, *parsed, backend, backend, backend),
	}, nil
}

// Address returns the contract address.
func (b *bound) Address() common.Address {
	return b.address
}

// EventID returns topic0 of the named event.
func (b *bound) EventID(name string) common.Hash {
	return b.abi.Events[name].ID
}

func (b *bound) call(opts *bind.CallOpts, method string, params ...any) ([]any, error) {
	var out []any
	if err := b.contract.Call(opts, &out, method, params...); err != nil {
		return nil, err
	}
	return out, nil
}

func (b *bound) callAddress(opts *bind.CallOpts, method string, params ...any) (common.Address, error) {
	out, err := b.call(opts, method, params...)
	if err != nil {
		return common.Address{}, err
	}
	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

func (b *bound) unpackLog(out any, event string, log types.Log) error {
	if len(log.Topics) == 0 || log.Topics[0] != b.EventID(event) {
		return fmt.Errorf("log is not a %s event", event)
	}
	return b.contract.UnpackLog(out, event, log)
}
