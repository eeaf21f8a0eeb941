package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// ERC20MetaData contains the ERC-20 metadata getters.
var ERC20MetaData = &bind.MetaData{
	ABI: `[
	{"name":"name","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"name":"symbol","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
	{"name":"decimals","type":"function","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`,
}

// ERC20 binds the metadata getters of an ERC-20 token.
type ERC20 struct {
	*bound
}

// NewERC20 binds a token contract deployed at address.
func NewERC20(address common.Address, backend bind.ContractBackend) (*ERC20, error) {
	b, err := newBound(ERC20MetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &ERC20{bound: b}, nil
}

func (t *ERC20) Name(opts *bind.CallOpts) (string, error) {
	out, err := t.call(opts, "name")
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (t *ERC20) Symbol(opts *bind.CallOpts) (string, error) {
	out, err := t.call(opts, "symbol")
	if err != nil {
		return "", err
	}
	return *abi.ConvertType(out[0], new(string)).(*string), nil
}

func (t *ERC20) Decimals(opts *bind.CallOpts) (uint8, error) {
	out, err := t.call(opts, "decimals")
	if err != nil {
		return 0, err
	}
	return *abi.ConvertType(out[0], new(uint8)).(*uint8), nil
}
