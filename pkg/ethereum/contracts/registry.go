package contracts

import (
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EventTokenConnectionRegistered is emitted by the registry for each new token mapping.
const EventTokenConnectionRegistered = "TokenConnectionRegistered"

// RegistryMetaData contains the parts of the Registry ABI the validator uses.
var RegistryMetaData = &bind.MetaData{
	ABI: `[
	{"anonymous":false,"name":"TokenConnectionRegistered","type":"event","inputs":[
		{"indexed":true,"name":"sourceToken","type":"address"},
		{"indexed":true,"name":"targetToken","type":"address"},
		{"indexed":false,"name":"sourceChainId","type":"uint16"},
		{"indexed":false,"name":"targetChainId","type":"uint16"}]},
	{"name":"lookupTargetTokenAddress","type":"function","stateMutability":"view","inputs":[
		{"name":"sourceToken","type":"address"},
		{"name":"targetChainId","type":"uint16"}],
		"outputs":[{"name":"","type":"address"}]},
	{"name":"lookupSourceTokenAddress","type":"function","stateMutability":"view","inputs":[
		{"name":"targetToken","type":"address"},
		{"name":"targetChainId","type":"uint16"}],
		"outputs":[{"name":"","type":"address"}]},
	{"name":"registerTargetTokenAddress","type":"function","stateMutability":"nonpayable","inputs":[
		{"name":"sourceToken","type":"address"},
		{"name":"targetChainId","type":"uint16"},
		{"name":"targetToken","type":"address"}],
		"outputs":[]}
]`,
}

// TokenConnection is a decoded TokenConnectionRegistered event.
type TokenConnection struct {
	SourceToken   common.Address
	TargetToken   common.Address
	SourceChainId uint16 //nolint:revive // matches the abi argument name
	TargetChainId uint16 //nolint:revive // matches the abi argument name
	Raw           types.Log
}

// Registry binds the token registry contract of one chain.
type Registry struct {
	*bound
}

// NewRegistry binds a registry contract deployed at address.
func NewRegistry(address common.Address, backend bind.ContractBackend) (*Registry, error) {
	b, err := newBound(RegistryMetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &Registry{bound: b}, nil
}

// LookupTargetTokenAddress returns the wrapped token for sourceToken on targetChainID, or the zero address.
func (r *Registry) LookupTargetTokenAddress(opts *bind.CallOpts, sourceToken common.Address, targetChainID uint16) (common.Address, error) {
	return r.callAddress(opts, "lookupTargetTokenAddress", sourceToken, targetChainID)
}

// LookupSourceTokenAddress returns the original token behind a wrapped token, or the zero address.
func (r *Registry) LookupSourceTokenAddress(opts *bind.CallOpts, targetToken common.Address, targetChainID uint16) (common.Address, error) {
	return r.callAddress(opts, "lookupSourceTokenAddress", targetToken, targetChainID)
}

// RegisterTargetTokenAddress records a new token connection.
func (r *Registry) RegisterTargetTokenAddress(
	opts *bind.TransactOpts,
	sourceToken common.Address,
	targetChainID uint16,
	targetToken common.Address,
) (*types.Transaction, error) {
	return r.contract.Transact(opts, "registerTargetTokenAddress", sourceToken, targetChainID, targetToken)
}

// ParseTokenConnection decodes a TokenConnectionRegistered log.
func (r *Registry) ParseTokenConnection(log types.Log) (*TokenConnection, error) {
	out := new(TokenConnection)
	if err := r.unpackLog(out, EventTokenConnectionRegistered, log); err != nil {
		return nil, err
	}
	out.Raw = log
	return out, nil
}
