package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
)

// GovernanceMetaData contains the parts of the Governance ABI the validator uses.
var GovernanceMetaData = &bind.MetaData{
	ABI: `[
	{"name":"nonces","type":"function","stateMutability":"view","inputs":[
		{"name":"owner","type":"address"}],
		"outputs":[{"name":"","type":"uint256"}]}
]`,
}

// Governance binds the governance contract that tracks validators and claim nonces.
type Governance struct {
	*bound
}

// NewGovernance binds a governance contract deployed at address.
func NewGovernance(address common.Address, backend bind.ContractBackend) (*Governance, error) {
	b, err := newBound(GovernanceMetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &Governance{bound: b}, nil
}

// Nonces returns the next claim nonce of owner.
func (g *Governance) Nonces(opts *bind.CallOpts, owner common.Address) (*big.Int, error) {
	out, err := g.call(opts, "nonces", owner)
	if err != nil {
		return nil, err
	}
	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}
