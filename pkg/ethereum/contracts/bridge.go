package contracts

import (
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Bridge event names.
const (
	EventLock    = "Lock"
	EventBurn    = "Burn"
	EventMint    = "Mint"
	EventRelease = "Release"
)

// BridgeMetaData contains the parts of the Bridge ABI the validator uses.
var BridgeMetaData = &bind.MetaData{
	ABI: `[
	{"anonymous":false,"name":"Lock","type":"event","inputs":[
		{"indexed":true,"name":"from","type":"address"},
		{"indexed":true,"name":"targetChainId","type":"uint16"},
		{"indexed":false,"name":"token","type":"address"},
		{"indexed":false,"name":"amount","type":"uint256"}]},
	{"anonymous":false,"name":"Burn","type":"event","inputs":[
		{"indexed":true,"name":"from","type":"address"},
		{"indexed":true,"name":"targetChainId","type":"uint16"},
		{"indexed":false,"name":"token","type":"address"},
		{"indexed":false,"name":"amount","type":"uint256"}]},
	{"anonymous":false,"name":"Mint","type":"event","inputs":[
		{"indexed":true,"name":"receiver","type":"address"},
		{"indexed":false,"name":"token","type":"address"},
		{"indexed":false,"name":"amount","type":"uint256"}]},
	{"anonymous":false,"name":"Release","type":"event","inputs":[
		{"indexed":true,"name":"receiver","type":"address"},
		{"indexed":false,"name":"token","type":"address"},
		{"indexed":false,"name":"amount","type":"uint256"}]},
	{"name":"governance","type":"function","stateMutability":"view","inputs":[],
		"outputs":[{"name":"","type":"address"}]},
	{"name":"createToken","type":"function","stateMutability":"nonpayable","inputs":[
		{"name":"name","type":"string"},
		{"name":"symbol","type":"string"},
		{"name":"signatures","type":"bytes[]"}],
		"outputs":[{"name":"","type":"address"}]}
]`,
}

// BridgeTransfer is a decoded Lock or Burn event.
type BridgeTransfer struct {
	From          common.Address
	TargetChainId uint16 //nolint:revive // matches the abi argument name
	Token         common.Address
	Amount        *big.Int
	Raw           types.Log
}

// BridgeClaim is a decoded Mint or Release event.
type BridgeClaim struct {
	Receiver common.Address
	Token    common.Address
	Amount   *big.Int
	Raw      types.Log
}

// Bridge binds the bridge contract of one chain.
type Bridge struct {
	*bound
}

// NewBridge binds a bridge contract deployed at address.
func NewBridge(address common.Address, backend bind.ContractBackend) (*Bridge, error) {
	b, err := newBound(BridgeMetaData, address, backend)
	if err != nil {
		return nil, err
	}
	return &Bridge{bound: b}, nil
}

// Governance returns the address of the governance contract the bridge verifies signatures against.
func (b *Bridge) Governance(opts *bind.CallOpts) (common.Address, error) {
	return b.callAddress(opts, "governance")
}

// CreateToken deploys a wrapped token through the bridge's token factory.
func (b *Bridge) CreateToken(opts *bind.TransactOpts, name, symbol string, signatures [][]byte) (*types.Transaction, error) {
	return b.contract.Transact(opts, "createToken", name, symbol, signatures)
}

// ParseTransfer decodes a Lock or Burn log.
func (b *Bridge) ParseTransfer(event string, log types.Log) (*BridgeTransfer, error) {
	out := new(BridgeTransfer)
	if err := b.unpackLog(out, event, log); err != nil {
		return nil, err
	}
	out.Raw = log
	return out, nil
}

// ParseClaim decodes a Mint or Release log.
func (b *Bridge) ParseClaim(event string, log types.Log) (*BridgeClaim, error) {
	out := new(BridgeClaim)
	if err := b.unpackLog(out, event, log); err != nil {
		return nil, err
	}
	out.Raw = log
	return out, nil
}
