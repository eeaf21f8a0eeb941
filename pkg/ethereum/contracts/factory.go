package contracts

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// EventTokenCreated is emitted by the wrapped token factory.
const EventTokenCreated = "TokenCreated"

// ErrTokenCreatedNotFound is returned when a receipt carries no TokenCreated log.
var ErrTokenCreatedNotFound = errors.New("receipt has no TokenCreated event")

// TokenFactoryMetaData contains the factory event the validator reads from createToken receipts.
var TokenFactoryMetaData = &bind.MetaData{
	ABI: `[
	{"anonymous":false,"name":"TokenCreated","type":"event","inputs":[
		{"indexed":true,"name":"token","type":"address"}]}
]`,
}

// TokenCreatedID is topic0 of TokenCreated(address).
var TokenCreatedID = func() common.Hash {
	parsed, err := TokenFactoryMetaData.GetAbi()
	if err != nil {
		panic(err)
	}
	return parsed.Events[EventTokenCreated].ID
}()

// CreatedTokenFromReceipt returns the token announced by the first TokenCreated log of a receipt.
// The factory is deployed by the bridge, so logs are matched by topic regardless of emitter.
func CreatedTokenFromReceipt(receipt *types.Receipt) (common.Address, error) {
	for _, l := range receipt.Logs {
		if len(l.Topics) >= 2 && l.Topics[0] == TokenCreatedID {
			return common.BytesToAddress(l.Topics[1].Bytes()), nil
		}
	}
	return common.Address{}, ErrTokenCreatedNotFound
}
