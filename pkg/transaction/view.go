package transaction

import (
	"math/big"
	"time"

	"github.com/shopspring/decimal"

	"github.com/chainsafe/token-bridge-validator/pkg/token"
)

// Chain is a chain id with its display name.
type Chain struct {
	ChainID   int64  `json:"chainId"`
	ChainName string `json:"chainName"`
}

// UnknownChain is rendered for chain ids missing from configuration.
var UnknownChain = Chain{ChainID: -1, ChainName: "undefined"}

// ChainFor resolves a display chain from the configured names.
func ChainFor(chainID uint64, names map[uint64]string) Chain {
	name, ok := names[chainID]
	if !ok {
		return UnknownChain
	}
	return Chain{ChainID: int64(chainID), ChainName: name}
}

// View is a bridge transaction enriched for display.
type View struct {
	BridgeTxHash    string               `json:"bridgeTxHash"`
	ClaimTxHash     string               `json:"claimTxHash,omitempty"`
	Type            Type                 `json:"txType"`
	Status          Status               `json:"txStatus"`
	From            string               `json:"from"`
	SourceChain     Chain                `json:"sourceChain"`
	TargetChain     Chain                `json:"targetChain"`
	Amount          string               `json:"amount"`
	FormattedAmount string               `json:"formattedAmount,omitempty"`
	SourceToken     token.SupportedToken `json:"sourceToken"`
	TargetToken     token.SupportedToken `json:"targetToken"`
	CreatedAt       time.Time            `json:"createdAt"`
	UpdatedAt       time.Time            `json:"updatedAt"`
}

// NewView builds a display view. Token metadata may be nil when not cached.
func NewView(tx *BridgeTransaction, names map[uint64]string, sourceToken, targetToken *token.SupportedToken) View {
	v := View{
		BridgeTxHash: tx.BridgeTxHash,
		ClaimTxHash:  tx.ClaimTxHash,
		Type:         tx.Type,
		Status:       tx.Status,
		From:         tx.From,
		SourceChain:  ChainFor(tx.SourceChainID, names),
		TargetChain:  ChainFor(tx.TargetChainID, names),
		Amount:       amountString(tx.Amount),
		SourceToken:  tokenOrAddress(tx.SourceChainID, tx.SourceToken, sourceToken),
		TargetToken:  tokenOrAddress(tx.TargetChainID, tx.TargetToken, targetToken),
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
	}
	if sourceToken != nil && tx.Amount != nil {
		v.FormattedAmount = FormatAmount(tx.Amount, sourceToken.Decimals)
	}
	return v
}

// FormatAmount scales a base-unit amount by the token decimals.
func FormatAmount(amount *big.Int, decimals uint8) string {
	return decimal.NewFromBigInt(amount, -int32(decimals)).String()
}

func amountString(amount *big.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.String()
}

func tokenOrAddress(chainID uint64, address string, cached *token.SupportedToken) token.SupportedToken {
	if cached != nil {
		return *cached
	}
	return token.SupportedToken{ChainID: chainID, Token: address}
}

// Attestation is what a user needs to complete a claim on the target chain.
type Attestation struct {
	BridgeTxHash  string   `json:"bridgeTxHash"`
	Type          Type     `json:"txType"`
	Status        Status   `json:"txStatus"`
	From          string   `json:"from"`
	Amount        string   `json:"amount"`
	SourceChainID uint64   `json:"sourceChainId"`
	TargetChainID uint64   `json:"targetChainId"`
	SourceToken   string   `json:"sourceToken"`
	TargetToken   string   `json:"targetToken"`
	Signatures    []string `json:"signatures"`
}

// NewAttestation extracts the claimable parts of a record.
func NewAttestation(tx *BridgeTransaction) Attestation {
	return Attestation{
		BridgeTxHash:  tx.BridgeTxHash,
		Type:          tx.Type,
		Status:        tx.Status,
		From:          tx.From,
		Amount:        amountString(tx.Amount),
		SourceChainID: tx.SourceChainID,
		TargetChainID: tx.TargetChainID,
		SourceToken:   tx.SourceToken,
		TargetToken:   tx.TargetToken,
		Signatures:    tx.Signatures,
	}
}

// ClaimRequest acknowledges the Mint or Release that completed a bridge transaction.
type ClaimRequest struct {
	SourceChainID uint64 `json:"sourceChainId"`
	TargetChainID uint64 `json:"targetChainId"`
	BridgeTxHash  string `json:"bridgeTxHash"`
	ClaimTxHash   string `json:"claimTxHash"`
}
