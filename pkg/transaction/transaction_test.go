package transaction

import (
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chainsafe/token-bridge-validator/pkg/token"
)

func newLock() *BridgeTransaction {
	return New(Key{
		BridgeTxHash:  "0xabc",
		Type:          TypeLock,
		SourceChainID: 4,
		TargetChainID: 3,
	}, "0x3C44CdDdB6a900fa2b585dd299e03d12FA4293BC", "0x59F2f1fCfE2474fD5F0b9BA1E73ca90b143Eb8d0", big.NewInt(10))
}

func TestNew_StartsWaitingFinality(t *testing.T) {
	tx := newLock()

	assert.Equal(t, StatusWaitingFinality, tx.Status)
	assert.Equal(t, NotAvailable, tx.TargetToken)
	assert.Empty(t, tx.Signatures)
	assert.Equal(t, "10", tx.Amount.String())
}

func TestCanTransition(t *testing.T) {
	all := []Status{StatusWaitingFinality, StatusWaitingClaim, StatusClaimed, StatusFailed}
	allowed := map[[2]Status]bool{
		{StatusWaitingFinality, StatusWaitingClaim}: true,
		{StatusWaitingFinality, StatusFailed}:       true,
		{StatusWaitingClaim, StatusClaimed}:         true,
	}

	for _, from := range all {
		for _, to := range all {
			assert.Equal(t, allowed[[2]Status{from, to}], CanTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestBridgeTransaction_HappyPath(t *testing.T) {
	tx := newLock()

	require.NoError(t, tx.MarkClaimable("0xWrapped", []string{"0xsig"}))
	assert.Equal(t, StatusWaitingClaim, tx.Status)
	assert.Equal(t, "0xWrapped", tx.TargetToken)
	assert.Equal(t, []string{"0xsig"}, tx.Signatures)

	require.NoError(t, tx.MarkClaimed("0xclaim"))
	assert.Equal(t, StatusClaimed, tx.Status)
	assert.Equal(t, "0xclaim", tx.ClaimTxHash)
}

func TestBridgeTransaction_FailedIsTerminal(t *testing.T) {
	tx := newLock()
	require.NoError(t, tx.MarkFailed())

	err := tx.MarkClaimable("0xWrapped", []string{"0xsig"})
	require.True(t, errors.Is(err, ErrInvalidTransition))
	assert.Empty(t, tx.Signatures)

	err = tx.MarkClaimed("0xclaim")
	require.True(t, errors.Is(err, ErrInvalidTransition))
	assert.True(t, tx.Status.IsTerminal())
}

func TestBridgeTransaction_CannotClaimBeforeFinality(t *testing.T) {
	tx := newLock()

	err := tx.MarkClaimed("0xclaim")
	require.ErrorIs(t, err, ErrInvalidTransition)
	assert.Equal(t, StatusWaitingFinality, tx.Status)
	assert.Empty(t, tx.ClaimTxHash)
}

func TestParseType(t *testing.T) {
	typ, err := ParseType("lock")
	require.NoError(t, err)
	assert.Equal(t, TypeLock, typ)

	typ, err = ParseType("BURN")
	require.NoError(t, err)
	assert.Equal(t, TypeBurn, typ)

	_, err = ParseType("mint")
	require.Error(t, err)
}

func TestNewView(t *testing.T) {
	tx := newLock()
	tx.Amount = big.NewInt(1_500_000)
	names := map[uint64]string{4: "Rinkeby"}
	src := &token.SupportedToken{ChainID: 4, Token: tx.SourceToken, Name: "Token", Symbol: "TKN", Decimals: 6}

	v := NewView(tx, names, src, nil)

	assert.Equal(t, Chain{ChainID: 4, ChainName: "Rinkeby"}, v.SourceChain)
	assert.Equal(t, UnknownChain, v.TargetChain)
	assert.Equal(t, "1500000", v.Amount)
	assert.Equal(t, "1.5", v.FormattedAmount)
	assert.Equal(t, "TKN", v.SourceToken.Symbol)
	assert.Equal(t, token.SupportedToken{ChainID: 3, Token: NotAvailable}, v.TargetToken)
}

func TestIsTxHash(t *testing.T) {
	assert.True(t, IsTxHash("0x"+strings.Repeat("ab", 32)))
	assert.False(t, IsTxHash(strings.Repeat("ab", 32)))
	assert.False(t, IsTxHash("0x"+strings.Repeat("ab", 31)))
	assert.False(t, IsTxHash("0x"+strings.Repeat("zz", 32)))
}

func TestPredecessors(t *testing.T) {
	assert.ElementsMatch(t, []Status{StatusWaitingClaim, StatusWaitingFinality}, Predecessors(StatusWaitingClaim))
	assert.ElementsMatch(t, []Status{StatusClaimed, StatusWaitingClaim}, Predecessors(StatusClaimed))
	assert.ElementsMatch(t, []Status{StatusFailed, StatusWaitingFinality}, Predecessors(StatusFailed))
	assert.ElementsMatch(t, []Status{StatusWaitingFinality}, Predecessors(StatusWaitingFinality))
}
