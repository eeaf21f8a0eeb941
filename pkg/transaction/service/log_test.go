package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	apperrors "github.com/chainsafe/token-bridge-validator/pkg/app/errors"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction/service/mocks"
)

func TestLogService_LevelFollowsErrorCategory(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		level zapcore.Level
		msg   string
	}{
		{
			name:  "missing record",
			err:   apperrors.ResourceNotFoundError(nil, "transaction not found"),
			level: zapcore.WarnLevel,
			msg:   "GetPendingAttestation rejected",
		},
		{
			name:  "bad input",
			err:   apperrors.BadRequestError(errors.New("bad hash"), "invalid bridge_tx_hash"),
			level: zapcore.WarnLevel,
			msg:   "GetPendingAttestation rejected",
		},
		{
			name:  "database down",
			err:   apperrors.GeneralError(errors.New("connection refused")),
			level: zapcore.ErrorLevel,
			msg:   "GetPendingAttestation failed",
		},
		{
			name:  "uncategorised",
			err:   errors.New("boom"),
			level: zapcore.ErrorLevel,
			msg:   "GetPendingAttestation failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, logs := observer.New(zapcore.DebugLevel)
			svc := mocks.NewService(t)
			svc.EXPECT().GetPendingAttestation(mock.Anything, lockKey()).Return(nil, tt.err)

			_, err := NewLog(svc, zap.New(core)).GetPendingAttestation(context.Background(), lockKey())
			require.ErrorIs(t, err, tt.err)

			entries := logs.All()
			require.Len(t, entries, 1)
			assert.Equal(t, tt.level, entries[0].Level)
			assert.Equal(t, tt.msg, entries[0].Message)
			assert.Equal(t, "GetPendingAttestation", entries[0].ContextMap()["method"])
		})
	}
}

func TestLogService_AcknowledgeClaimConflictIsWarn(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	svc := mocks.NewService(t)
	req := &transaction.ClaimRequest{BridgeTxHash: bridgeHash, ClaimTxHash: claimHash, SourceChainID: 4, TargetChainID: 3}
	conflict := apperrors.ConflictError(nil, "transaction is not waiting for a claim")
	svc.EXPECT().AcknowledgeClaim(mock.Anything, transaction.TypeLock, req).Return(nil, conflict)

	_, err := NewLog(svc, zap.New(core)).AcknowledgeClaim(context.Background(), transaction.TypeLock, req)
	require.Error(t, err)

	require.Equal(t, 1, logs.FilterMessage("AcknowledgeClaim rejected").Len())
	assert.Equal(t, zapcore.WarnLevel, logs.FilterMessage("AcknowledgeClaim rejected").All()[0].Level)
	assert.Zero(t, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}
