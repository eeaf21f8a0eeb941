package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/token-bridge-validator/pkg/app/errors"
	"github.com/chainsafe/token-bridge-validator/pkg/transaction"
)

const serviceName = "ClaimService"

// logService wraps Service with automatic logging of all method calls
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the claim Service.
// It logs method entry and exit with duration and errors.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

// failed logs internal failures at error level and client errors at warn level.
func (ls *logService) failed(method string, err error, fields []zap.Field) {
	fields = append(fields, zap.Error(err))
	if apperrors.IsInternalError(err) {
		ls.logger.Error(method+" failed", fields...)
		return
	}
	ls.logger.Warn(method+" rejected", fields...)
}

func (ls *logService) GetTransactions(ctx context.Context, account string) (views []transaction.View, err error) {
	start := time.Now()
	defer func() {
		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.String("method", "GetTransactions"),
			zap.String("account", account),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			ls.failed("GetTransactions", err, fields)
			return
		}
		ls.logger.Debug("GetTransactions completed", append(fields, zap.Int("count", len(views)))...)
	}()

	return ls.svc.GetTransactions(ctx, account)
}

func (ls *logService) GetPendingAttestation(ctx context.Context, key transaction.Key) (att *transaction.Attestation, err error) {
	start := time.Now()
	defer func() {
		fields := []zap.Field{
			zap.String("service", serviceName),
			zap.String("method", "GetPendingAttestation"),
			zap.String("bridge_tx_hash", key.BridgeTxHash),
			zap.String("type", string(key.Type)),
			zap.Uint64("source_chain_id", key.SourceChainID),
			zap.Uint64("target_chain_id", key.TargetChainID),
			zap.Duration("duration", time.Since(start)),
		}
		if err != nil {
			ls.failed("GetPendingAttestation", err, fields)
			return
		}
		ls.logger.Debug("GetPendingAttestation completed",
			append(fields, zap.String("status", string(att.Status)), zap.Int("signatures", len(att.Signatures)))...)
	}()

	return ls.svc.GetPendingAttestation(ctx, key)
}

func (ls *logService) AcknowledgeClaim(ctx context.Context, txType transaction.Type, req *transaction.ClaimRequest) (view *transaction.View, err error) {
	start := time.Now()

	ls.logger.Info("AcknowledgeClaim started",
		zap.String("service", serviceName),
		zap.String("method", "AcknowledgeClaim"),
		zap.String("type", string(txType)),
		zap.String("bridge_tx_hash", req.BridgeTxHash),
		zap.String("claim_tx_hash", req.ClaimTxHash),
		zap.Uint64("source_chain_id", req.SourceChainID),
		zap.Uint64("target_chain_id", req.TargetChainID),
	)

	defer func() {
		duration := time.Since(start)
		if err != nil {
			ls.failed("AcknowledgeClaim", err, []zap.Field{
				zap.String("service", serviceName),
				zap.String("method", "AcknowledgeClaim"),
				zap.String("bridge_tx_hash", req.BridgeTxHash),
				zap.Duration("duration", duration),
			})
			return
		}
		ls.logger.Info("AcknowledgeClaim completed",
			zap.String("service", serviceName),
			zap.String("method", "AcknowledgeClaim"),
			zap.String("bridge_tx_hash", req.BridgeTxHash),
			zap.String("status", string(view.Status)),
			zap.Duration("duration", duration),
		)
	}()

	return ls.svc.AcknowledgeClaim(ctx, txType, req)
}
