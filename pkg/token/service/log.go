package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	apperrors "github.com/chainsafe/token-bridge-validator/pkg/app/errors"
	"github.com/chainsafe/token-bridge-validator/pkg/token"
)

const serviceName = "TokenService"

// logService wraps Service with logging of every call
type logService struct {
	svc    Service
	logger *zap.Logger
}

// NewLog creates a logging decorator for the token Service.
func NewLog(svc Service, logger *zap.Logger) Service {
	return &logService{
		svc:    svc,
		logger: logger,
	}
}

func (ls *logService) done(method string, start time.Time, err error, fields ...zap.Field) {
	fields = append(fields,
		zap.String("service", serviceName),
		zap.String("method", method),
		zap.Duration("duration", time.Since(start)))
	if err != nil {
		fields = append(fields, zap.Error(err))
		if apperrors.IsInternalError(err) {
			ls.logger.Error(method+" failed", fields...)
			return
		}
		ls.logger.Warn(method+" rejected", fields...)
		return
	}
	ls.logger.Debug(method+" completed", fields...)
}

func (ls *logService) EnsureTokenIsSupported(ctx context.Context, chainID uint64, address string) (st *token.SupportedToken, err error) {
	defer func(start time.Time) {
		ls.done("EnsureTokenIsSupported", start, err, zap.Uint64("chain_id", chainID), zap.String("token", address))
	}(time.Now())
	return ls.svc.EnsureTokenIsSupported(ctx, chainID, address)
}

func (ls *logService) GetSupportedTokens(ctx context.Context, chainID uint64) (tokens []*token.SupportedToken, err error) {
	defer func(start time.Time) {
		ls.done("GetSupportedTokens", start, err, zap.Uint64("chain_id", chainID), zap.Int("count", len(tokens)))
	}(time.Now())
	return ls.svc.GetSupportedTokens(ctx, chainID)
}

func (ls *logService) GetSupportedToken(ctx context.Context, chainID uint64, address string) (st *token.SupportedToken, err error) {
	defer func(start time.Time) {
		ls.done("GetSupportedToken", start, err, zap.Uint64("chain_id", chainID), zap.String("token", address))
	}(time.Now())
	return ls.svc.GetSupportedToken(ctx, chainID, address)
}

func (ls *logService) CreateSupportedToken(ctx context.Context, chainID uint64, address string) (st *token.SupportedToken, err error) {
	ls.logger.Info("CreateSupportedToken started",
		zap.String("service", serviceName),
		zap.String("method", "CreateSupportedToken"),
		zap.Uint64("chain_id", chainID),
		zap.String("token", address))
	defer func(start time.Time) {
		ls.done("CreateSupportedToken", start, err, zap.Uint64("chain_id", chainID), zap.String("token", address))
	}(time.Now())
	return ls.svc.CreateSupportedToken(ctx, chainID, address)
}
