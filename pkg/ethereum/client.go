// Package ethereum is the chain gateway: one Client per configured EVM ledger.
package ethereum

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	geth "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"

	"github.com/chainsafe/token-bridge-validator/pkg/config"
	"github.com/chainsafe/token-bridge-validator/pkg/ethereum/contracts"
	"github.com/chainsafe/token-bridge-validator/pkg/token"
)

// Backend is the JSON-RPC surface the client needs. *ethclient.Client satisfies it.
type Backend interface {
	bind.ContractBackend
	BlockNumber(ctx context.Context) (uint64, error)
	ChainID(ctx context.Context) (*big.Int, error)
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
	SubscribeNewHead(ctx context.Context, ch chan<- *types.Header) (geth.Subscription, error)
	Close()
}

// Client represents one EVM chain the validator reads from and writes to
type Client struct {
	config     *config.ChainConfig
	backend    Backend
	heads      Backend
	privateKey *ecdsa.PrivateKey
	address    common.Address
	evmChainID *big.Int
	logger     *zap.Logger

	bridge   *contracts.Bridge
	registry *contracts.Registry

	// serializes nonce assignment for the validator key on this chain
	txMu sync.Mutex
}

// NewClient dials the chain's RPC (and optional WebSocket) endpoint
func NewClient(ctx context.Context, cfg *config.ChainConfig, privateKey *ecdsa.PrivateKey, logger *zap.Logger) (*Client, error) {
	backend, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s RPC: %w", cfg.Name, err)
	}

	var heads Backend
	if cfg.WSURL != "" {
		ws, err := ethclient.DialContext(ctx, cfg.WSURL)
		if err != nil {
			logger.Warn("Failed to connect to WebSocket, falling back to polling",
				zap.String("chain", cfg.Name),
				zap.Error(err))
		} else {
			heads = ws
		}
	}

	c, err := NewClientWithBackend(ctx, cfg, backend, heads, privateKey, logger)
	if err != nil {
		backend.Close()
		if heads != nil {
			heads.Close()
		}
		return nil, err
	}
	return c, nil
}

// NewClientWithBackend builds a client over an existing backend. heads may be nil.
func NewClientWithBackend(
	ctx context.Context,
	cfg *config.ChainConfig,
	backend, heads Backend,
	privateKey *ecdsa.PrivateKey,
	logger *zap.Logger,
) (*Client, error) {
	logger = logger.With(zap.String("chain", cfg.Name), zap.Uint64("chain_id", cfg.ChainID))

	var evmChainID *big.Int
	err := Retry(ctx, CallRetry, logger, "chain_id", func() error {
		var err error
		evmChainID, err = backend.ChainID(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get chain id: %w", err)
	}
	if evmChainID.Uint64() != cfg.ChainID {
		logger.Warn("Configured bridge chain id differs from RPC chain id",
			zap.Uint64("rpc_chain_id", evmChainID.Uint64()))
	}

	bridge, err := contracts.NewBridge(common.HexToAddress(cfg.BridgeContract), backend)
	if err != nil {
		return nil, fmt.Errorf("failed to load bridge contract: %w", err)
	}
	registry, err := contracts.NewRegistry(common.HexToAddress(cfg.RegistryContract), backend)
	if err != nil {
		return nil, fmt.Errorf("failed to load registry contract: %w", err)
	}

	address := crypto.PubkeyToAddress(privateKey.PublicKey)

	logger.Info("Connected to chain",
		zap.String("rpc_url", cfg.RPCURL),
		zap.Bool("websocket", heads != nil),
		zap.String("bridge_contract", bridge.Address().Hex()),
		zap.String("registry_contract", registry.Address().Hex()),
		zap.String("validator_address", address.Hex()))

	return &Client{
		config:     cfg,
		backend:    backend,
		heads:      heads,
		privateKey: privateKey,
		address:    address,
		evmChainID: evmChainID,
		logger:     logger,
		bridge:     bridge,
		registry:   registry,
	}, nil
}

// Close closes the RPC clients
func (c *Client) Close() {
	c.backend.Close()
	if c.heads != nil {
		c.heads.Close()
	}
}

// ChainID returns the bridge chain id used in events and registry lookups.
func (c *Client) ChainID() uint64 {
	return c.config.ChainID
}

// Name returns the configured display name.
func (c *Client) Name() string {
	return c.config.Name
}

// EVMChainID returns the chain id reported by the node, used for signing.
func (c *Client) EVMChainID() *big.Int {
	return new(big.Int).Set(c.evmChainID)
}

// ValidatorAddress returns the address of the validator key.
func (c *Client) ValidatorAddress() common.Address {
	return c.address
}

// GetTransactor returns a transaction signer for the validator key
func (c *Client) GetTransactor(ctx context.Context) (*bind.TransactOpts, error) {
	auth, err := bind.NewKeyedTransactorWithChainID(c.privateKey, c.evmChainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}
	auth.Context = ctx

	nonce, err := c.backend.PendingNonceAt(ctx, c.address)
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce: %w", err)
	}
	auth.Nonce = new(big.Int).SetUint64(nonce)
	auth.GasLimit = c.config.GasLimit

	if c.config.MaxGasPrice != "" {
		maxGasPrice, ok := new(big.Int).SetString(c.config.MaxGasPrice, 10)
		if !ok {
			return nil, fmt.Errorf("%w: invalid max gas price %q", ErrPermanent, c.config.MaxGasPrice)
		}

		gasPrice, err := c.backend.SuggestGasPrice(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to suggest gas price: %w", err)
		}

		if gasPrice.Cmp(maxGasPrice) > 0 {
			c.logger.Warn("Suggested gas price exceeds maximum",
				zap.String("suggested", gasPrice.String()),
				zap.String("max", maxGasPrice.String()))
			auth.GasPrice = maxGasPrice
		} else {
			auth.GasPrice = gasPrice
		}
	}

	return auth, nil
}

// BlockNumber returns the current head
func (c *Client) BlockNumber(ctx context.Context) (uint64, error) {
	var head uint64
	err := Retry(ctx, CallRetry, c.logger, "block_number", func() error {
		var err error
		head, err = c.backend.BlockNumber(ctx)
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to get latest block: %w", err)
	}
	return head, nil
}

// WaitForConfirmations blocks until txHash is mined with at least n confirmations.
// A mined transaction with failed status returns its receipt and ErrTransactionReverted.
func (c *Client) WaitForConfirmations(ctx context.Context, txHash common.Hash, n uint64) (*types.Receipt, error) {
	if n == 0 {
		n = 1
	}
	ticker := time.NewTicker(c.config.PollingInterval)
	defer ticker.Stop()

	for {
		receipt, err := c.backend.TransactionReceipt(ctx, txHash)
		switch {
		case errors.Is(err, geth.NotFound):
			// not mined yet, or dropped by a reorg
		case err != nil:
			if IsPermanent(err) {
				return nil, fmt.Errorf("failed to get receipt for %s: %w", txHash.Hex(), err)
			}
			c.logger.Warn("Failed to get receipt", zap.String("tx_hash", txHash.Hex()), zap.Error(err))
		default:
			head, err := c.backend.BlockNumber(ctx)
			if err != nil {
				c.logger.Warn("Failed to get latest block", zap.Error(err))
				break
			}
			if Confirmations(head, receipt.BlockNumber.Uint64()) >= n {
				if receipt.Status == types.ReceiptStatusFailed {
					return receipt, fmt.Errorf("%w: %s", ErrTransactionReverted, txHash.Hex())
				}
				return receipt, nil
			}
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Confirmations returns how many blocks, including its own, cover a transaction mined in block.
func Confirmations(head, block uint64) uint64 {
	if head < block {
		return 0
	}
	return head - block + 1
}

// Governance returns the bridge's governance contract, the EIP-712 verifying contract.
func (c *Client) Governance(ctx context.Context) (common.Address, error) {
	var addr common.Address
	err := Retry(ctx, CallRetry, c.logger, "governance", func() error {
		var err error
		addr, err = c.bridge.Governance(&bind.CallOpts{Context: ctx})
		return err
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to get governance address: %w", err)
	}
	return addr, nil
}

// GovernanceNonce reads the current claim nonce of receiver.
func (c *Client) GovernanceNonce(ctx context.Context, governance, receiver common.Address) (*big.Int, error) {
	gov, err := contracts.NewGovernance(governance, c.backend)
	if err != nil {
		return nil, err
	}
	var nonce *big.Int
	err = Retry(ctx, CallRetry, c.logger, "nonces", func() error {
		var err error
		nonce, err = gov.Nonces(&bind.CallOpts{Context: ctx}, receiver)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get nonce for %s: %w", receiver.Hex(), err)
	}
	return nonce, nil
}

// TokenInfo reads ERC-20 metadata of a token on this chain.
func (c *Client) TokenInfo(ctx context.Context, address common.Address) (token.Info, error) {
	erc20, err := contracts.NewERC20(address, c.backend)
	if err != nil {
		return token.Info{}, err
	}

	var info token.Info
	opts := &bind.CallOpts{Context: ctx}
	err = Retry(ctx, CallRetry, c.logger, "erc20_metadata", func() error {
		var err error
		if info.Name, err = erc20.Name(opts); err != nil {
			return err
		}
		if info.Symbol, err = erc20.Symbol(opts); err != nil {
			return err
		}
		info.Decimals, err = erc20.Decimals(opts)
		return err
	})
	if err != nil {
		return token.Info{}, fmt.Errorf("failed to read token %s metadata: %w", address.Hex(), err)
	}
	return info, nil
}

// LookupTargetToken returns the registered wrapped token, or the zero address.
func (c *Client) LookupTargetToken(ctx context.Context, sourceToken common.Address, targetChainID uint64) (common.Address, error) {
	var addr common.Address
	err := Retry(ctx, CallRetry, c.logger, "lookup_target_token", func() error {
		var err error
		addr, err = c.registry.LookupTargetTokenAddress(&bind.CallOpts{Context: ctx}, sourceToken, uint16(targetChainID))
		return err
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to lookup target token: %w", err)
	}
	return addr, nil
}

// LookupSourceToken returns the original token behind a wrapped token, or the zero address.
func (c *Client) LookupSourceToken(ctx context.Context, wrappedToken common.Address, targetChainID uint64) (common.Address, error) {
	var addr common.Address
	err := Retry(ctx, CallRetry, c.logger, "lookup_source_token", func() error {
		var err error
		addr, err = c.registry.LookupSourceTokenAddress(&bind.CallOpts{Context: ctx}, wrappedToken, uint16(targetChainID))
		return err
	})
	if err != nil {
		return common.Address{}, fmt.Errorf("failed to lookup source token: %w", err)
	}
	return addr, nil
}

// SubmitCreateToken signs a createToken call on this chain's bridge, hands the signed
// transaction to record, and broadcasts it only once record has succeeded.
// A recorded transaction can be awaited later with CreatedToken.
func (c *Client) SubmitCreateToken(
	ctx context.Context,
	name, symbol string,
	signatures [][]byte,
	record func(hash common.Hash, raw []byte) error,
) (common.Hash, error) {
	c.txMu.Lock()
	defer c.txMu.Unlock()

	auth, err := c.GetTransactor(ctx)
	if err != nil {
		return common.Hash{}, err
	}
	auth.NoSend = true

	tx, err := c.bridge.CreateToken(auth, name, symbol, signatures)
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to sign create_token transaction: %w", err)
	}
	raw, err := tx.MarshalBinary()
	if err != nil {
		return common.Hash{}, fmt.Errorf("failed to encode create_token transaction: %w", err)
	}
	if err := record(tx.Hash(), raw); err != nil {
		return common.Hash{}, fmt.Errorf("failed to record create_token transaction: %w", err)
	}

	if err := c.backend.SendTransaction(ctx, tx); err != nil {
		// the recorded transaction is rebroadcast by CreatedToken
		c.logger.Warn("Failed to broadcast create_token transaction",
			zap.String("tx_hash", tx.Hash().Hex()),
			zap.Error(err))
		return tx.Hash(), nil
	}

	c.logger.Info("Transaction submitted",
		zap.String("operation", "create_token"),
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.Uint64("nonce", tx.Nonce()))
	return tx.Hash(), nil
}

// CreatedToken rebroadcasts a recorded createToken transaction and returns the address of
// the wrapped token it created once it is mined. ErrTransactionDropped means the
// transaction can never be mined because its nonce was used by another transaction.
func (c *Client) CreatedToken(ctx context.Context, raw []byte) (common.Address, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Address{}, fmt.Errorf("%w: malformed create_token transaction: %v", ErrPermanent, err)
	}

	if err := c.backend.SendTransaction(ctx, tx); err != nil && !isKnownTransaction(err) {
		if !isNonceTooLow(err) {
			return common.Address{}, fmt.Errorf("failed to rebroadcast create_token transaction %s: %w", tx.Hash().Hex(), err)
		}
		if _, err := c.backend.TransactionReceipt(ctx, tx.Hash()); errors.Is(err, geth.NotFound) {
			return common.Address{}, fmt.Errorf("%w: %s", ErrTransactionDropped, tx.Hash().Hex())
		}
	}

	receipt, err := c.WaitForConfirmations(ctx, tx.Hash(), 1)
	if err != nil {
		return common.Address{}, fmt.Errorf("create_token transaction %s: %w", tx.Hash().Hex(), err)
	}
	addr, err := contracts.CreatedTokenFromReceipt(receipt)
	if err != nil {
		return common.Address{}, fmt.Errorf("%w: %v", ErrPermanent, err)
	}
	return addr, nil
}

// RegisterTargetToken records a token connection in this chain's registry.
func (c *Client) RegisterTargetToken(ctx context.Context, sourceToken common.Address, targetChainID uint64, targetToken common.Address) error {
	_, err := c.send(ctx, "register_target_token", func(auth *bind.TransactOpts) (*types.Transaction, error) {
		return c.registry.RegisterTargetTokenAddress(auth, sourceToken, uint16(targetChainID), targetToken)
	})
	return err
}

// send submits one transaction and waits for it to be mined.
// Submission is not retried: a lost response could otherwise broadcast a duplicate.
func (c *Client) send(ctx context.Context, op string, fn func(*bind.TransactOpts) (*types.Transaction, error)) (*types.Receipt, error) {
	c.txMu.Lock()
	auth, err := c.GetTransactor(ctx)
	if err != nil {
		c.txMu.Unlock()
		return nil, err
	}
	tx, err := fn(auth)
	c.txMu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("failed to submit %s transaction: %w", op, err)
	}

	c.logger.Info("Transaction submitted",
		zap.String("operation", op),
		zap.String("tx_hash", tx.Hash().Hex()),
		zap.Uint64("nonce", tx.Nonce()))

	receipt, err := c.WaitForConfirmations(ctx, tx.Hash(), 1)
	if err != nil {
		return nil, fmt.Errorf("%s transaction %s: %w", op, tx.Hash().Hex(), err)
	}
	return receipt, nil
}
