package migration

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/blockchain"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/config"
	"go.uber.org/zap"
)

var (
	// ErrNoSigner is returned by Migrate when the helper was built without a transactor.
	ErrNoSigner = errors.New("no transaction signer configured")
	// ErrOwnerMismatch is returned by Migrate when the asset owner is not the signing account.
	ErrOwnerMismatch = errors.New("owner does not match signing account")
)

// Backend is the chain access needed to estimate, price, sign and submit a
// migration. *ethclient.Client satisfies it.
type Backend interface {
	EstimateGas(ctx context.Context, call ethereum.CallMsg) (uint64, error)
	SuggestGasPrice(ctx context.Context) (*big.Int, error)
	PendingNonceAt(ctx context.Context, account common.Address) (uint64, error)
	SendTransaction(ctx context.Context, tx *types.Transaction) error
	blockchain.ReceiptReader
}

// Migration moves fixed-rate assets to the ERC721 factory.
type Migration struct {
	backend          Backend
	signer           *bind.TransactOpts
	gasLimitDefault  uint64
	gasFeeMultiplier float64
	timeouts         config.Timeouts
}

// New returns a migration helper. signer may be nil when only Estimate is
// used. cfg supplies the default gas limit, gas fee multiplier and timeouts;
// nil means defaults.
func New(backend Backend, signer *bind.TransactOpts, cfg *config.Config) *Migration {
	m := &Migration{
		backend:          backend,
		signer:           signer,
		gasLimitDefault:  config.DefaultGasLimit,
		gasFeeMultiplier: 1,
		timeouts:         config.Timeouts{}.WithDefaults(),
	}
	if cfg != nil {
		if cfg.GasLimitDefault > 0 {
			m.gasLimitDefault = cfg.GasLimitDefault
		}
		if cfg.GasFeeMultiplier > 0 {
			m.gasFeeMultiplier = cfg.GasFeeMultiplier
		}
		m.timeouts = cfg.Timeouts.WithDefaults()
	}
	return m
}

// Estimate returns the gas needed by the factory call for p. It never fails:
// when the call cannot be built or the node cannot estimate it, the default
// gas limit is returned instead, so the result is not a reliable cost.
func (m *Migration) Estimate(ctx context.Context, p Params) uint64 {
	call, err := p.Call()
	if err != nil {
		zap.L().Warn("Cannot build migration call, using default gas limit",
			zap.String("did", p.DID), zap.Uint64("gasLimit", m.gasLimitDefault), zap.Error(err))
		return m.gasLimitDefault
	}

	c, cancel := blockchain.WithTimeout(ctx, m.timeouts.ChainRead)
	defer cancel()
	gas, err := m.backend.EstimateGas(c, call)
	if err != nil {
		zap.L().Warn("Gas estimation failed, using default gas limit",
			zap.String("did", p.DID), zap.Uint64("gasLimit", m.gasLimitDefault), zap.Error(err))
		return m.gasLimitDefault
	}
	zap.L().Debug("Estimated migration gas", zap.String("did", p.DID), zap.Uint64("gas", gas))
	return gas
}

// Migrate submits the factory call for p with a gas limit of Estimate + 1
// and the fair gas price, then waits for the receipt. On failure the error
// is logged and returned with a nil receipt. Migrate is not safe to retry
// blindly: a timed-out wait does not mean the transaction was dropped.
func (m *Migration) Migrate(ctx context.Context, p Params) (*types.Receipt, error) {
	receipt, err := m.migrate(ctx, p)
	if err != nil {
		zap.L().Error("Failed to migrate fixed-rate asset", zap.String("did", p.DID), zap.Error(err))
		return nil, err
	}
	zap.L().Info("Migrated fixed-rate asset",
		zap.String("did", p.DID),
		zap.Stringer("tx", receipt.TxHash),
		zap.Uint64("gasUsed", receipt.GasUsed))
	return receipt, nil
}

func (m *Migration) migrate(ctx context.Context, p Params) (*types.Receipt, error) {
	if m.signer == nil || m.signer.Signer == nil {
		return nil, ErrNoSigner
	}
	call, err := p.Call()
	if err != nil {
		return nil, err
	}
	if call.From != m.signer.From {
		return nil, fmt.Errorf("%w: owner %s, signer %s", ErrOwnerMismatch, call.From, m.signer.From)
	}

	gasLimit := m.Estimate(ctx, p) + 1

	readCtx, cancelRead := blockchain.WithTimeout(ctx, m.timeouts.ChainRead)
	defer cancelRead()
	suggested, err := m.backend.SuggestGasPrice(readCtx)
	if err != nil {
		return nil, fmt.Errorf("suggest gas price: %w", err)
	}
	gasPrice := blockchain.FairGasPrice(suggested, m.gasFeeMultiplier)
	nonce, err := m.backend.PendingNonceAt(readCtx, call.From)
	if err != nil {
		return nil, fmt.Errorf("pending nonce: %w", err)
	}

	tx := types.NewTx(&types.LegacyTx{
		Nonce:    nonce,
		GasPrice: gasPrice,
		Gas:      gasLimit,
		To:       call.To,
		Value:    big.NewInt(0),
		Data:     call.Data,
	})
	signed, err := m.signer.Signer(m.signer.From, tx)
	if err != nil {
		return nil, fmt.Errorf("sign transaction: %w", err)
	}

	submitCtx, cancelSubmit := blockchain.WithTimeout(ctx, m.timeouts.ChainSubmit)
	defer cancelSubmit()
	if err := m.backend.SendTransaction(submitCtx, signed); err != nil {
		return nil, fmt.Errorf("send transaction: %w", err)
	}
	zap.L().Debug("Migration transaction sent",
		zap.String("did", p.DID),
		zap.Stringer("tx", signed.Hash()),
		zap.Uint64("gas", gasLimit),
		zap.Stringer("gasPrice", gasPrice))

	waitCtx, cancelWait := blockchain.WithTimeout(ctx, m.timeouts.ReceiptWait)
	defer cancelWait()
	return blockchain.WaitForTransaction(waitCtx, m.backend, signed.Hash(), 0)
}
