package blockchain

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/jpillora/backoff"
	"go.uber.org/zap"
)

// ErrTxReverted is returned by WaitForTransaction when the transaction was
// mined with a failed status.
var ErrTxReverted = errors.New("tx reverted")

// ReceiptReader is the part of an Ethereum client needed to poll receipts.
// *ethclient.Client satisfies it.
type ReceiptReader interface {
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*types.Receipt, error)
}

// GetTransactOpts creates a transactor bound to the given chainID and ECDSA key.
// The returned TransactOpts can be used to send transactions to the blockchain.
func GetTransactOpts(chainID *big.Int, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	if pk == nil {
		return nil, fmt.Errorf("private key is required for transactions")
	}
	opts, err := bind.NewKeyedTransactorWithChainID(pk, chainID)
	if err != nil {
		zap.L().Error("failed to create transactor", zap.Error(err))
		return nil, err
	}
	return opts, nil
}

// GetTransactOpts creates a transactor for the chain the client is connected to.
func (evm *EVMClient) GetTransactOpts(ctx context.Context, pk *ecdsa.PrivateKey) (*bind.TransactOpts, error) {
	opts, err := GetTransactOpts(evm.ChainID, pk)
	if err != nil {
		return nil, err
	}
	opts.Context = ctx
	return opts, nil
}

// WaitForTransaction polls for a transaction receipt with exponential backoff,
// starting at one second, until the receipt is available, ctx is done, or an
// error occurs. If maxBackoff is non-zero, the delay will not exceed it. It
// returns ErrTxReverted if the tx is reverted.
func WaitForTransaction(ctx context.Context, reader ReceiptReader, txHash common.Hash, maxBackoff time.Duration) (*types.Receipt, error) {
	if maxBackoff <= 0 {
		maxBackoff = 30 * time.Second
	}
	return waitForTransaction(ctx, reader, txHash, &backoff.Backoff{
		Min:    time.Second,
		Max:    maxBackoff,
		Factor: 2,
	})
}

func waitForTransaction(ctx context.Context, reader ReceiptReader, txHash common.Hash, b *backoff.Backoff) (*types.Receipt, error) {
	for {
		receipt, err := reader.TransactionReceipt(ctx, txHash)
		switch {
		case err == nil:
			if receipt.Status == types.ReceiptStatusFailed {
				return receipt, fmt.Errorf("%w: %s", ErrTxReverted, txHash)
			}
			return receipt, nil
		case errors.Is(err, ethereum.NotFound):
			d := b.Duration()
			zap.L().Debug("Receipt not available yet", zap.Stringer("tx", txHash), zap.Duration("retryIn", d))
			select {
			case <-time.After(d):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			return nil, fmt.Errorf("receipt error: %w", err)
		}
	}
}
