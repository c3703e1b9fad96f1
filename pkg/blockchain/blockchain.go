package blockchain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

var (
	// HashPrefix32Bytes is the standard Ethereum personal-sign prefix for 32-byte
	// messages: "\x19Ethereum Signed Message:\n32".
	// See Geth reference:
	// https://github.com/ethereum/go-ethereum/blob/bf468a81ec261745b25206b2a596eb0ee0a24a74/internal/ethapi/api.go#L361
	HashPrefix32Bytes = []byte("\x19Ethereum Signed Message:\n32")
)

// EVMClient holds a connected ethclient.Client and the chain ID reported by
// the node at dial time.
type EVMClient struct {
	Client  *ethclient.Client
	ChainID *big.Int
}

// Dial connects to an Ethereum RPC/WS endpoint and reads its chain ID. The
// dial and the chain ID query share a deadline of timeout (no deadline when
// timeout <= 0).
func Dial(ctx context.Context, endpoint string, timeout time.Duration) (*EVMClient, error) {
	c, cancel := WithTimeout(ctx, timeout)
	defer cancel()

	client, err := ethclient.DialContext(c, endpoint)
	if err != nil {
		zap.L().Error("Failed to ethdial", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, err
	}

	chainID, err := client.ChainID(c)
	if err != nil {
		client.Close()
		zap.L().Error("Failed to get chain ID", zap.String("endpoint", endpoint), zap.Error(err))
		return nil, fmt.Errorf("chain id: %w", err)
	}

	zap.L().Debug("Connected to chain", zap.String("endpoint", endpoint), zap.Stringer("chainID", chainID))
	return &EVMClient{Client: client, ChainID: chainID}, nil
}

// Close closes the underlying RPC connection.
func (evm *EVMClient) Close() {
	if evm != nil && evm.Client != nil {
		evm.Client.Close()
	}
}

// GetCurrentBlockNumber returns the latest block number.
func (evm *EVMClient) GetCurrentBlockNumber(ctx context.Context) (*big.Int, error) {
	header, err := evm.Client.HeaderByNumber(ctx, nil)
	if err != nil {
		zap.L().Error("failed to get last block number", zap.Error(err))
		return nil, err
	}
	return header.Number, nil
}

// GetSignature produces an Ethereum-compatible personal-sign (EIP-191 style)
// signature over the given message. It hashes the payload as
// keccak256("\x19Ethereum Signed Message:\n32" || keccak256(message)) and
// signs with the provided ECDSA private key.
//
// Returns the 65-byte signature (R||S||V) with V in {27, 28}.
func GetSignature(message []byte, privateKeyECDSA *ecdsa.PrivateKey) ([]byte, error) {
	hash := crypto.Keccak256(
		HashPrefix32Bytes,
		crypto.Keccak256(message),
	)
	return sign(hash, privateKeyECDSA)
}

// SignText signs text the way eth_sign and personal_sign do:
// keccak256("\x19Ethereum Signed Message:\n" || len(text) || text).
//
// Returns the 65-byte signature (R||S||V) with V in {27, 28}.
func SignText(text []byte, privateKeyECDSA *ecdsa.PrivateKey) ([]byte, error) {
	return sign(accounts.TextHash(text), privateKeyECDSA)
}

func sign(hash []byte, privateKeyECDSA *ecdsa.PrivateKey) ([]byte, error) {
	if privateKeyECDSA == nil {
		return nil, fmt.Errorf("private key is required for signing")
	}
	signature, err := crypto.Sign(hash, privateKeyECDSA)
	if err != nil {
		zap.L().Error("Failed to sign message", zap.Error(err))
		return nil, err
	}
	signature[crypto.RecoveryIDOffset] += 27
	return signature, nil
}

// WithTimeout returns ctx unchanged if d <= 0, otherwise returns a child context with timeout d.
// The returned cancel function is always non-nil and should be called to release resources.
func WithTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, d)
}
