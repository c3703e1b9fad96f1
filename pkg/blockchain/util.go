package blockchain

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/shopspring/decimal"
)

// maxUint256 is the maximum uint256 value (2^256 - 1).
var maxUint256 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))

// GetAddressFromPrivateKeyECDSA derives the Ethereum address from the given
// ECDSA private key. It returns nil if the key is nil or its public part cannot
// be asserted to *ecdsa.PublicKey.
func GetAddressFromPrivateKeyECDSA(privateKeyECDSA *ecdsa.PrivateKey) *common.Address {
	if privateKeyECDSA == nil {
		return nil
	}
	publicKey := privateKeyECDSA.Public()
	publicKeyECDSA, ok := publicKey.(*ecdsa.PublicKey)
	if !ok {
		return nil
	}
	addr := crypto.PubkeyToAddress(*publicKeyECDSA)
	return &addr
}

// ParsePrivateKeyECDSA parses a hex-encoded ECDSA private key, with or
// without the "0x" prefix, and returns the corresponding Ethereum address
// together with the private key object.
func ParsePrivateKeyECDSA(privateKey string) (common.Address, *ecdsa.PrivateKey, error) {
	privateKeyECDSA, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return common.Address{}, nil, err
	}

	address := GetAddressFromPrivateKeyECDSA(privateKeyECDSA)
	if address == nil {
		return common.Address{}, nil, errors.New("failed to get public key")
	}
	return *address, privateKeyECDSA, nil
}

// FairGasPrice scales the node's suggested gas price by multiplier and rounds
// down to a whole wei. A multiplier <= 0 leaves the price unchanged.
func FairGasPrice(suggested *big.Int, multiplier float64) *big.Int {
	if suggested == nil {
		return nil
	}
	if multiplier <= 0 || multiplier == 1 {
		return new(big.Int).Set(suggested)
	}
	price := decimal.NewFromBigInt(suggested, 0).Mul(decimal.NewFromFloat(multiplier))
	return price.Floor().BigInt()
}

// ParseUint256 parses an ABI uint256 argument given as a decimal string
// ("1000", "1e18") or a 0x-prefixed hex string. Fractions, negative values
// and values above 2^256-1 are rejected.
func ParseUint256(s string) (*big.Int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.New("empty uint256 value")
	}

	var value *big.Int
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		v, ok := new(big.Int).SetString(s[2:], 16)
		if !ok {
			return nil, fmt.Errorf("invalid hex uint256 %q", s)
		}
		value = v
	} else {
		d, err := decimal.NewFromString(s)
		if err != nil {
			return nil, fmt.Errorf("invalid uint256 %q: %w", s, err)
		}
		if !d.IsInteger() {
			return nil, fmt.Errorf("uint256 %q is not an integer", s)
		}
		value = d.BigInt()
	}

	if value.Sign() < 0 {
		return nil, fmt.Errorf("uint256 %q is negative", s)
	}
	if value.Cmp(maxUint256) > 0 {
		return nil, fmt.Errorf("uint256 %q overflows 256 bits", s)
	}
	return value, nil
}
