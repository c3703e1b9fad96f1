package provider

import (
	"crypto/ecdsa"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/blockchain"
)

// ErrUnknownAccount is returned by KeySigner when asked to sign for an
// account whose key it does not hold.
var ErrUnknownAccount = errors.New("signer does not hold the account key")

// Signer produces the consumer signatures the provider checks. Both methods
// return a 0x-prefixed 65-byte hex signature.
type Signer interface {
	// SignText signs message as personal_sign does.
	SignText(message, account string) (string, error)
	// SignHash signs keccak256(message) as a 32-byte personal message.
	SignHash(message, account string) (string, error)
}

// KeySigner signs with a local ECDSA key.
type KeySigner struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

// NewKeySigner returns a Signer for key.
func NewKeySigner(key *ecdsa.PrivateKey) (*KeySigner, error) {
	addr := blockchain.GetAddressFromPrivateKeyECDSA(key)
	if addr == nil {
		return nil, errors.New("private key is required for signing")
	}
	return &KeySigner{key: key, address: *addr}, nil
}

// Address returns the account of the signing key.
func (s *KeySigner) Address() common.Address {
	return s.address
}

func (s *KeySigner) SignText(message, account string) (string, error) {
	if err := s.check(account); err != nil {
		return "", err
	}
	sig, err := blockchain.SignText([]byte(message), s.key)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(sig), nil
}

func (s *KeySigner) SignHash(message, account string) (string, error) {
	if err := s.check(account); err != nil {
		return "", err
	}
	sig, err := blockchain.GetSignature([]byte(message), s.key)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(sig), nil
}

func (s *KeySigner) check(account string) error {
	if !common.IsHexAddress(account) || common.HexToAddress(account) != s.address {
		return fmt.Errorf("%w: %s", ErrUnknownAccount, account)
	}
	return nil
}

// CreateSignature signs agreementID for account, with any 0x prefix of a
// hex agreementID removed first.
func CreateSignature(signer Signer, account, agreementID string) (string, error) {
	return signer.SignText(noZeroX(agreementID), account)
}

// CreateHashSignature signs the keccak256 hash of message for account.
func CreateHashSignature(signer Signer, account, message string) (string, error) {
	return signer.SignHash(message, account)
}
