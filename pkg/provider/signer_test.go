package provider

import (
	"testing"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/blockchain"
	"github.com/stretchr/testify/require"
)

func recoverAddress(t *testing.T, hash []byte, signature string) string {
	t.Helper()
	sig, err := hexutil.Decode(signature)
	require.NoError(t, err)
	require.Len(t, sig, 65)
	sig[64] -= 27
	pub, err := crypto.SigToPub(hash, sig)
	require.NoError(t, err)
	return crypto.PubkeyToAddress(*pub).Hex()
}

func TestKeySigner(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer, err := NewKeySigner(key)
	require.NoError(t, err)
	account := signer.Address().Hex()

	text, err := signer.SignText("hello", account)
	require.NoError(t, err)
	require.Equal(t, account, recoverAddress(t, accounts.TextHash([]byte("hello")), text))

	hashed, err := signer.SignHash("hello", account)
	require.NoError(t, err)
	digest := crypto.Keccak256(blockchain.HashPrefix32Bytes, crypto.Keccak256([]byte("hello")))
	require.Equal(t, account, recoverAddress(t, digest, hashed))
}

func TestKeySigner_RefusesOtherAccounts(t *testing.T) {
	key, err := crypto.GenerateKey()
	require.NoError(t, err)
	signer, err := NewKeySigner(key)
	require.NoError(t, err)

	_, err = signer.SignText("hello", "0x0000000000000000000000000000000000000001")
	require.ErrorIs(t, err, ErrUnknownAccount)
	_, err = signer.SignHash("hello", "not-an-address")
	require.ErrorIs(t, err, ErrUnknownAccount)

	_, err = NewKeySigner(nil)
	require.Error(t, err)
}

type recordingSigner struct {
	text, hash, account string
}

func (r *recordingSigner) SignText(message, account string) (string, error) {
	r.text, r.account = message, account
	return "0xtext", nil
}

func (r *recordingSigner) SignHash(message, account string) (string, error) {
	r.hash, r.account = message, account
	return "0xhash", nil
}

func TestCreateSignature(t *testing.T) {
	rec := &recordingSigner{}

	sig, err := CreateSignature(rec, "0xabc", "0x0xDEADbeef")
	require.NoError(t, err)
	require.Equal(t, "0xtext", sig)
	require.Equal(t, "DEADbeef", rec.text)
	require.Equal(t, "0xabc", rec.account)

	_, err = CreateSignature(rec, "0xabc", "did:op:abc1700000000000")
	require.NoError(t, err)
	require.Equal(t, "did:op:abc1700000000000", rec.text)

	sig, err = CreateHashSignature(rec, "0xabc", "0x1234")
	require.NoError(t, err)
	require.Equal(t, "0xhash", sig)
	require.Equal(t, "0x1234", rec.hash)
}
