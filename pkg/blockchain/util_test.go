package blockchain

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
)

func TestGetAddressFromPrivateKeyECDSA(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}

	addr := GetAddressFromPrivateKeyECDSA(priv)
	if addr == nil {
		t.Fatal("expected non-nil address")
	}
	want := crypto.PubkeyToAddress(priv.PublicKey)
	if *addr != want {
		t.Fatalf("unexpected address: got %s want %s", addr.Hex(), want.Hex())
	}

	if GetAddressFromPrivateKeyECDSA(nil) != nil {
		t.Fatal("expected nil for nil key")
	}
}

func TestParsePrivateKeyECDSA(t *testing.T) {
	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	hexKey := hex.EncodeToString(crypto.FromECDSA(priv))

	for _, key := range []string{hexKey, "0x" + hexKey} {
		addr, parsedKey, err := ParsePrivateKeyECDSA(key)
		if err != nil {
			t.Fatalf("ParsePrivateKeyECDSA(%q): %v", key, err)
		}
		if addr != crypto.PubkeyToAddress(priv.PublicKey) {
			t.Fatalf("unexpected address: %s", addr.Hex())
		}
		if parsedKey.D.Cmp(priv.D) != 0 {
			t.Fatal("parsed key mismatch")
		}
	}

	if _, _, err := ParsePrivateKeyECDSA("zz"); err == nil {
		t.Fatal("expected error for invalid key")
	}
}

func TestFairGasPrice(t *testing.T) {
	tests := []struct {
		name       string
		suggested  int64
		multiplier float64
		want       int64
	}{
		{"Unchanged", 1000, 1, 1000},
		{"Zero multiplier", 1000, 0, 1000},
		{"Scaled", 1000, 1.5, 1500},
		{"Rounded down", 1001, 1.5, 1501},
		{"Fraction below one wei", 1, 0.5, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := FairGasPrice(big.NewInt(tc.suggested), tc.multiplier)
			if got.Cmp(big.NewInt(tc.want)) != 0 {
				t.Fatalf("FairGasPrice(%d, %v) = %s, want %d", tc.suggested, tc.multiplier, got, tc.want)
			}
		})
	}

	if FairGasPrice(nil, 2) != nil {
		t.Fatal("expected nil for nil price")
	}
}

func TestParseUint256(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"0", "0"},
		{"1000", "1000"},
		{" 42 ", "42"},
		{"1e18", "1000000000000000000"},
		{"0x10", "16"},
		{"115792089237316195423570985008687907853269984665640564039457584007913129639935", maxUint256.String()},
	}
	for _, tc := range tests {
		got, err := ParseUint256(tc.input)
		if err != nil {
			t.Fatalf("ParseUint256(%q): %v", tc.input, err)
		}
		if got.String() != tc.want {
			t.Fatalf("ParseUint256(%q) = %s, want %s", tc.input, got, tc.want)
		}
	}

	for _, bad := range []string{
		"",
		"abc",
		"1.5",
		"-1",
		"0xzz",
		"115792089237316195423570985008687907853269984665640564039457584007913129639936",
	} {
		if _, err := ParseUint256(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
