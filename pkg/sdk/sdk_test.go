package sdk

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oceanprotocol/ocean-sdk-go/internal/testutil/providerstub"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/config"
	"github.com/raulk/clock"
	"go.uber.org/zap"
)

const legacyDDO = `{
	"id": "did:op:abc",
	"chainId": 8996,
	"dataTokenInfo": {"address": "0x0000000000000000000000000000000000000D70"},
	"service": [
		{"type": "metadata", "attributes": {"main": {"type": "dataset", "name": "n", "author": "a", "license": "l"}}},
		{"type": "access", "serviceEndpoint": "https://provider.example", "attributes": {"main": {"timeout": 60}}}
	]
}`

func TestNew_InvalidConfig(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error for nil config")
	}
	_, err := New(&config.Config{ERC721FactoryAddress: "nope"})
	if err == nil || !strings.Contains(err.Error(), "invalid config") {
		t.Fatalf("expected invalid config error, got %v", err)
	}
}

func TestNew_AppliesDefaults(t *testing.T) {
	core, err := New(&config.Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer core.Close()

	if core.Network != config.Mumbai {
		t.Fatalf("expected default network, got %+v", core.Network)
	}
	if core.Timeouts.ReceiptWait == 0 {
		t.Fatal("expected timeouts to be defaulted")
	}
}

func TestCore_Converter(t *testing.T) {
	aquarius := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/aquarius/assets/ddo/did:op:abc" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(legacyDDO))
	}))
	defer aquarius.Close()

	clk := clock.NewMock()
	clk.Set(time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC))

	core, err := New(&config.Config{MetadataCacheURI: aquarius.URL}, WithClock(clk))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	doc, err := core.Converter().Convert(context.Background(), "did:op:abc")
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if doc.Metadata.Created != "2022-01-02T03:04:05Z" {
		t.Fatalf("unexpected created date %q", doc.Metadata.Created)
	}
	if doc.Services[0].Timeout != 60 {
		t.Fatalf("unexpected timeout %d", doc.Services[0].Timeout)
	}
}

func TestCore_Provider(t *testing.T) {
	srv := providerstub.New()
	defer srv.Close()
	srv.HandleJSON("/api/services/nonce", http.StatusOK, map[string]any{"nonce": 5})

	core, err := New(&config.Config{ProviderURI: srv.URL}, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	nonce, err := core.Provider().GetNonce(context.Background(), core.ProviderURI, "0x0000000000000000000000000000000000000001")
	if err != nil {
		t.Fatalf("GetNonce: %v", err)
	}
	if nonce != "5" {
		t.Fatalf("unexpected nonce %q", nonce)
	}
}

func TestCore_Signer(t *testing.T) {
	core, err := New(&config.Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := core.Signer(); !errors.Is(err, ErrNoPrivateKey) {
		t.Fatalf("expected ErrNoPrivateKey, got %v", err)
	}

	priv, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	core, err = New(&config.Config{PrivateKey: "0x" + hex.EncodeToString(crypto.FromECDSA(priv))})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	signer, err := core.Signer()
	if err != nil {
		t.Fatalf("Signer: %v", err)
	}
	if signer.Address() != crypto.PubkeyToAddress(priv.PublicKey) {
		t.Fatalf("unexpected signer address %s", signer.Address().Hex())
	}
}

func TestCore_MigrationRequiresRPC(t *testing.T) {
	core, err := New(&config.Config{})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, err := core.Migration(context.Background()); !errors.Is(err, config.ErrRPCRequired) {
		t.Fatalf("expected ErrRPCRequired, got %v", err)
	}
}

func TestCore_MigrationDialFailure(t *testing.T) {
	core, err := New(&config.Config{
		RPCAddr:  "http://127.0.0.1:1",
		Timeouts: config.Timeouts{Dial: time.Second},
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer core.Close()

	if _, err := core.Migration(context.Background()); err == nil {
		t.Fatal("expected dial error")
	}
}

func TestSetDebug(t *testing.T) {
	defer SetDebug(false)

	if _, err := New(&config.Config{Debug: true}); err != nil {
		t.Fatalf("New: %v", err)
	}
	if !zap.L().Core().Enabled(zap.DebugLevel) {
		t.Fatal("expected debug level to be enabled")
	}
	SetDebug(false)
	if zap.L().Core().Enabled(zap.DebugLevel) {
		t.Fatal("expected debug level to be disabled")
	}
}

func TestNewLogger(t *testing.T) {
	defer SetDebug(false)

	var buf bytes.Buffer
	logger := NewLogger(&buf)
	logger.Debug("hidden")
	logger.Warn("shown")
	if !strings.Contains(buf.String(), "shown") || strings.Contains(buf.String(), "hidden") {
		t.Fatalf("unexpected log output %q", buf.String())
	}

	SetDebug(true)
	logger.Debug("now visible")
	if !strings.Contains(buf.String(), "now visible") {
		t.Fatalf("debug line missing after SetDebug(true): %q", buf.String())
	}
}
