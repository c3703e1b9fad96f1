package sdk

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/oceanprotocol/ocean-sdk-go/pkg/blockchain"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/config"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/ddo"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/migration"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/provider"
	"github.com/raulk/clock"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrNoPrivateKey is returned by operations that sign when no key is configured.
var ErrNoPrivateKey = errors.New("private key not configured")

// OceanSDK is the public interface of an SDK instance.
type OceanSDK interface {
	// Converter returns a legacy DDO converter backed by the configured metadata cache.
	Converter() *ddo.Converter
	// Provider returns a provider REST client.
	Provider() *provider.Client
	// Signer returns a signer for the configured key.
	Signer() (*provider.KeySigner, error)
	// Migration connects to the configured chain and returns the exchange migration helper.
	Migration(ctx context.Context) (*migration.Migration, error)
	// Close releases resources associated with the SDK instance.
	Close()
}

// logLevel is the level of the global logger installed by init.
var logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)

// init configures a default global zap logger for the SDK. Applications may
// replace it with zap.ReplaceGlobals(...) if they need custom logging.
func init() {
	c := zap.Config{
		Level:            logLevel,
		Development:      false,
		Encoding:         "console",
		EncoderConfig:    zap.NewDevelopmentEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := c.Build()
	if err != nil {
		panic(err)
	}
	zap.ReplaceGlobals(logger)
}

// NewLogger returns a console logger that writes to w at the level set by
// SetDebug. Command-line tools use it to keep logs off their output stream:
//
//	zap.ReplaceGlobals(sdk.NewLogger(os.Stderr))
func NewLogger(w io.Writer) *zap.Logger {
	encoder := zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	return zap.New(zapcore.NewCore(encoder, zapcore.AddSync(w), logLevel))
}

// SetDebug switches the SDK's default logger between debug and info level.
func SetDebug(debug bool) {
	if debug {
		logLevel.SetLevel(zap.DebugLevel)
		return
	}
	logLevel.SetLevel(zap.InfoLevel)
}

// Option customizes a Core.
type Option func(*Core)

// WithHTTPClient sets the HTTP client used for the metadata cache and providers.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Core) {
		c.httpClient = client
	}
}

// WithClock sets the clock used for DDO timestamps and download nonces.
func WithClock(clk clock.Clock) Option {
	return func(c *Core) {
		c.clock = clk
	}
}

// Core is the concrete SDK implementation. It is owned by the caller; create
// one per configuration and Close it when done.
type Core struct {
	*config.Config
	httpClient *http.Client
	clock      clock.Clock
	prvKey     *ecdsa.PrivateKey

	mu  sync.Mutex
	evm *blockchain.EVMClient
}

// New validates cfg and returns an SDK instance. No network connection is
// made until Migration is called.
func New(cfg *config.Config, opts ...Option) (*Core, error) {
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	cfg.Timeouts = cfg.Timeouts.WithDefaults()
	SetDebug(cfg.Debug)

	c := &Core{
		Config:     cfg,
		httpClient: &http.Client{},
		clock:      clock.New(),
	}
	for _, opt := range opts {
		opt(c)
	}

	if cfg.PrivateKey != "" {
		address, prvKey, err := blockchain.ParsePrivateKeyECDSA(cfg.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("private key: %w", err)
		}
		c.prvKey = prvKey
		zap.L().Debug("signer address", zap.String("addr", address.Hex()))
	}
	return c, nil
}

// Converter returns a legacy DDO converter backed by the configured metadata cache.
func (c *Core) Converter() *ddo.Converter {
	resolver := ddo.NewAquariusResolver(c.MetadataCacheURI, c.httpClient)
	return ddo.NewConverter(resolver, c.clock)
}

// Provider returns a provider REST client.
func (c *Core) Provider() *provider.Client {
	return provider.New(c.httpClient, c.clock)
}

// Signer returns a signer for the configured key.
func (c *Core) Signer() (*provider.KeySigner, error) {
	if c.prvKey == nil {
		return nil, ErrNoPrivateKey
	}
	return provider.NewKeySigner(c.prvKey)
}

// Migration dials the configured RPC endpoint on first use and returns an
// exchange migration helper. Without a private key the helper can only
// estimate.
func (c *Core) Migration(ctx context.Context) (*migration.Migration, error) {
	if err := c.RequireRPC(); err != nil {
		return nil, err
	}
	evm, err := c.dial(ctx)
	if err != nil {
		return nil, err
	}

	if c.prvKey == nil {
		zap.L().Warn("no private key configured, migration is limited to gas estimation")
		return migration.New(evm.Client, nil, c.Config), nil
	}
	opts, err := evm.GetTransactOpts(ctx, c.prvKey)
	if err != nil {
		return nil, err
	}
	return migration.New(evm.Client, opts, c.Config), nil
}

func (c *Core) dial(ctx context.Context) (*blockchain.EVMClient, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.evm != nil {
		return c.evm, nil
	}

	evm, err := blockchain.Dial(ctx, c.RPCAddr, c.Timeouts.Dial)
	if err != nil {
		zap.L().Error("Init ethereum client failed", zap.Error(err))
		return nil, err
	}
	if want := c.Network.ChainID; want != "" && want != evm.ChainID.String() {
		zap.L().Warn("connected chain differs from configured network",
			zap.String("configured", want),
			zap.Stringer("connected", evm.ChainID))
	}
	c.evm = evm
	return evm, nil
}

// Close releases the chain connection, if any.
func (c *Core) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.evm != nil {
		c.evm.Close()
		c.evm = nil
	}
}

var _ OceanSDK = (*Core)(nil)
