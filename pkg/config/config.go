package config

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/hashicorp/go-multierror"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

const (
	// DefaultGasLimit is the gas limit reported by the migration helper when
	// the node cannot estimate the factory call.
	DefaultGasLimit uint64 = 1000000
	// DefaultMetadataCacheURI is the public metadata cache that serves legacy DDOs.
	DefaultMetadataCacheURI = "https://aquarius.oceanprotocol.com"
	// EnvPrefix is the prefix of the environment variables read by FromEnv.
	EnvPrefix = "OCEAN"
)

// ErrRPCRequired is returned when an operation needs a chain connection but
// RPCAddr is empty.
var ErrRPCRequired = errors.New("RPC address is required")

// Config holds all SDK settings required to build the converter, migration
// helper and provider client. Use Validate to fill implicit defaults.
type Config struct {
	// Network selects the target chain (chain ID and human-readable name).
	Network Network `json:"network" yaml:"network" envconfig:"NETWORK"`
	// RPCAddr is the Ethereum RPC/WS endpoint URL. Only the migration helper needs it.
	RPCAddr string `json:"rpc_addr" yaml:"rpc_addr" envconfig:"RPC_ADDR"`
	// PrivateKey is the hex-encoded ECDSA private key used to sign transactions
	// and provider download requests. The "0x" prefix is optional.
	PrivateKey string `json:"private_key" yaml:"private_key" envconfig:"PRIVATE_KEY"`
	// MetadataCacheURI is the metadata cache (Aquarius) that resolves legacy DDOs.
	// Default: https://aquarius.oceanprotocol.com
	MetadataCacheURI string `json:"metadata_cache_uri" yaml:"metadata_cache_uri" envconfig:"METADATA_CACHE_URI"`
	// ProviderURI is the default provider used by the CLI and examples.
	ProviderURI string `json:"provider_uri" yaml:"provider_uri" envconfig:"PROVIDER_URI"`
	// ERC721FactoryAddress is the factory that receives migrated assets.
	ERC721FactoryAddress string `json:"erc721_factory_address" yaml:"erc721_factory_address" envconfig:"ERC721_FACTORY_ADDRESS"`
	// GasLimitDefault replaces a failed gas estimation. Default: 1000000.
	GasLimitDefault uint64 `json:"gas_limit_default" yaml:"gas_limit_default" envconfig:"GAS_LIMIT_DEFAULT"`
	// GasFeeMultiplier scales the node's suggested gas price. Default: 1.
	GasFeeMultiplier float64 `json:"gas_fee_multiplier" yaml:"gas_fee_multiplier" envconfig:"GAS_FEE_MULTIPLIER"`
	// Debug enables verbose logging.
	Debug bool `json:"debug" yaml:"debug" envconfig:"DEBUG"`
	// Timeouts configures per-operation timeouts. See Timeouts.WithDefaults for defaults.
	Timeouts Timeouts `json:"timeouts" yaml:"timeouts" envconfig:"TIMEOUTS"`
}

// Network describes a blockchain network (chain ID and name). ChainID is used
// for EIP-155 signing; Name is informational.
type Network struct {
	ChainID string `json:"chain_id" yaml:"chain_id" envconfig:"CHAIN_ID"`
	Name    string `json:"network_name" yaml:"network_name" envconfig:"NAME"`
}

// Main is a predefined Network for Ethereum mainnet.
var Main = Network{
	ChainID: "1",
	Name:    "mainnet",
}

// Polygon is a predefined Network for Polygon PoS.
var Polygon = Network{
	ChainID: "137",
	Name:    "polygon",
}

// Mumbai is a predefined Network for the Polygon Mumbai testnet.
var Mumbai = Network{
	ChainID: "80001",
	Name:    "mumbai",
}

// Development is the local ganache network started by barge.
var Development = Network{
	ChainID: "8996",
	Name:    "development",
}

// Timeouts controls SDK operation deadlines.
// Zero values will be replaced by sane defaults in WithDefaults.
type Timeouts struct {
	Dial        time.Duration `json:"dial" yaml:"dial" envconfig:"DIAL"`                         // Web3 dial/connect
	ChainRead   time.Duration `json:"chain_read" yaml:"chain_read" envconfig:"CHAIN_READ"`       // gas estimation, gas price, nonce
	ChainSubmit time.Duration `json:"chain_submit" yaml:"chain_submit" envconfig:"CHAIN_SUBMIT"` // send tx
	ReceiptWait time.Duration `json:"receipt_wait" yaml:"receipt_wait" envconfig:"RECEIPT_WAIT"` // wait tx
}

// Validate normalizes the configuration by applying implicit defaults for
// Network (Mumbai), MetadataCacheURI, GasLimitDefault and GasFeeMultiplier,
// and checks the format of every field that is set. All problems are
// reported together.
func (c *Config) Validate() error {
	if c.Network.ChainID == "" {
		c.Network = Mumbai
	}

	if c.MetadataCacheURI == "" {
		c.MetadataCacheURI = DefaultMetadataCacheURI
	}

	if c.GasLimitDefault == 0 {
		c.GasLimitDefault = DefaultGasLimit
	}

	if c.GasFeeMultiplier == 0 {
		c.GasFeeMultiplier = 1
	}

	var result *multierror.Error

	if c.GasFeeMultiplier < 0 {
		result = multierror.Append(result, fmt.Errorf("gas fee multiplier must be positive, got %v", c.GasFeeMultiplier))
	}
	if c.ERC721FactoryAddress != "" && !common.IsHexAddress(c.ERC721FactoryAddress) {
		result = multierror.Append(result, fmt.Errorf("invalid ERC721 factory address %q", c.ERC721FactoryAddress))
	}
	if c.PrivateKey != "" {
		if _, err := c.PrivateKeyECDSA(); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid private key: %w", err))
		}
	}
	for name, raw := range map[string]string{
		"metadata cache URI": c.MetadataCacheURI,
		"provider URI":       c.ProviderURI,
	} {
		if raw == "" {
			continue
		}
		if _, err := url.ParseRequestURI(raw); err != nil {
			result = multierror.Append(result, fmt.Errorf("invalid %s: %w", name, err))
		}
	}

	return result.ErrorOrNil()
}

// RequireRPC returns ErrRPCRequired when no RPC endpoint is configured.
func (c *Config) RequireRPC() error {
	if c.RPCAddr == "" {
		return ErrRPCRequired
	}
	return nil
}

// PrivateKeyECDSA parses PrivateKey. It returns an error when the key is
// empty or malformed.
func (c *Config) PrivateKeyECDSA() (*ecdsa.PrivateKey, error) {
	if c.PrivateKey == "" {
		return nil, errors.New("private key not configured")
	}
	return crypto.HexToECDSA(strings.TrimPrefix(c.PrivateKey, "0x"))
}

// WithDefaults returns a copy of t with zero values replaced by defaults:
//
//	Dial:        5s
//	ChainRead:   12s
//	ChainSubmit: 25s
//	ReceiptWait: 90s
func (t Timeouts) WithDefaults() Timeouts {
	tt := t
	if tt.Dial == 0 {
		tt.Dial = 5 * time.Second
	}
	if tt.ChainRead == 0 {
		tt.ChainRead = 12 * time.Second
	}
	if tt.ChainSubmit == 0 {
		tt.ChainSubmit = 25 * time.Second
	}
	if tt.ReceiptWait == 0 {
		tt.ReceiptWait = 90 * time.Second
	}
	return tt
}

// Load reads the YAML file at path, overlays OCEAN_* environment variables
// and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// FromEnv builds a validated Config from OCEAN_* environment variables only,
// e.g. OCEAN_RPC_ADDR, OCEAN_NETWORK_CHAIN_ID or OCEAN_TIMEOUTS_DIAL.
func FromEnv() (*Config, error) {
	cfg := &Config{}
	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overwrites fields of cfg for which an OCEAN_* variable is set.
// Fields without a variable keep their current value.
func ApplyEnv(cfg *Config) error {
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}
