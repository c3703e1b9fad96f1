// Package config provides configuration management for the Ocean SDK.
//
// This package defines the Config structure that controls SDK behavior:
// network selection, the RPC endpoint and signing key used by the exchange
// migration, the metadata cache that resolves legacy DDOs, the default
// provider, gas settings and timeouts.
//
// # Basic Configuration
//
// Converting DDOs and talking to a provider need no chain access:
//
//	cfg := &config.Config{
//		MetadataCacheURI: "https://aquarius.oceanprotocol.com",
//		ProviderURI:      "https://v4.provider.mainnet.oceanprotocol.com",
//	}
//
// Migrating fixed-rate assets additionally needs an RPC endpoint, a key and
// the ERC721 factory address:
//
//	cfg := &config.Config{
//		Network:              config.Polygon,
//		RPCAddr:              "https://polygon-rpc.com",
//		PrivateKey:           "YOUR_PRIVATE_KEY",
//		ERC721FactoryAddress: "0x...",
//	}
//
// # Network Selection
//
// Predefined networks:
//
//	config.Main        - Ethereum mainnet (ChainID: 1)
//	config.Polygon     - Polygon PoS (ChainID: 137)
//	config.Mumbai      - Polygon Mumbai testnet (ChainID: 80001)
//	config.Development - local barge ganache (ChainID: 8996)
//
// # Gas Settings
//
// GasLimitDefault is returned by the migration helper when the node fails to
// estimate the factory call (default 1000000). GasFeeMultiplier scales the
// node's suggested gas price (default 1, i.e. unchanged).
//
// # Loading
//
// Load reads a YAML file and then overlays environment variables; FromEnv
// reads environment variables only. Variables use the OCEAN_ prefix and the
// field's upper-case name, nested with underscores:
//
//	OCEAN_RPC_ADDR=https://polygon-rpc.com
//	OCEAN_NETWORK_CHAIN_ID=137
//	OCEAN_TIMEOUTS_RECEIPT_WAIT=2m
//
// # Configuration Validation
//
// Always call Validate() to apply defaults and check fields. Both loaders
// call it for you. Validate reports every invalid field at once.
//
// # Thread Safety
//
// Config instances should be created once and not modified after passing to sdk.New().
package config
