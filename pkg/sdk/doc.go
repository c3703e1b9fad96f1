// Package sdk is the entry point of the Ocean SDK. It turns a config.Config
// into ready-to-use components:
//
//	cfg := &config.Config{
//		MetadataCacheURI: "https://aquarius.oceanprotocol.com",
//		RPCAddr:          "https://polygon-rpc.com",
//		PrivateKey:       os.Getenv("OCEAN_PRIVATE_KEY"),
//	}
//	core, err := sdk.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer core.Close()
//
//	doc, err := core.Converter().Convert(ctx, did)
//	nonce, err := core.Provider().GetNonce(ctx, providerURI, consumer)
//	m, err := core.Migration(ctx)
//
// # Logging
//
// The package installs a console zap logger as the global logger at Info
// level. Config.Debug (or SetDebug) lowers it to Debug. Replace it with
// zap.ReplaceGlobals to route SDK logs elsewhere.
//
// # Ownership
//
// There is no process-wide instance: every Core is owned by its caller and
// holds at most one chain connection, opened lazily by Migration.
package sdk
