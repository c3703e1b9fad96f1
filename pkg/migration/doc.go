// Package migration moves fixed-rate exchange assets to the ERC721 factory.
//
// A single factory call, createNftWithErc20WithFixedRate, creates the NFT,
// its ERC20 datatoken and a fixed-rate exchange. Params.Call builds that call
// and is shared by both operations, so the gas estimate always matches the
// submitted transaction.
//
//	evm, _ := blockchain.Dial(ctx, cfg.RPCAddr, cfg.Timeouts.Dial)
//	opts, _ := evm.GetTransactOpts(ctx, key)
//	m := migration.New(evm.Client, opts, cfg)
//
//	gas := m.Estimate(ctx, params)
//	receipt, err := m.Migrate(ctx, params)
//
// # Gas
//
// Estimate falls back to the configured default gas limit (1000000) when the
// node cannot estimate the call and never returns an error. Migrate submits
// with a gas limit of exactly Estimate + 1 and a gas price equal to the
// node's suggestion scaled by Config.GasFeeMultiplier, rounded down.
//
// # Failure
//
// Migrate logs failures and returns a nil receipt together with the error.
// A reverted transaction is reported as blockchain.ErrTxReverted.
package migration
