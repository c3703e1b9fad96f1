package main

import (
	"fmt"
	"math/big"

	"github.com/oceanprotocol/ocean-sdk-go/pkg/blockchain"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/migration"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/sdk"
	"github.com/urfave/cli/v2"
)

var migrationFlags = []cli.Flag{
	&cli.StringFlag{Name: "did", Usage: "DID of the asset being migrated"},
	&cli.StringFlag{Name: "factory", Usage: "ERC721 factory address (default: erc721_factory_address from config)"},
	&cli.StringFlag{Name: "nft-name", Required: true},
	&cli.StringFlag{Name: "nft-symbol", Required: true},
	&cli.StringFlag{Name: "owner", Usage: "asset owner (default: address of the configured key)"},
	&cli.StringFlag{Name: "cap", Value: "0", Usage: "datatoken cap, integer units"},
	&cli.StringFlag{Name: "rate", Required: true, Usage: "exchange rate, integer base-token units"},
	&cli.StringFlag{Name: "market-fee", Value: "0", Usage: "publishing market fee, integer units"},
	&cli.StringFlag{Name: "market-fee-address", Required: true},
	&cli.StringFlag{Name: "market-token-address", Required: true},
	&cli.StringFlag{Name: "fixed-rate-address", Required: true},
	&cli.StringFlag{Name: "base-token", Required: true},
}

var estimateMigrationCmd = &cli.Command{
	Name:  "estimate-migration",
	Usage: "Estimate the gas needed to migrate a fixed-rate asset",
	Flags: migrationFlags,
	Action: func(cctx *cli.Context) error {
		core, err := loadSDK(cctx)
		if err != nil {
			return err
		}
		defer core.Close()

		params, err := migrationParams(cctx, core)
		if err != nil {
			return err
		}
		m, err := core.Migration(cctx.Context)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cctx.App.Writer, m.Estimate(cctx.Context, params))
		return err
	},
}

var migrateCmd = &cli.Command{
	Name:  "migrate",
	Usage: "Migrate a fixed-rate asset to the ERC721 factory",
	Flags: migrationFlags,
	Action: func(cctx *cli.Context) error {
		core, err := loadSDK(cctx)
		if err != nil {
			return err
		}
		defer core.Close()

		params, err := migrationParams(cctx, core)
		if err != nil {
			return err
		}
		m, err := core.Migration(cctx.Context)
		if err != nil {
			return err
		}
		receipt, err := m.Migrate(cctx.Context, params)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cctx.App.Writer, receipt.TxHash.Hex())
		return err
	},
}

func migrationParams(cctx *cli.Context, core *sdk.Core) (migration.Params, error) {
	factory := cctx.String("factory")
	if factory == "" {
		factory = core.ERC721FactoryAddress
	}
	owner := cctx.String("owner")
	if owner == "" {
		signer, err := core.Signer()
		if err != nil {
			return migration.Params{}, fmt.Errorf("--owner or a private key is required: %w", err)
		}
		owner = signer.Address().Hex()
	}
	capValue, err := uintFlag(cctx, "cap")
	if err != nil {
		return migration.Params{}, err
	}
	marketFee, err := uintFlag(cctx, "market-fee")
	if err != nil {
		return migration.Params{}, err
	}

	return migration.Params{
		DID:                          cctx.String("did"),
		FactoryAddress:               factory,
		NFTName:                      cctx.String("nft-name"),
		NFTSymbol:                    cctx.String("nft-symbol"),
		Owner:                        owner,
		Cap:                          capValue,
		Rate:                         cctx.String("rate"),
		MarketFee:                    marketFee,
		PublishingMarketFeeAddress:   cctx.String("market-fee-address"),
		PublishingMarketTokenAddress: cctx.String("market-token-address"),
		FixedRateExchangeAddress:     cctx.String("fixed-rate-address"),
		BaseTokenAddress:             cctx.String("base-token"),
	}, nil
}

func uintFlag(cctx *cli.Context, name string) (*big.Int, error) {
	v, err := blockchain.ParseUint256(cctx.String(name))
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return v, nil
}
