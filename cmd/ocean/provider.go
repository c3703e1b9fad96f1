package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var providerURIFlag = &cli.StringFlag{
	Name:  "provider",
	Usage: "provider URI (default: provider_uri from config)",
}

var providerCmd = &cli.Command{
	Name:  "provider",
	Usage: "Query a provider",
	Subcommands: []*cli.Command{
		providerEndpointsCmd,
		providerNonceCmd,
		providerFileInfoCmd,
		providerValidCmd,
	},
}

func providerURI(cctx *cli.Context, fallback string) (string, error) {
	if uri := cctx.String("provider"); uri != "" {
		return uri, nil
	}
	if fallback == "" {
		return "", errors.New("--provider or provider_uri is required")
	}
	return fallback, nil
}

var providerEndpointsCmd = &cli.Command{
	Name:  "endpoints",
	Usage: "List the endpoints advertised by the provider",
	Flags: []cli.Flag{providerURIFlag},
	Action: func(cctx *cli.Context) error {
		core, err := loadSDK(cctx)
		if err != nil {
			return err
		}
		uri, err := providerURI(cctx, core.ProviderURI)
		if err != nil {
			return err
		}
		endpoints := core.Provider().ServiceEndpoints(cctx.Context, uri)
		if endpoints == nil {
			return fmt.Errorf("no discovery document at %s", uri)
		}
		return printJSON(cctx, endpoints)
	},
}

var providerNonceCmd = &cli.Command{
	Name:      "nonce",
	Usage:     "Print the provider nonce of an account",
	ArgsUsage: "<address>",
	Flags:     []cli.Flag{providerURIFlag},
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return cli.ShowSubcommandHelp(cctx)
		}
		core, err := loadSDK(cctx)
		if err != nil {
			return err
		}
		uri, err := providerURI(cctx, core.ProviderURI)
		if err != nil {
			return err
		}
		nonce, err := core.Provider().GetNonce(cctx.Context, uri, cctx.Args().First())
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cctx.App.Writer, nonce)
		return err
	},
}

var providerFileInfoCmd = &cli.Command{
	Name:  "fileinfo",
	Usage: "Check a file URL, an IPFS hash or an asset service",
	Flags: []cli.Flag{
		providerURIFlag,
		&cli.StringFlag{Name: "url", Usage: "file URL"},
		&cli.StringFlag{Name: "ipfs", Usage: "IPFS CID"},
		&cli.StringFlag{Name: "did", Usage: "asset DID"},
		&cli.StringFlag{Name: "service-id", Usage: "asset service ID (with --did)"},
	},
	Action: func(cctx *cli.Context) error {
		core, err := loadSDK(cctx)
		if err != nil {
			return err
		}
		uri, err := providerURI(cctx, core.ProviderURI)
		if err != nil {
			return err
		}
		client := core.Provider()

		switch {
		case cctx.IsSet("url"):
			return printJSON(cctx, client.CheckFileURL(cctx.Context, uri, cctx.String("url")))
		case cctx.IsSet("ipfs"):
			return printJSON(cctx, client.CheckFileIPFS(cctx.Context, uri, cctx.String("ipfs")))
		case cctx.IsSet("did"):
			return printJSON(cctx, client.CheckDidFiles(cctx.Context, uri, cctx.String("did"), cctx.String("service-id")))
		default:
			return errors.New("one of --url, --ipfs or --did is required")
		}
	},
}

var providerValidCmd = &cli.Command{
	Name:      "valid",
	Usage:     "Check whether a URL serves a provider",
	ArgsUsage: "<url>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return cli.ShowSubcommandHelp(cctx)
		}
		core, err := loadSDK(cctx)
		if err != nil {
			return err
		}
		valid := core.Provider().IsValidProvider(cctx.Context, cctx.Args().First())
		_, err = fmt.Fprintln(cctx.App.Writer, valid)
		return err
	},
}
