package main

import (
	"github.com/urfave/cli/v2"
)

var convertCmd = &cli.Command{
	Name:      "convert-ddo",
	Usage:     "Fetch a legacy DDO from the metadata cache and print its v4 form",
	ArgsUsage: "<did>",
	Action: func(cctx *cli.Context) error {
		if cctx.NArg() != 1 {
			return cli.ShowSubcommandHelp(cctx)
		}
		core, err := loadSDK(cctx)
		if err != nil {
			return err
		}
		defer core.Close()

		doc, err := core.Converter().Convert(cctx.Context, cctx.Args().First())
		if err != nil {
			return err
		}
		return printJSON(cctx, doc)
	},
}
