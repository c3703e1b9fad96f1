// Command ocean is a command-line front end for the Ocean SDK: it converts
// legacy DDOs, migrates fixed-rate assets and queries providers.
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/oceanprotocol/ocean-sdk-go/pkg/config"
	"github.com/oceanprotocol/ocean-sdk-go/pkg/sdk"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		zap.L().Error("command failed", zap.Error(err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "ocean",
		Usage: "Ocean protocol client tools",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "YAML config file; OCEAN_* environment variables are used when absent",
				EnvVars: []string{"OCEAN_CONFIG"},
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "enable debug logging",
			},
		},
		Before: func(cctx *cli.Context) error {
			zap.ReplaceGlobals(sdk.NewLogger(cctx.App.ErrWriter))
			return nil
		},
		Commands: []*cli.Command{
			convertCmd,
			estimateMigrationCmd,
			migrateCmd,
			providerCmd,
		},
	}
}

// loadSDK builds an SDK instance from --config or the environment.
func loadSDK(cctx *cli.Context) (*sdk.Core, error) {
	var (
		cfg *config.Config
		err error
	)
	if path := cctx.String("config"); path != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.FromEnv()
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cctx.Bool("debug") {
		cfg.Debug = true
	}
	return sdk.New(cfg)
}

func printJSON(cctx *cli.Context, v any) error {
	enc := json.NewEncoder(cctx.App.Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
