package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/finwatch/asset/config"
	"github.com/finwatch/asset/forecast"
	"github.com/finwatch/asset/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		assetPath     string
		periods       []int
		loggingConfig string
	)

	cmd := &cobra.Command{
		Use:          "asset",
		Short:        "tool to forecast asset revenue",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := setupLogging(loggingConfig)
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			var in io.Reader = cmd.InOrStdin()
			if assetPath != "" {
				file, err := os.Open(assetPath)
				if err != nil {
					return fmt.Errorf("open asset file: %w", err)
				}
				defer file.Close()
				in = file
			}

			asset, err := forecast.LoadAsset(in, log)
			if err != nil {
				return err
			}
			return forecast.PrintRevenue(cmd.OutOrStdout(), log, asset, periods)
		},
	}

	cmd.Flags().StringVarP(&assetPath, "filepath", "f", "", "path to the asset file (defaults to stdin)")
	cmd.Flags().IntSliceVarP(&periods, "periods", "p", nil, "forecast periods in years")
	cmd.Flags().StringVar(&loggingConfig, "logging-config", "", "path to logging config in YAML format")
	_ = cmd.MarkFlagRequired("periods")

	return cmd
}

// setupLogging builds the logger from a YAML config when a path is given;
// without one, logging stays off.
func setupLogging(path string) (logger.Logger, error) {
	if path == "" {
		return logger.NewNop(), nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load logging config: %w", err)
	}
	return logger.New(cfg.Logger)
}
