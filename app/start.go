package app

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sciencemesh/sciencemesh-admin/internal/config"
	"github.com/sciencemesh/sciencemesh-admin/internal/daemon"
	"github.com/sciencemesh/sciencemesh-admin/internal/logger"
)

func init() { //nolint: gochecknoinits
	startCmd.Flags().BoolVar(&devMode, "dev", false, "Enable dev mode")

	rootCmd.AddCommand(startCmd)
}

var (
	configPath string // Directory of the configuration file

	cfg     config.Config
	devMode bool

	startCmd = &cobra.Command{
		Use:     "start",
		Short:   "Start the ScienceMesh admin web service",
		PreRunE: loadConfig,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := logger.Init(cfg.Log); err != nil {
				return err
			}

			d, err := daemon.New(&cfg, configPath)
			if err != nil {
				return err
			}

			return d.Start()
		},
	}
)

// loadConfig reads .env when present, then the main config.
func loadConfig(_ *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	var err error
	if cfg, err = config.ReadConfig(configPath); err != nil {
		return err
	}

	if devMode {
		cfg.DevMode = true
	}

	return nil
}
