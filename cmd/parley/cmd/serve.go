package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfrund/parley/internal/config"
	"github.com/nfrund/parley/internal/logging"
	"github.com/nfrund/parley/internal/server"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcript web server",
	Long: `Run the transcript web server until interrupted.

Configuration is read from a .env file and the environment (APP_ADDR,
TRANSCRIPT_BACKEND, SURREAL_*, ...). --addr overrides APP_ADDR.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		if serveAddr != "" {
			cfg.Addr = serveAddr
		}
		logging.New(cfg.LogFormat, cfg.LogLevel)

		s, err := server.New(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		return s.Start()
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address, overrides APP_ADDR")
	rootCmd.AddCommand(serveCmd)
}
