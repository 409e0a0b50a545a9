package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/logger"
	"github.com/uezu-lgtm/demo8-job-proposal-draft/internal/server"
)

const defaultPort = 8080

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and the drafts API",
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := logger.New(viper.GetBool("json"), viper.GetBool("debug"))
		if err != nil {
			return fmt.Errorf("creating logger: %w", err)
		}
		defer log.Sync() //nolint:errcheck

		config, err := getConfig()
		if err != nil {
			return fmt.Errorf("parsing configuration: %w", err)
		}

		d, generator, info, err := newDrafter(cmd.Context(), config, log)
		if err != nil {
			return err
		}

		srv := server.New(d, generator, info.Provider, log)

		host := ""
		port := defaultPort
		if config.Server != nil {
			host = config.Server.Host
			if config.Server.Port > 0 {
				port = config.Server.Port
			}
		}
		addr := fmt.Sprintf("%s:%d", host, port)

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Listen(addr)
		}()

		log.Info("server started",
			zap.String("addr", addr),
			zap.String(logger.FieldBackend, info.Provider),
		)

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

		select {
		case err := <-errCh:
			return fmt.Errorf("server stopped: %w", err)
		case sig := <-quit:
			log.Info("shutting down", zap.String("signal", sig.String()))
			if err := srv.Shutdown(); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 0, "listen port (overrides configuration)")
	serveCmd.Flags().String("host", "", "listen host (overrides configuration)")

	viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
	viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
}
