package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/darmiel/voxauth/internal/api"
	"github.com/darmiel/voxauth/internal/logging"
	"github.com/darmiel/voxauth/internal/tasks"
)

const TokenCleanupTask = "token-gc"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the voxauth server",
	Long: `Serves the token issuing endpoint (POST /v1/token), the identity resolving
endpoint (POST /v1/token/resolve) and, if an admin signing key is configured,
the admin API.`,
	Example: `  voxauth serve -f voxauth.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := f.LoadConfig()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Server.Addr = addr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		log.Info().Str("issuer", cfg.Issuer).Msg("Initializing issuer...")
		c, err := BuildComponents(ctx, cfg, true)
		if err != nil {
			return err
		}
		defer func() {
			if err := c.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close auditor")
			}
		}()

		taskManager := tasks.NewManager(ctx)
		err = taskManager.Register(TokenCleanupTask, cfg.Store.CleanupInterval,
			func(ctx context.Context, logger logging.InternalLogger) error {
				n, err := c.Store.DeleteExpired(ctx)
				if err != nil {
					return err
				}
				logger.Info("removed %d expired token(s)", n)
				return nil
			})
		if err != nil {
			return err
		}

		srv := api.NewServer(c.Provider, c.Auditor, c.Store, taskManager, cfg.Defaults)
		if cfg.Server.AdminSigningKey == "" {
			log.Warn().Msg("No admin signing key configured, admin API is disabled")
		}

		server := &http.Server{
			Addr:              cfg.Server.Addr,
			Handler:           srv.Routes([]byte(cfg.Server.AdminSigningKey)),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() {
			log.Info().Msgf("Starting server on %s...", cfg.Server.Addr)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
			close(errCh)
		}()

		select {
		case err := <-errCh:
			if err != nil {
				return fmt.Errorf("server crashed: %w", err)
			}
		case <-ctx.Done():
		}
		log.Info().Msg("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}
		stop()
		taskManager.Wait()

		log.Info().Msg("Server exited")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	f.bindConfigFlag(serveCmd.Flags())
	serveCmd.Flags().String("addr", "", "address to listen on (overrides server.addr)")
}
