package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kisanmitra/formbridge/internal/adapters/driven/auth"
	configfile "github.com/kisanmitra/formbridge/internal/adapters/driven/config/file"
	"github.com/kisanmitra/formbridge/internal/adapters/driving/rest"
	"github.com/kisanmitra/formbridge/internal/connectors/frappe"
	"github.com/kisanmitra/formbridge/internal/core/services"
	"github.com/kisanmitra/formbridge/internal/logger"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the formbridge API server",
	Long: `Starts the HTTP server, connects to the upstream ERP lazily on
first use, and watches the config file so upstream credentials can be
rotated without a restart.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := configfile.Load(flagConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	erp := frappe.NewClient(frappe.Config{
		BaseURL: cfg.Upstream.BaseURL,
		Credentials: frappe.Credentials{
			Username: cfg.Upstream.Username,
			Password: cfg.Upstream.Password,
		},
		ReadTimeout:       cfg.Upstream.ReadTimeout(),
		WriteTimeout:      cfg.Upstream.WriteTimeout(),
		RequestsPerSecond: cfg.Upstream.RequestsPerSecond,
	})

	metadata := services.NewMetadataService(erp, cfg.Upstream.CountCap)
	submission := services.NewSubmissionService(erp)
	verifier := auth.NewGoogleVerifier(cfg.Auth.GoogleAudience)

	server := rest.NewServer(rest.Config{
		ListenAddr:  cfg.Server.ListenAddr,
		CORSOrigins: cfg.Server.CORSOrigins,
	}, metadata, submission, verifier)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Credential rotation without a restart: the watcher reloads the
	// file and swaps the connector's login.
	go func() {
		err := configfile.Watch(ctx, flagConfigPath, func(updated *configfile.Config) {
			erp.SetCredentials(updated.Upstream.Username, updated.Upstream.Password)
		})
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.Warn("config watcher stopped: %v", err)
		}
	}()

	return server.ListenAndServe(ctx)
}
