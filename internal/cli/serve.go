package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/huepick/internal/api"
	"github.com/jmylchreest/huepick/internal/colour"
	"github.com/jmylchreest/huepick/internal/config"
	"github.com/jmylchreest/huepick/internal/image"
)

// shutdownTimeout bounds graceful shutdown.
const shutdownTimeout = 10 * time.Second

func newServeCmd(a *app) *cobra.Command {
	var (
		listen       string
		allowPrivate bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the sampling and naming API over HTTP",
		Long: `Serve the HTTP API.

Endpoints:
  GET  /healthz        liveness and build information
  POST /v1/swatches    sample an uploaded image (multipart "image" or raw body)
  GET  /v1/resolve     resolve one or more ?q= colours
  GET  /v1/palette     list the reference palette

Settings come from HUEPICK_* environment variables or a .env file; the flags
below override them.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("listen") {
				cfg.ListenAddr = listen
			}
			if cmd.Flags().Changed("allow-private-urls") {
				cfg.AllowPrivateURLs = allowPrivate
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.ListenAddr)
			if err != nil {
				return fmt.Errorf("listen: %w", err)
			}
			return serve(ctx, ln, cfg, a.palette, a.logger)
		},
	}
	cmd.Flags().StringVar(&listen, "listen", ":8080", "address to listen on")
	cmd.Flags().BoolVar(&allowPrivate, "allow-private-urls", false, "allow ?url= images on loopback and private networks")
	return cmd
}

// serve runs the API on ln until ctx is cancelled, then drains in-flight
// requests for up to shutdownTimeout.
func serve(ctx context.Context, ln net.Listener, cfg config.Config, palette *colour.Palette, logger hclog.Logger) error {
	loader := image.NewSmartLoader(image.SmartLoaderOptions{
		Timeout:           cfg.FetchTimeout,
		MaxBytes:          cfg.MaxUploadSizeBytes,
		AllowPrivateHosts: cfg.AllowPrivateURLs,
		MaxPixels:         cfg.MaxPixels,
	})
	router, err := api.NewRouter(cfg, palette, loader, logger)
	if err != nil {
		ln.Close()
		return err
	}

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ErrorLog:          logger.StandardLogger(&hclog.StandardLoggerOptions{InferLevels: true}),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down", "timeout", shutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
