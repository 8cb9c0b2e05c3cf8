package main

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/goliatone/go-questionnaire/components/downloads"
	"github.com/goliatone/go-questionnaire/pkg/orchestrator"
	"github.com/goliatone/go-questionnaire/pkg/response"
)

const shutdownTimeout = 10 * time.Second

func newServeCommand(a *app) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the download and upload endpoints",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				a.cfg.Server.Addr = addr
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			handler, closeStore, err := a.httpHandler(ctx)
			if err != nil {
				return err
			}
			defer closeStore()

			srv := &http.Server{
				Addr:              a.cfg.Server.Addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("listening", zap.String("addr", srv.Addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	return cmd
}

// httpHandler wires the store, orchestrator and response service into the
// downloads component and adds a health check.
func (a *app) httpHandler(ctx context.Context) (http.Handler, func(), error) {
	opts, err := orchestratorOptions(a.cfg)
	if err != nil {
		return nil, nil, err
	}
	st, err := a.openStore(ctx)
	if err != nil {
		return nil, nil, err
	}

	responses := response.NewService(st,
		response.WithLogger(a.logger),
		response.WithNotifier(response.LogNotifier(a.logger)),
	)
	key, err := a.sessionKey()
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	session, err := downloads.NewMobileSession(st, key)
	if err != nil {
		st.Close()
		return nil, nil, err
	}
	component := downloads.New(
		downloads.WithStore(st),
		downloads.WithMobileSession(session),
		downloads.WithGenerator(orchestrator.New(opts...)),
		downloads.WithResponses(responses),
		downloads.WithLogger(a.logger),
		downloads.WithRoutePath(a.cfg.Server.RoutePath),
	)

	mux := http.NewServeMux()
	if _, err := component.RegisterRoutes(mux, "/"); err != nil {
		st.Close()
		return nil, nil, err
	}
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	return mux, func() { st.Close() }, nil
}

// sessionKey returns server.session_key, or a random per-process key when it
// is unset. Sessions signed with a random key do not survive a restart.
func (a *app) sessionKey() ([]byte, error) {
	if key := a.cfg.Server.SessionKey; key != "" {
		return []byte(key), nil
	}
	key := make([]byte, downloads.MinSessionKeyLength)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("questionnaire: session key: %w", err)
	}
	a.logger.Warn("server.session_key not set, using a per-process key")
	return key, nil
}
