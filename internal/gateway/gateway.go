// Package gateway runs the browser-facing edge process. It forwards every
// /api/ request to the backend server unchanged and answers anything else
// with 404, so the backend never has to be reachable from the outside.
package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httputil"
	"net/url"
	"time"

	"github.com/dmitrijs2005/taskboard/internal/logging"
)

type Gateway struct {
	address string
	backend *url.URL
	logger  logging.Logger
}

func New(address, backendURL string, l logging.Logger) (*Gateway, error) {
	u, err := url.Parse(backendURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("backend url must be absolute, e.g. http://localhost:8080")
	}
	return &Gateway{
		address: address,
		backend: u,
		logger:  l.With("module", "gateway"),
	}, nil
}

// Handler builds the proxy mux. Upstream failures are scrubbed to a generic
// JSON body so backend addresses and dial errors never reach the browser.
func (g *Gateway) Handler() http.Handler {
	proxy := &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(g.backend)
			pr.SetXForwarded()
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			g.logger.Error(r.Context(), "upstream error",
				"method", r.Method, "path", r.URL.Path, "error", err.Error())
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte(`{"error":"internal server error"}`))
		},
	}

	mux := http.NewServeMux()
	mux.Handle("/api/", proxy)
	return mux
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (g *Gateway) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:         g.address,
		Handler:      g.Handler(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()
		g.logger.Info(ctx, "Stopping gateway...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			g.logger.Error(ctx, "shutdown error", "error", err.Error())
		}
	}()

	g.logger.Info(ctx, "Starting gateway", "address", g.address, "backend", g.backend.String())

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
