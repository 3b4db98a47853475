// Package server exposes the message actions over HTTP on the loopback
// interface, one independent request per action.
package server

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"mime"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"
)

// maxBodyBytes bounds a message; captured pages can be large
const maxBodyBytes = 16 << 20

// Options configures who may send messages.
type Options struct {
	// Secret is the bearer token every message must carry. With an empty
	// secret all messages are refused.
	Secret string

	// AllowedOrigins lists the browser origins (for example
	// chrome-extension://<id>) allowed to send messages. Requests without
	// an Origin header are not browser requests and skip this check.
	AllowedOrigins []string

	Logger *slog.Logger
}

// Server serves a Router on POST /v1/messages.
type Server struct {
	router  *Router
	logger  *slog.Logger
	secret  string
	origins []string
	srv     *http.Server
}

// New creates a Server listening on addr.
func New(addr string, router *Router, opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:  router,
		logger:  logger,
		secret:  opts.Secret,
		origins: opts.AllowedOrigins,
	}

	mux := http.NewServeMux()
	s.setupRoutes(mux)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *Server) setupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /v1/messages", s.handleMessage)
	mux.HandleFunc("OPTIONS /v1/messages", s.handlePreflight)
	mux.HandleFunc("GET /health", s.handleHealth)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.srv.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.srv.Addr, err)
	}

	return s.Serve(ctx, listener)
}

// Serve accepts connections on listener until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	errChan := make(chan error, 1)

	go func() {
		if err := s.srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}

		close(errChan)
	}()

	s.logger.Info("listening for messages", slog.String("addr", listener.Addr().String()))

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(shutdownCtx); err != nil { //nolint:contextcheck // fresh context for shutdown is intentional
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	return nil
}

func (s *Server) handleMessage(w http.ResponseWriter, r *http.Request) {
	if status, reason := s.authorize(r); status != http.StatusOK {
		s.logger.Warn("message rejected",
			slog.String("reason", reason),
			slog.String("origin", r.Header.Get("Origin")),
			slog.String("remote", r.RemoteAddr),
		)

		s.jsonResponse(w, status, Response{Error: reason})

		return
	}

	s.allowOrigin(w, r)

	var req Request

	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.jsonResponse(w, http.StatusBadRequest, Response{Error: "invalid message: " + err.Error()})

		return
	}

	start := time.Now()
	resp := s.router.Handle(r.Context(), req)

	s.logger.Info("message handled",
		slog.String("action", req.Action),
		slog.Bool("success", resp.Success),
		slog.Duration("took", time.Since(start)),
	)

	s.jsonResponse(w, http.StatusOK, resp)
}

// authorize checks origin, content type and bearer secret, in that order.
func (s *Server) authorize(r *http.Request) (int, string) {
	if origin := r.Header.Get("Origin"); origin != "" && !s.originAllowed(origin) {
		return http.StatusForbidden, "origin not allowed"
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return http.StatusUnsupportedMediaType, "content type must be application/json"
	}

	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || s.secret == "" || subtle.ConstantTimeCompare([]byte(token), []byte(s.secret)) != 1 {
		return http.StatusUnauthorized, "missing or invalid bearer secret"
	}

	return http.StatusOK, ""
}

func (s *Server) originAllowed(origin string) bool {
	return slices.Contains(s.origins, origin)
}

func (s *Server) allowOrigin(w http.ResponseWriter, r *http.Request) {
	if origin := r.Header.Get("Origin"); origin != "" {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Add("Vary", "Origin")
	}
}

func (s *Server) handlePreflight(w http.ResponseWriter, r *http.Request) {
	if !s.originAllowed(r.Header.Get("Origin")) {
		w.WriteHeader(http.StatusForbidden)

		return
	}

	s.allowOrigin(w, r)
	w.Header().Set("Access-Control-Allow-Methods", http.MethodPost)
	w.Header().Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("JSON encode error", slog.String("error", err.Error()))
	}
}
