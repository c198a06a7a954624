package web

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/AlexYaroshenko/dotless/internal/bot"
	"github.com/AlexYaroshenko/dotless/internal/store"
	"github.com/AlexYaroshenko/dotless/internal/telegram"
)

const (
	secretHeader = "X-Telegram-Bot-Api-Secret-Token"
	maxBodyBytes = 1 << 20
)

// Config holds the webhook settings. An empty WebhookSecret disables the
// secret header check, and a nil Allowed set admits only public handlers.
type Config struct {
	WebhookPath   string
	WebhookSecret string
	Allowed       bot.AllowedIDs
}

// Server receives Telegram webhook deliveries and hands each update to the
// registry.
type Server struct {
	cfg      Config
	registry *bot.Registry
	platform bot.Platform
	updates  store.UpdateLog
	logger   *slog.Logger
	now      func() time.Time
	router   chi.Router
}

// New builds a server. updates may be nil, which disables redelivery
// detection.
func New(cfg Config, registry *bot.Registry, platform bot.Platform, updates store.UpdateLog, logger *slog.Logger) *Server {
	if cfg.WebhookPath == "" {
		cfg.WebhookPath = "/webhook"
	}
	s := &Server{
		cfg:      cfg,
		registry: registry,
		platform: platform,
		updates:  updates,
		logger:   logger.With("component", "web"),
		now:      time.Now,
	}
	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Get("/", s.handleHealth)
	r.Post(s.cfg.WebhookPath, s.handleWebhook)

	r.NotFound(s.handleNotFound)
	r.MethodNotAllowed(s.handleNotFound)
	return r
}

func (s *Server) Handler() http.Handler { return s.router }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	server := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting web server", "addr", addr, "webhook_path", s.cfg.WebhookPath)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	s.logger.Info("web server stopped")
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, "OK")
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = fmt.Fprintf(w, "%s - %s not found (404)", r.Method, r.URL.Path)
}

func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	logger := s.logger.With("request_id", middleware.GetReqID(r.Context()))
	// Processing outlives a client that hangs up, so a marked update is
	// always dispatched to the end.
	ctx := context.WithoutCancel(r.Context())

	var upd telegram.Update
	marked := false
	defer func() {
		if rec := recover(); rec != nil {
			if marked {
				s.forget(ctx, logger, upd.UpdateID)
			}
			s.fail(w, logger, fmt.Errorf("panic: %v", rec))
		}
	}()

	if s.cfg.WebhookSecret != "" {
		got := r.Header.Get(secretHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(s.cfg.WebhookSecret)) != 1 {
			logger.Warn("unauthorized webhook request: invalid secret token")
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
			return
		}
	}

	if err := decodeUpdate(w, r, &upd); err != nil {
		s.fail(w, logger, err)
		return
	}
	logger = logger.With("update_id", upd.UpdateID, "kind", upd.Kind())
	logger.Debug("incoming update")

	if s.updates != nil {
		fresh, err := s.updates.MarkProcessed(ctx, upd.UpdateID)
		switch {
		case err != nil:
			logger.Warn("dedup store unavailable, processing anyway", "error", err)
		case !fresh:
			logger.Info("duplicate update ignored")
			writeJSON(w, http.StatusOK, okResponse{OK: true})
			return
		default:
			marked = true
		}
	}

	s.process(ctx, &upd, logger)
	writeJSON(w, http.StatusOK, okResponse{OK: true})
}

var errNullUpdate = errors.New("decode update: body is null")

// decodeUpdate reads exactly one JSON object from the body.
func decodeUpdate(w http.ResponseWriter, r *http.Request, upd *telegram.Update) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	body = bytes.TrimSpace(body)
	if bytes.Equal(body, []byte("null")) {
		return errNullUpdate
	}
	if err := json.Unmarshal(body, upd); err != nil {
		return fmt.Errorf("decode update: %w", err)
	}
	return nil
}

// forget releases a dedup mark so Telegram's redelivery is dispatched.
func (s *Server) forget(ctx context.Context, logger *slog.Logger, updateID int64) {
	if err := s.updates.Forget(ctx, updateID); err != nil {
		logger.Warn("releasing processed update failed", "error", err)
	}
}

// process dispatches one update. Handler errors are reported to the user
// and never escape.
func (s *Server) process(ctx context.Context, upd *telegram.Update, logger *slog.Logger) {
	switch upd.Kind() {
	case telegram.KindMessage:
		m := upd.Message
		if !m.IsPrivate() {
			logger.Debug("ignoring non-private chat", "chat_type", m.Chat.Type)
			return
		}
		res, err := s.registry.DispatchMessage(ctx, m, s.platform, s.cfg.Allowed)
		s.logResult(logger, res, m.From)
		if err != nil {
			s.replyMessageError(ctx, logger, m, err)
		}

	case telegram.KindChannelPost:
		logger.Debug("ignoring channel post", "chat_id", upd.ChannelPost.Chat.ID)

	case telegram.KindInlineQuery:
		q := upd.InlineQuery
		res, err := s.registry.DispatchInline(ctx, q, s.platform, s.cfg.Allowed)
		s.logResult(logger, res, q.From)
		if err != nil {
			s.replyInlineError(ctx, logger, q, err)
		}

	case telegram.KindCallbackQuery:
		q := upd.CallbackQuery
		res, err := s.registry.DispatchCallback(ctx, q, s.platform, s.cfg.Allowed)
		s.logResult(logger, res, q.From)
		if err != nil {
			s.replyCallbackError(ctx, logger, q, err)
		}

	case telegram.KindChosenInlineResult:
		c := upd.ChosenInlineResult
		logger.Info("inline result chosen", "result_id", c.ResultID, "user", telegram.FormatUserName(c.From))

	default:
		logger.Debug("ignoring unsupported update")
	}
}

func (s *Server) logResult(logger *slog.Logger, res bot.Result, from *telegram.User) {
	switch res.Outcome {
	case bot.Denied:
		logger.Info("sender not authorized", "handler", res.Handler, "user", telegram.FormatUserName(from))
	default:
		logger.Debug("dispatched", "handler", res.Handler, "outcome", res.Outcome.String())
	}
}

type okResponse struct {
	OK bool `json:"ok"`
}

type errorResponse struct {
	OK        bool   `json:"ok"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// timestampLayout is ISO-8601 in UTC with millisecond precision.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func (s *Server) fail(w http.ResponseWriter, logger *slog.Logger, err error) {
	logger.Error("webhook error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		OK:        false,
		Error:     err.Error(),
		Timestamp: s.now().UTC().Format(timestampLayout),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
