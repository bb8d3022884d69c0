package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	contractx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/contract"
	sessionx "github.com/tanpawarit/NexusFlow-Catalog-Agent/agent/session"
)

const serviceName = "nexusflow-catalog-agent"

type Config struct {
	Addr         string        `envconfig:"ADDR" split_words:"true" default:":8021"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" split_words:"true" default:"15s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" split_words:"true" default:"120s"`
}

// ChatService is the slice of the assistant the transport needs.
type ChatService interface {
	Answer(ctx context.Context, userID string, query string) (string, error)
	Reset(ctx context.Context, userID string) error
}

type Server struct {
	httpServer *http.Server
	chat       ChatService
}

type chatRequest struct {
	UserID string `json:"user_id"`
	Query  string `json:"query"`
}

type chatResponse struct {
	Response   string  `json:"response"`
	StatusCode int     `json:"status_code"`
	Query      string  `json:"query"`
	UserID     string  `json:"user_id"`
	Timestamp  float64 `json:"timestamp"`
}

type resetRequest struct {
	UserID string `json:"user_id"`
}

type errorResponse struct {
	Detail string `json:"detail"`
}

func New(cfg Config, chat ChatService) (*Server, error) {
	if chat == nil {
		return nil, errors.New("chat service is required")
	}

	s := &Server{chat: chat}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/agent", s.handleChat)
	mux.HandleFunc("POST /chat/reset", s.handleReset)
	mux.HandleFunc("GET /health", s.handleHealth)

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("http server listening")
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	query := strings.TrimSpace(req.Query)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID cannot be empty")
		return
	}
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query cannot be empty")
		return
	}

	log.Info().Str("user_id", userID).Msg("received chat query")

	answer, err := s.chat.Answer(r.Context(), userID, query)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sessionx.ErrInvalidUserID) || errors.Is(err, contractx.ErrValidation) {
			status = http.StatusBadRequest
		}
		log.Error().Err(err).Str("user_id", userID).Msg("chat query failed")
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, chatResponse{
		Response:   answer,
		StatusCode: http.StatusOK,
		Query:      query,
		UserID:     userID,
		Timestamp:  float64(time.Now().UnixMilli()) / 1000,
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON")
		return
	}

	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID cannot be empty")
		return
	}

	if err := s.chat.Reset(r.Context(), userID); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, sessionx.ErrInvalidUserID) {
			status = http.StatusBadRequest
		}
		writeError(w, status, err.Error())
		return
	}

	log.Info().Str("user_id", userID).Msg("conversation cleared")
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "cleared",
		"user_id": userID,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "healthy",
		"service":  serviceName,
		"features": []string{"product_catalog", "conversation_memory", "mcp_tools"},
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("encode response")
	}
}

func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, errorResponse{Detail: detail})
}
