package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"mvremote/internal/auth"
	"mvremote/internal/media"
	"mvremote/internal/player"
	"mvremote/internal/preset"
)

// Server wires the HTTP API over the auth service, preset store, scanner and
// player hub.
type Server struct {
	auth    *auth.Service
	tokens  *auth.TokenService
	presets *preset.Store
	scanner *media.Scanner
	player  *player.Hub
	log     zerolog.Logger
}

func New(authSvc *auth.Service, tokens *auth.TokenService, presets *preset.Store, scanner *media.Scanner, hub *player.Hub, log zerolog.Logger) *Server {
	return &Server{
		auth:    authSvc,
		tokens:  tokens,
		presets: presets,
		scanner: scanner,
		player:  hub,
		log:     log,
	}
}

// Router builds the /api route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/ping", s.handlePing)
		r.Get("/auth/public-salt", s.handlePublicSalt)
		r.Post("/auth/login", s.handleLogin)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/auth/logout", s.handleLogout)
			r.Post("/auth/change-credentials", s.handleChangeCredentials)

			r.Get("/presets", s.handleListPresets)
			r.Post("/presets", s.handleAddPreset)
			r.Delete("/presets", s.handleDeletePreset)

			r.Get("/browse-directories", s.handleBrowseDirectories)
			r.Post("/set-active-directory", s.handleSetActiveDirectory)

			r.Post("/player/command", s.handlePlayerCommand)
			r.Get("/player/status", s.handlePlayerStatus)
		})

		// The local player authenticates with a token query parameter since
		// browsers cannot set headers on a websocket upgrade.
		r.Get("/player/ws", s.handlePlayerWS)
	})

	return r
}

// envelope is the wire format of every response.
type envelope struct {
	Code int         `json:"code"`
	Data interface{} `json:"data"`
	Err  interface{} `json:"err"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Code: status, Data: data, Err: nil})
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(envelope{Code: status, Data: nil, Err: msg})
}

// writeError maps internal failures to the public taxonomy. Details never
// reach the response body; they are logged server-side only.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, auth.ErrValidation):
		errorJSON(w, http.StatusBadRequest, "Missing required fields.")
	case errors.Is(err, auth.ErrBadCredentials):
		errorJSON(w, http.StatusUnauthorized, "Invalid username or password.")
	case errors.Is(err, auth.ErrNoCredentials):
		errorJSON(w, http.StatusNotFound, "No credentials configured.")
	default:
		s.log.Error().Err(err).Msg("request failed")
		errorJSON(w, http.StatusInternalServerError, "Internal server error.")
	}
}

func bearerToken(r *http.Request) string {
	authz := r.Header.Get("Authorization")
	if authz == "" {
		return ""
	}
	parts := strings.SplitN(authz, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// requireAuth gates protected routes. A missing token and an invalid token
// are reported distinctly so the UI can tell "log in" apart from "session
// expired", without leaking anything about the account.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			errorJSON(w, http.StatusForbidden, "Access denied. No token provided.")
			return
		}
		username, err := s.tokens.Verify(token)
		if err != nil {
			errorJSON(w, http.StatusUnauthorized, "Access denied. Invalid or expired token.")
			return
		}
		next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), username)))
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, out interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		errorJSON(w, http.StatusBadRequest, "Invalid request body.")
		return false
	}
	return true
}

func (s *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"message": "pong"})
}
