package api

import (
	"errors"
	"net/http"
	"strings"

	"mvremote/internal/media"
	"mvremote/internal/player"
)

func (s *Server) handleBrowseDirectories(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimSpace(r.URL.Query().Get("path"))
	if path == "" {
		errorJSON(w, http.StatusBadRequest, "Query parameter path is required.")
		return
	}
	dirs, err := media.Subdirectories(path)
	if err != nil {
		if errors.Is(err, media.ErrNotDirectory) {
			errorJSON(w, http.StatusBadRequest, "Path is not a directory.")
			return
		}
		errorJSON(w, http.StatusBadRequest, "Path does not exist or is inaccessible.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"path":        path,
		"directories": dirs,
	})
}

func (s *Server) handleSetActiveDirectory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	req.Path = strings.TrimSpace(req.Path)
	if req.Path == "" {
		errorJSON(w, http.StatusBadRequest, "Invalid directory path provided.")
		return
	}
	if !checkDirectory(w, req.Path) {
		return
	}
	files, err := s.scanner.Scan(req.Path)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.player.SetActiveDirectory(req.Path, files)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":    "Active directory set to " + req.Path + ". Playlist updated.",
		"videoCount": len(files),
	})
}

func (s *Server) handlePlayerCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Action player.Action `json:"action"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := s.player.Command(req.Action); err != nil {
		errorJSON(w, http.StatusBadRequest, "Unknown player action.")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Command sent."})
}

func (s *Server) handlePlayerStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.player.Status())
}

// handlePlayerWS authenticates the local player via a token query parameter
// and hands the connection to the hub.
func (s *Server) handlePlayerWS(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r)
	}
	if token == "" {
		errorJSON(w, http.StatusForbidden, "Access denied. No token provided.")
		return
	}
	if _, err := s.tokens.Verify(token); err != nil {
		errorJSON(w, http.StatusUnauthorized, "Access denied. Invalid or expired token.")
		return
	}
	s.player.ServeWS(w, r)
}
