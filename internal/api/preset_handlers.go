package api

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"mvremote/internal/preset"
)

func (s *Server) handleListPresets(w http.ResponseWriter, _ *http.Request) {
	items, err := s.presets.List()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// checkDirectory validates a user-supplied path before it is stored or
// scanned. Writes the error response itself and reports whether to proceed.
func checkDirectory(w http.ResponseWriter, path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		errorJSON(w, http.StatusBadRequest, "Path does not exist or is inaccessible.")
		return false
	}
	if !info.IsDir() {
		errorJSON(w, http.StatusBadRequest, "Path is not a directory.")
		return false
	}
	return true
}

func (s *Server) handleAddPreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MainPath string       `json:"mainPath"`
		Order    preset.Order `json:"order"`
		Name     string       `json:"name"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	req.MainPath = strings.TrimSpace(req.MainPath)
	if req.MainPath == "" {
		errorJSON(w, http.StatusBadRequest, "Invalid path provided.")
		return
	}
	if !checkDirectory(w, req.MainPath) {
		return
	}
	items, err := s.presets.Add(req.MainPath, req.Order, req.Name)
	if errors.Is(err, preset.ErrDuplicate) {
		errorJSON(w, http.StatusConflict, "Preset already exists.")
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"presets": items,
		"message": "Preset added successfully.",
	})
}

func (s *Server) handleDeletePreset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.ID == "" {
		errorJSON(w, http.StatusBadRequest, "Invalid id provided for deletion.")
		return
	}
	items, err := s.presets.Remove(req.ID)
	if errors.Is(err, preset.ErrNotFound) {
		errorJSON(w, http.StatusNotFound, "Preset not found.")
		return
	}
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"presets": items,
		"message": "Preset deleted successfully.",
	})
}
