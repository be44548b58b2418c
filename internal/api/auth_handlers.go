package api

import (
	"net/http"

	"mvremote/internal/auth"
)

func (s *Server) handlePublicSalt(w http.ResponseWriter, _ *http.Request) {
	salt, err := s.auth.PublicSalt()
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"publicSalt": salt})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username             string `json:"username"`
		ClientHashedPassword string `json:"clientHashedPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	token, err := s.auth.Login(req.Username, req.ClientHashedPassword)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token":   token,
		"message": "Login successful.",
	})
}

// handleLogout confirms the logout; tokens are stateless, so the only real
// action is the client discarding its copy.
func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged out. Discard the token on the client.",
	})
}

func (s *Server) handleChangeCredentials(w http.ResponseWriter, r *http.Request) {
	var req struct {
		CurrentClientHashedPassword string `json:"currentClientHashedPassword"`
		NewUsername                 string `json:"newUsername"`
		NewClientHashedPassword     string `json:"newClientHashedPassword"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	tokenUser := auth.UserFromContext(r.Context())
	res, err := s.auth.ChangeCredentials(tokenUser, req.CurrentClientHashedPassword, req.NewUsername, req.NewClientHashedPassword)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if res.ReloginRequired {
		writeJSON(w, http.StatusOK, map[string]string{
			"message": "Credentials updated. Please log in again with your new username.",
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Password updated.",
		"token":   res.Token,
	})
}
