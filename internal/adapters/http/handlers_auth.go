package http

import (
	"net/http"

	"github.com/merkato/storefront/internal/application"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "login", err)
		return
	}

	view, err := h.auth.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeMappedError(r.Context(), w, "login", err)
		return
	}
	writeSuccess(w, http.StatusOK, h.sessionPayload(view))
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "register", err)
		return
	}

	view, err := h.auth.Register(r.Context(), req.Name, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		writeMappedError(r.Context(), w, "register", err)
		return
	}
	writeSuccess(w, http.StatusCreated, h.sessionPayload(view))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	h.auth.Logout(r.Context())
	writeMessage(w, http.StatusOK, "signed out")
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, http.StatusOK, h.sessionPayload(h.auth.Session()))
}

func (h *Handler) updateProfile(w http.ResponseWriter, r *http.Request) {
	var patch application.ProfilePatch
	if err := decodeBody(r, &patch); err != nil {
		writeValidationError(r.Context(), w, "update_profile", err)
		return
	}
	view := h.auth.UpdateProfile(r.Context(), patch)
	writeSuccess(w, http.StatusOK, h.sessionPayload(view))
}

func (h *Handler) dismissSyncNotice(w http.ResponseWriter, r *http.Request) {
	h.auth.DismissSyncNotification()
	writeMessage(w, http.StatusOK, "dismissed")
}

// sessionPayload augments the session view with the derived greeting and
// profile-completeness flags the account surfaces render.
func (h *Handler) sessionPayload(view application.SessionView) map[string]any {
	payload := map[string]any{
		"session":  view,
		"greeting": h.auth.Greeting(),
	}
	if view.User != nil {
		payload["profile_complete"] = view.User.IsProfileComplete()
	}
	return payload
}
