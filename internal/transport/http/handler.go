package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"pritapia/internal/domain"
	"pritapia/internal/dto"
	"pritapia/internal/netutil"
	"pritapia/internal/service"
	"pritapia/internal/store"
)

type handler struct {
	auth   service.AuthService
	audits service.AuditService

	// trustProxy gates X-Forwarded-For / X-Real-IP. Off means the socket
	// address is the client address, whatever the headers claim.
	trustProxy bool
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Bad request")
		return
	}
	res, err := h.auth.Login(r.Context(), req, clientIP(r, h.trustProxy), r.UserAgent())
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *handler) session(w http.ResponseWriter, r *http.Request) {
	principal, err := h.auth.Session(r.Context(), bearerToken(r))
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, principal)
}

func (h *handler) logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), bearerToken(r)); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// logoutAll revokes every live session of the caller, not just the one
// behind the presented token.
func (h *handler) logoutAll(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.LogoutAll(r.Context(), bearerToken(r)); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *handler) activate(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		writeError(w, http.StatusBadRequest, "Token required")
		return
	}
	if err := h.auth.Activate(r.Context(), token); err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// auditLogs lists audit rows, admins only.
func (h *handler) auditLogs(w http.ResponseWriter, r *http.Request) {
	principal, err := h.auth.Session(r.Context(), bearerToken(r))
	if err != nil {
		writeAuthError(w, err)
		return
	}
	if principal.Role != domain.RoleAdmin {
		writeError(w, http.StatusForbidden, "Forbidden")
		return
	}

	if id := r.URL.Query().Get("id"); id != "" {
		log, err := h.audits.Get(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrRecordNotFound) {
				writeError(w, http.StatusNotFound, "Audit log not found")
				return
			}
			writeAuthError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, log)
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := h.audits.List(r.Context(), dto.AuditQuery{
		Module: r.URL.Query().Get("module"),
		Limit:  limit,
	})
	if err != nil {
		writeAuthError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	return ""
}

// clientIP resolves the address the login throttle keys on. Forwarding
// headers are client-controlled, so they only count when the deployment
// declared a proxy in front; otherwise a caller could dodge the throttle by
// rotating X-Forwarded-For values on one socket.
func clientIP(r *http.Request, trustProxy bool) string {
	if trustProxy {
		if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
			// XFF can be a list: client, proxy1, proxy2...
			ip := strings.TrimSpace(strings.Split(xff, ",")[0])
			if normalized, ok := netutil.NormalizeIP(ip); ok {
				return normalized
			}
		}
		if xr := r.Header.Get("X-Real-IP"); xr != "" {
			if normalized, ok := netutil.NormalizeIP(xr); ok {
				return normalized
			}
		}
	}
	if normalized, ok := netutil.NormalizeIP(r.RemoteAddr); ok {
		return normalized
	}
	return r.RemoteAddr
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeAuthError maps the domain taxonomy onto wire statuses and the exact
// messages the SPA matches on.
func writeAuthError(w http.ResponseWriter, err error) {
	var mf *domain.MissingFieldError
	switch {
	case errors.As(err, &mf):
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Missing required field: %s", mf.Field))
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrTwoFactorInvalid):
		writeError(w, http.StatusUnauthorized, "Two-factor code required or invalid")
	case errors.Is(err, domain.ErrAccountNotActivated):
		writeError(w, http.StatusForbidden, "Account not activated")
	case errors.Is(err, domain.ErrNotLoggedIn):
		writeError(w, http.StatusUnauthorized, "Not logged in")
	case errors.Is(err, domain.ErrRateLimited):
		writeError(w, http.StatusTooManyRequests, "Too many attempts")
	case errors.Is(err, domain.ErrInvalidToken):
		writeError(w, http.StatusBadRequest, "Invalid token")
	default:
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
