package auth

import (
	"encoding/json"
	"log/slog"
	"net/http"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/frahmantamala/office-management/pkg/logger"
)

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(svc ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     svc,
	}
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var dto LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Authenticate(dto)
	if err != nil {
		h.Logger.Error("authentication failed", "email", dto.NormalizedEmail(), "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusOK, "Login successful", resp)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var dto RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.Service.Register(dto)
	if err != nil {
		h.Logger.Error("registration failed", "email", dto.NormalizedEmail(), "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteData(w, http.StatusCreated, "Admin registered successfully", resp)
}

// AuthMiddleware guards protected routes. It validates the bearer token
// and re-confirms the admin still exists before letting the request
// through with the admin identity on the context.
func (h *Handler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := h.ExtractTokenFromHeader(r)
		if token == "" {
			h.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		claims, err := h.Service.ValidateAccessToken(token)
		if err != nil {
			h.Logger.Warn("token validation failed", "error", err)
			if appErr, ok := errors.IsAppError(err); ok {
				h.HandleError(w, appErr)
			} else {
				h.WriteError(w, http.StatusUnauthorized, "invalid token")
			}
			return
		}

		admin, err := h.Service.GetAdminByID(claims.AdminID)
		if err != nil {
			h.Logger.Warn("token admin no longer exists", "admin_id", claims.AdminID)
			h.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		ctx := errors.ContextWithAdminID(r.Context(), admin.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
