package transport

import (
	"encoding/json"
	"log/slog"
	"math"
	"net/http"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/pkg/logger"
)

// APIResponse is the envelope every endpoint returns, success or failure.
type APIResponse struct {
	Success    bool        `json:"success"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Error      string      `json:"error,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int   `json:"pages"`
}

// NewPagination computes the page count from total and limit.
func NewPagination(page, limit int, total int64) *Pagination {
	pages := 0
	if limit > 0 {
		pages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return &Pagination{
		Page:  page,
		Limit: limit,
		Total: total,
		Pages: pages,
	}
}

// BaseHandler provides common functionality for HTTP handlers
type BaseHandler struct {
	Logger *slog.Logger

	// ExposeErrors echoes underlying error text in 500 envelopes.
	// Left false in production.
	ExposeErrors bool
}

// NewBaseHandler creates a base handler with logger
func NewBaseHandler(lg *slog.Logger) *BaseHandler {
	if lg == nil {
		lg = logger.LoggerWrapper()
		if lg == nil {
			lg = slog.Default()
		}
	}
	return &BaseHandler{Logger: lg}
}

func (h *BaseHandler) writeEnvelope(w http.ResponseWriter, status int, resp APIResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.Logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteData writes a success envelope with a payload.
func (h *BaseHandler) WriteData(w http.ResponseWriter, status int, message string, data interface{}) {
	h.writeEnvelope(w, status, APIResponse{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// WritePage writes a success envelope with a payload and pagination metadata.
func (h *BaseHandler) WritePage(w http.ResponseWriter, message string, data interface{}, pagination *Pagination) {
	h.writeEnvelope(w, http.StatusOK, APIResponse{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// WriteError writes a failure envelope.
func (h *BaseHandler) WriteError(w http.ResponseWriter, status int, message string) {
	h.Logger.Error("http error", "status", status, "message", message)
	h.writeEnvelope(w, status, APIResponse{
		Success: false,
		Message: message,
	})
}

// HandleError writes an AppError as a failure envelope using its status code.
func (h *BaseHandler) HandleError(w http.ResponseWriter, appErr *errors.AppError) {
	h.Logger.Error("http error", "status", appErr.StatusCode, "type", appErr.Type, "code", appErr.Code, "message", appErr.Message)
	h.writeEnvelope(w, appErr.StatusCode, APIResponse{
		Success: false,
		Message: appErr.GetDetailedMessage(),
	})
}

// HandleServiceError translates a service error into the response envelope.
// AppErrors carry their own status; anything else is an internal error.
func (h *BaseHandler) HandleServiceError(w http.ResponseWriter, err error) {
	if appErr, ok := errors.IsAppError(err); ok {
		h.HandleError(w, appErr)
		return
	}

	h.Logger.Error("unexpected service error", "error", err)
	resp := APIResponse{
		Success: false,
		Message: "internal server error",
	}
	if h.ExposeErrors && err != nil {
		resp.Error = err.Error()
	}
	h.writeEnvelope(w, http.StatusInternalServerError, resp)
}

// ExtractTokenFromHeader extracts Bearer token from Authorization header
func (h *BaseHandler) ExtractTokenFromHeader(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}

	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ""
	}

	return authHeader[7:]
}
