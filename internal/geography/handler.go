package geography

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/frahmantamala/office-management/pkg/logger"
	"github.com/go-chi/chi"
)

type Handler struct {
	*transport.BaseHandler
	Client ClientAPI
}

func NewHandler(client ClientAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Client:      client,
	}
}

func (h *Handler) GetCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.Client.GetCountries(r.Context())
	if err != nil {
		h.Logger.Error("failed to fetch countries", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "Failed to fetch countries")
		return
	}

	h.WriteData(w, http.StatusOK, "Countries fetched successfully", countries)
}

func (h *Handler) GetStates(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	if country == "" {
		h.WriteError(w, http.StatusBadRequest, "Country parameter is required")
		return
	}

	states, err := h.Client.GetStates(r.Context(), country)
	if err != nil {
		h.Logger.Error("failed to fetch states", "country", country, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "Failed to fetch states")
		return
	}

	h.WriteData(w, http.StatusOK, "States fetched successfully", states)
}

func (h *Handler) GetCities(w http.ResponseWriter, r *http.Request) {
	country := chi.URLParam(r, "country")
	state := chi.URLParam(r, "state")
	if country == "" || state == "" {
		h.WriteError(w, http.StatusBadRequest, "Country and state parameters are required")
		return
	}

	cities, err := h.Client.GetCities(r.Context(), country, state)
	if err != nil {
		h.Logger.Error("failed to fetch cities", "country", country, "state", state, "error", err)
		h.WriteError(w, http.StatusInternalServerError, "Failed to fetch cities")
		return
	}

	h.WriteData(w, http.StatusOK, "Cities fetched successfully", cities)
}
