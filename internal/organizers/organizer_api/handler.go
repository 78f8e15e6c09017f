package organizer_api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"eventsphere/internal/cache"
	"eventsphere/internal/config"
	"eventsphere/internal/domain"
	"eventsphere/internal/logger"
	"eventsphere/internal/models"
	"eventsphere/internal/utils"
)

type OrganizerService interface {
	GetAll(ctx context.Context) ([]models.Organizer, error)
	GetByID(ctx context.Context, organizerID int64) (*models.Organizer, error)
	Add(ctx context.Context, request models.OrganizerRequest) (*models.Organizer, error)
	Update(ctx context.Context, request models.OrganizerRequest, organizerID int64) error
	Delete(ctx context.Context, organizerID int64) error
}

type Handler struct {
	OrganizerService OrganizerService
	Cache            cache.Cache
	CacheTTL         config.CacheConfig
	Logger           *logger.Logger
}

func NewHandler(service OrganizerService, c cache.Cache, ttl config.CacheConfig, log *logger.Logger) *Handler {
	return &Handler{
		OrganizerService: service,
		Cache:            c,
		CacheTTL:         ttl,
		Logger:           log,
	}
}

func (h *Handler) GetAllOrganizers(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, cache.OrganizersKey(), func(ctx context.Context) (interface{}, error) {
		return h.OrganizerService.GetAll(ctx)
	})
}

func (h *Handler) GetOrganizerByID(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	h.respondCached(w, r, cache.OrganizerKey(organizerID), func(ctx context.Context) (interface{}, error) {
		return h.OrganizerService.GetByID(ctx, organizerID)
	})
}

func (h *Handler) AddOrganizer(w http.ResponseWriter, r *http.Request) {
	var request models.OrganizerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	organizer, err := h.OrganizerService.Add(r.Context(), request)
	if err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, organizer)
}

func (h *Handler) UpdateOrganizer(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var request models.OrganizerRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.OrganizerService.Update(r.Context(), request, organizerID); err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("organizer updated", nil))
}

func (h *Handler) DeleteOrganizer(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.OrganizerService.Delete(r.Context(), organizerID); err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("organizer deleted", nil))
}

func (h *Handler) respondCached(w http.ResponseWriter, r *http.Request, key string, load func(context.Context) (interface{}, error)) {
	payload, hit, err := cache.Fetch(r.Context(), h.Cache, key, h.CacheTTL.DefaultTTL, load)
	if err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	if h.Logger != nil {
		if hit {
			h.Logger.LogCache("HIT", key, "served from cache")
		} else {
			h.Logger.LogCache("MISS", key, "populated from service")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(payload)
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}
