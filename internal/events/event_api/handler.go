package event_api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"eventsphere/internal/cache"
	"eventsphere/internal/config"
	"eventsphere/internal/domain"
	"eventsphere/internal/logger"
	"eventsphere/internal/models"
	"eventsphere/internal/utils"
)

type EventService interface {
	GetAll(ctx context.Context) ([]models.Event, error)
	GetByID(ctx context.Context, eventID int64) (*models.Event, error)
	GetByOrganizer(ctx context.Context, organizerID int64) ([]models.Event, error)
	GetUpcomingSortedByPopularity(ctx context.Context) ([]models.Event, error)
	Add(ctx context.Context, request models.EventRequest) (*models.Event, error)
	Update(ctx context.Context, request models.EventRequest, eventID int64) error
	Delete(ctx context.Context, eventID int64) error
}

type Handler struct {
	EventService EventService
	Cache        cache.Cache
	CacheTTL     config.CacheConfig
	Logger       *logger.Logger
}

func NewHandler(service EventService, c cache.Cache, ttl config.CacheConfig, log *logger.Logger) *Handler {
	return &Handler{
		EventService: service,
		Cache:        c,
		CacheTTL:     ttl,
		Logger:       log,
	}
}

func (h *Handler) GetAllEvents(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, cache.EventsKey(), func(ctx context.Context) (interface{}, error) {
		return h.EventService.GetAll(ctx)
	})
}

func (h *Handler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	h.respondCached(w, r, cache.EventKey(eventID), func(ctx context.Context) (interface{}, error) {
		return h.EventService.GetByID(ctx, eventID)
	})
}

func (h *Handler) GetEventsByOrganizer(w http.ResponseWriter, r *http.Request) {
	organizerID, ok := h.pathID(w, r, "organizerId")
	if !ok {
		return
	}

	h.respondCached(w, r, cache.EventsByOrganizerKey(organizerID), func(ctx context.Context) (interface{}, error) {
		return h.EventService.GetByOrganizer(ctx, organizerID)
	})
}

func (h *Handler) GetUpcomingEventsByPopularity(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, cache.PopularEventsKey(), func(ctx context.Context) (interface{}, error) {
		return h.EventService.GetUpcomingSortedByPopularity(ctx)
	})
}

func (h *Handler) AddEvent(w http.ResponseWriter, r *http.Request) {
	var request models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.EventService.Add(r.Context(), request)
	if err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, event)
}

func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "eventId")
	if !ok {
		return
	}

	var request models.EventRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.EventService.Update(r.Context(), request, eventID); err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event updated", nil))
}

func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.EventService.Delete(r.Context(), eventID); err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("event deleted", nil))
}

func (h *Handler) respondCached(w http.ResponseWriter, r *http.Request, key string, load func(context.Context) (interface{}, error)) {
	h.respondCachedTTL(w, r, key, h.CacheTTL.DefaultTTL, load)
}

func (h *Handler) respondCachedTTL(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, load func(context.Context) (interface{}, error)) {
	payload, hit, err := cache.Fetch(r.Context(), h.Cache, key, ttl, load)
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
