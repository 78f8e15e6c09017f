package attendee_api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"eventsphere/internal/attendees/pass"
	"eventsphere/internal/cache"
	"eventsphere/internal/config"
	"eventsphere/internal/domain"
	"eventsphere/internal/logger"
	"eventsphere/internal/models"
	"eventsphere/internal/utils"
)

type AttendeeService interface {
	GetAll(ctx context.Context) ([]models.Attendee, error)
	GetByID(ctx context.Context, attendeeID int64) (*models.Attendee, error)
	GetByEvent(ctx context.Context, eventID int64) ([]models.Attendee, error)
	Add(ctx context.Context, request models.AttendeeRequest) (*models.Attendee, error)
	Update(ctx context.Context, request models.AttendeeRequest, attendeeID int64) error
	Delete(ctx context.Context, attendeeID int64) error
	GetRegistration(ctx context.Context, attendeeID, eventID int64) (*models.Attendee, error)
}

type Handler struct {
	AttendeeService AttendeeService
	Cache           cache.Cache
	CacheTTL        config.CacheConfig
	PassGenerator   *pass.Generator
	Logger          *logger.Logger
}

func NewHandler(service AttendeeService, c cache.Cache, ttl config.CacheConfig, gen *pass.Generator, log *logger.Logger) *Handler {
	return &Handler{
		AttendeeService: service,
		Cache:           c,
		CacheTTL:        ttl,
		PassGenerator:   gen,
		Logger:          log,
	}
}

func (h *Handler) GetAllAttendees(w http.ResponseWriter, r *http.Request) {
	h.respondCached(w, r, cache.AttendeesKey(), func(ctx context.Context) (interface{}, error) {
		return h.AttendeeService.GetAll(ctx)
	})
}

func (h *Handler) GetAttendeeByID(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	h.respondCached(w, r, cache.AttendeeKey(attendeeID), func(ctx context.Context) (interface{}, error) {
		return h.AttendeeService.GetByID(ctx, attendeeID)
	})
}

func (h *Handler) GetAttendeesByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "eventId")
	if !ok {
		return
	}

	h.respondCached(w, r, cache.AttendeesByEventKey(eventID), func(ctx context.Context) (interface{}, error) {
		return h.AttendeeService.GetByEvent(ctx, eventID)
	})
}

func (h *Handler) AddAttendee(w http.ResponseWriter, r *http.Request) {
	var request models.AttendeeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	attendee, err := h.AttendeeService.Add(r.Context(), request)
	if err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusCreated, attendee)
}

func (h *Handler) UpdateAttendee(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var request models.AttendeeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.AttendeeService.Update(r.Context(), request, attendeeID); err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("attendee updated", nil))
}

func (h *Handler) DeleteAttendee(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.AttendeeService.Delete(r.Context(), attendeeID); err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("attendee deleted", nil))
}

// GetRegistrationPass renders the attendee's encrypted QR pass for one
// event as a PNG.
func (h *Handler) GetRegistrationPass(w http.ResponseWriter, r *http.Request) {
	attendeeID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}
	eventID, ok := h.pathID(w, r, "eventId")
	if !ok {
		return
	}

	attendee, err := h.AttendeeService.GetRegistration(r.Context(), attendeeID, eventID)
	if err != nil {
		utils.WriteError(w, domain.HTTPStatus(err), err.Error())
		return
	}

	png, err := h.PassGenerator.GenerateQR(pass.Registration{
		AttendeeID: attendee.AttendeeID,
		EventID:    eventID,
		Name:       attendee.Name,
		Email:      attendee.Email,
		IssuedAt:   time.Now(),
	})
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "failed to generate pass")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
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
