package ticket_api

import (
	"context"
	"encoding/json"
	"fmt"
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

// TicketService is the slice of the inventory service the handlers consume.
type TicketService interface {
	GetByID(ctx context.Context, ticketID int64) (*models.Ticket, error)
	GetByEvent(ctx context.Context, eventID int64) ([]models.Ticket, error)
	GetAvailable(ctx context.Context, eventID int64) ([]models.Ticket, error)
	Add(ctx context.Context, request models.TicketRequest) (*models.Ticket, error)
	Update(ctx context.Context, request models.TicketRequest, ticketID int64) error
	Delete(ctx context.Context, ticketID int64) error
	Sell(ctx context.Context, ticketID int64, quantity int) error
	Refund(ctx context.Context, ticketID int64, quantity int) error
	RevenueForEvent(ctx context.Context, eventID int64) (float64, error)
}

type Handler struct {
	TicketService TicketService
	Cache         cache.Cache
	CacheTTL      config.CacheConfig
	Logger        *logger.Logger
}

func NewHandler(service TicketService, c cache.Cache, ttl config.CacheConfig, log *logger.Logger) *Handler {
	return &Handler{
		TicketService: service,
		Cache:         c,
		CacheTTL:      ttl,
		Logger:        log,
	}
}

func (h *Handler) GetTicketByID(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	h.respondCached(w, r, cache.TicketKey(ticketID), h.CacheTTL.DefaultTTL, func(ctx context.Context) (interface{}, error) {
		return h.TicketService.GetByID(ctx, ticketID)
	})
}

func (h *Handler) GetTicketsByEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "eventId")
	if !ok {
		return
	}

	h.respondCached(w, r, cache.TicketsByEventKey(eventID), h.CacheTTL.DefaultTTL, func(ctx context.Context) (interface{}, error) {
		return h.TicketService.GetByEvent(ctx, eventID)
	})
}

// GetAvailableTickets uses the shorter availability TTL; stock moves faster
// than the rest of the catalog.
func (h *Handler) GetAvailableTickets(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "eventId")
	if !ok {
		return
	}

	h.respondCached(w, r, cache.AvailableTicketsKey(eventID), h.CacheTTL.AvailabilityTTL, func(ctx context.Context) (interface{}, error) {
		return h.TicketService.GetAvailable(ctx, eventID)
	})
}

func (h *Handler) GetRevenueForEvent(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.pathID(w, r, "eventId")
	if !ok {
		return
	}

	revenue, err := h.TicketService.RevenueForEvent(r.Context(), eventID)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"eventId": eventID, "revenue": revenue})
}

func (h *Handler) AddTicket(w http.ResponseWriter, r *http.Request) {
	var request models.TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ticket, err := h.TicketService.Add(r.Context(), request)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogTicket("ADD", ticket.TicketID, fmt.Sprintf("event %d, %d available", ticket.EventID, ticket.QuantityAvailable))
	}
	utils.WriteJSON(w, http.StatusCreated, ticket)
}

func (h *Handler) UpdateTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	var request models.TicketRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.TicketService.Update(r.Context(), request, ticketID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ticket updated", nil))
}

func (h *Handler) DeleteTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, ok := h.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := h.TicketService.Delete(r.Context(), ticketID); err != nil {
		h.writeServiceError(w, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("ticket deleted", nil))
}

func (h *Handler) SellTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, quantity, ok := h.pathIDAndQuantity(w, r)
	if !ok {
		return
	}

	if err := h.TicketService.Sell(r.Context(), ticketID, quantity); err != nil {
		h.writeServiceError(w, err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogTicket("SELL", ticketID, fmt.Sprintf("sold %d", quantity))
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tickets sold", nil))
}

func (h *Handler) RefundTicket(w http.ResponseWriter, r *http.Request) {
	ticketID, quantity, ok := h.pathIDAndQuantity(w, r)
	if !ok {
		return
	}

	if err := h.TicketService.Refund(r.Context(), ticketID, quantity); err != nil {
		h.writeServiceError(w, err)
		return
	}

	if h.Logger != nil {
		h.Logger.LogTicket("REFUND", ticketID, fmt.Sprintf("refunded %d", quantity))
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("tickets refunded", nil))
}

// respondCached serves the read-through contract for a cached read endpoint.
func (h *Handler) respondCached(w http.ResponseWriter, r *http.Request, key string, ttl time.Duration, load func(context.Context) (interface{}, error)) {
	payload, hit, err := cache.Fetch(r.Context(), h.Cache, key, ttl, load)
	if err != nil {
		h.writeServiceError(w, err)
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

func (h *Handler) writeServiceError(w http.ResponseWriter, err error) {
	utils.WriteError(w, domain.HTTPStatus(err), err.Error())
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, param), 10, 64)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return id, true
}

func (h *Handler) pathIDAndQuantity(w http.ResponseWriter, r *http.Request) (int64, int, bool) {
	ticketID, ok := h.pathID(w, r, "id")
	if !ok {
		return 0, 0, false
	}
	quantity, err := strconv.Atoi(chi.URLParam(r, "quantity"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "invalid quantity")
		return 0, 0, false
	}
	return ticketID, quantity, true
}
