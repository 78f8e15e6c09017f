// Package cache provides the read-through cache layer used by the list and
// detail endpoints. The cache is constructed once at startup and injected
// into every handler that needs it.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"
)

// Cache is the boundary consumed by the handler layer. TryGet reports a miss
// with hit=false and a nil payload; Set stores a payload under key for ttl.
type Cache interface {
	TryGet(ctx context.Context, key string) (hit bool, payload []byte, err error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// Fetch implements the read-through contract around load:
//
//  1. On hit the cached payload is returned and load is never invoked.
//  2. On miss load is invoked, its result is marshaled and stored under key
//     with the given ttl, and the payload is returned.
//
// Cache failures degrade to a pass-through; only errors from load are
// returned. A nil Cache is a permanent miss.
func Fetch(ctx context.Context, c Cache, key string, ttl time.Duration, load func(context.Context) (interface{}, error)) ([]byte, bool, error) {
	if c != nil {
		if hit, payload, err := c.TryGet(ctx, key); err == nil && hit {
			return payload, true, nil
		}
	}

	result, err := load(ctx)
	if err != nil {
		return nil, false, err
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, false, err
	}

	if c != nil {
		_ = c.Set(ctx, key, payload, ttl)
	}
	return payload, false, nil
}

// Cache keys are parameterized by every distinguishing request argument so a
// hit for one entity can never serve another entity's payload.

func TicketKey(ticketID int64) string {
	return "ticket:" + strconv.FormatInt(ticketID, 10)
}

func TicketsByEventKey(eventID int64) string {
	return "tickets:event:" + strconv.FormatInt(eventID, 10)
}

func AvailableTicketsKey(eventID int64) string {
	return "tickets:available:" + strconv.FormatInt(eventID, 10)
}

func EventKey(eventID int64) string {
	return "event:" + strconv.FormatInt(eventID, 10)
}

func EventsKey() string {
	return "events"
}

func EventsByOrganizerKey(organizerID int64) string {
	return "events:organizer:" + strconv.FormatInt(organizerID, 10)
}

func PopularEventsKey() string {
	return "events:popular"
}

func OrganizerKey(organizerID int64) string {
	return "organizer:" + strconv.FormatInt(organizerID, 10)
}

func OrganizersKey() string {
	return "organizers"
}

func AttendeeKey(attendeeID int64) string {
	return "attendee:" + strconv.FormatInt(attendeeID, 10)
}

func AttendeesKey() string {
	return "attendees"
}

func AttendeesByEventKey(eventID int64) string {
	return "attendees:event:" + strconv.FormatInt(eventID, 10)
}
