package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"eventsphere/internal/domain"
	"eventsphere/internal/models"
)

type MockEventStore struct {
	mock.Mock
}

func (m *MockEventStore) FindByID(ctx context.Context, eventID int64) (*models.Event, error) {
	args := m.Called(eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventStore) FindAll(ctx context.Context) ([]models.Event, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventStore) FindByOrganizerID(ctx context.Context, organizerID int64) ([]models.Event, error) {
	args := m.Called(organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventStore) FindUpcomingByPopularity(ctx context.Context, now time.Time) ([]models.Event, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventStore) Insert(ctx context.Context, event *models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventStore) UpdateInPlace(ctx context.Context, event models.Event) error {
	args := m.Called(event)
	return args.Error(0)
}

func (m *MockEventStore) Delete(ctx context.Context, eventID int64) error {
	args := m.Called(eventID)
	return args.Error(0)
}

func TestGetByIDNotFound(t *testing.T) {
	mockDB := new(MockEventStore)
	svc := NewEventService(mockDB)

	mockDB.On("FindByID", int64(999)).Return(nil, nil)

	event, err := svc.GetByID(context.Background(), 999)

	assert.Nil(t, event)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	mockDB.AssertExpectations(t)
}

func TestGetUpcomingUsesPinnedClock(t *testing.T) {
	mockDB := new(MockEventStore)
	svc := NewEventService(mockDB)

	pinned := time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return pinned }

	expected := []models.Event{{EventID: 2, Name: "Popular"}, {EventID: 1, Name: "Quiet"}}
	mockDB.On("FindUpcomingByPopularity", pinned).Return(expected, nil)

	events, err := svc.GetUpcomingSortedByPopularity(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, expected, events)
	mockDB.AssertExpectations(t)
}

func TestUpdateOverwritesFields(t *testing.T) {
	mockDB := new(MockEventStore)
	svc := NewEventService(mockDB)

	existing := &models.Event{EventID: 1, Name: "Old", Capacity: 100, OrganizerID: 1}
	request := models.EventRequest{
		Name:        "New",
		Location:    "Berlin",
		Capacity:    250,
		OrganizerID: 2,
		StartDate:   time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC),
	}

	mockDB.On("FindByID", int64(1)).Return(existing, nil)
	mockDB.On("UpdateInPlace", mock.MatchedBy(func(event models.Event) bool {
		return event.EventID == 1 &&
			event.Name == "New" &&
			event.Capacity == 250 &&
			event.OrganizerID == 2
	})).Return(nil)

	err := svc.Update(context.Background(), request, 1)

	assert.NoError(t, err)
	mockDB.AssertExpectations(t)
}

func TestDeleteNotFound(t *testing.T) {
	mockDB := new(MockEventStore)
	svc := NewEventService(mockDB)

	mockDB.On("FindByID", int64(42)).Return(nil, nil)

	err := svc.Delete(context.Background(), 42)

	assert.True(t, errors.Is(err, domain.ErrNotFound))
	mockDB.AssertNotCalled(t, "Delete", mock.Anything)
}
