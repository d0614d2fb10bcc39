package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"wedsite/internal/domain/models"
	httpapp "wedsite/internal/transport/http"
	"wedsite/internal/transport/http/dto"

	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) CreateEvent(ctx context.Context, req dto.CreateEventRequest, organizerID *uuid.UUID) (*models.Event, error) {
	args := m.Called(ctx, req, organizerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) GetEventsPaginated(ctx context.Context, userID uuid.UUID, role models.Role, filter models.EventFilter, page, limit int) ([]models.Event, int, error) {
	args := m.Called(ctx, userID, role, filter, page, limit)
	return args.Get(0).([]models.Event), args.Int(1), args.Error(2)
}

func (m *MockEventService) GetEventByID(ctx context.Context, id uuid.UUID) (*models.Event, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) GetEventByWWWID(ctx context.Context, wwwID string) (*models.Event, error) {
	args := m.Called(ctx, wwwID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) UpdateEvent(ctx context.Context, id uuid.UUID, patch models.EventPatch) (*models.Event, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) UpdateSection(ctx context.Context, id uuid.UUID, section string, partial json.RawMessage) (*models.Event, error) {
	args := m.Called(ctx, id, section, partial)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventService) DeleteEvent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockRSVPService struct {
	mock.Mock
}

func (m *MockRSVPService) SubmitRSVP(ctx context.Context, eventID uuid.UUID, req dto.SubmitRSVPRequest) (*models.RSVP, error) {
	args := m.Called(ctx, eventID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RSVP), args.Error(1)
}

func (m *MockRSVPService) GetEventRSVPs(ctx context.Context, eventID uuid.UUID, page, limit int) ([]models.RSVP, int, error) {
	args := m.Called(ctx, eventID, page, limit)
	return args.Get(0).([]models.RSVP), args.Int(1), args.Error(2)
}

func (m *MockRSVPService) GetRSVPStats(ctx context.Context, eventID uuid.UUID) (models.RSVPStats, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).(models.RSVPStats), args.Error(1)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	return e
}

func testEvent(wwwID string) *models.Event {
	e := &models.Event{
		ID:          uuid.New(),
		WWWID:       wwwID,
		Title:       "Anna & Ivan",
		CoupleNames: "Anna & Ivan",
		EventDate:   time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC),
		Status:      models.EventStatusActive,
		RSVPEnabled: true,
	}
	e.Normalize()
	return e
}

func TestGetPublicEvent(t *testing.T) {
	mockEvents := new(MockEventService)
	routers := httpapp.NewRouters(slog.Default(), nil, nil, mockEvents, nil, nil, nil)
	e := newTestEcho()

	t.Run("found", func(t *testing.T) {
		event := testEvent("ABC1234")
		mockEvents.On("GetEventByWWWID", mock.Anything, "ABC1234").Return(event, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("www_id")
		c.SetParamValues("ABC1234")

		require.NoError(t, routers.GetPublicEvent(c))
		assert.Equal(t, http.StatusOK, rec.Code)

		var body struct {
			Status string                  `json:"status"`
			Data   dto.PublicEventResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "success", body.Status)
		assert.Equal(t, "ABC1234", body.Data.WWWID)
		// section documents are complete on the public payload
		assert.Len(t, body.Data.Visibility, 11)
		assert.NotNil(t, body.Data.Content.Timeline)
	})

	t.Run("unknown code is 404", func(t *testing.T) {
		mockEvents.On("GetEventByWWWID", mock.Anything, "ZZZZZZZ").Return(nil, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("www_id")
		c.SetParamValues("ZZZZZZZ")

		require.NoError(t, routers.GetPublicEvent(c))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubmitRSVP(t *testing.T) {
	e := newTestEcho()

	payload := `{"guestName":"Olga","status":"attending","plusOnes":1}`

	newRSVPContext := func(wwwID string) (echo.Context, *httptest.ResponseRecorder) {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetParamNames("www_id")
		c.SetParamValues(wwwID)
		return c, rec
	}

	t.Run("accepted", func(t *testing.T) {
		mockEvents := new(MockEventService)
		mockRSVP := new(MockRSVPService)
		routers := httpapp.NewRouters(slog.Default(), nil, nil, mockEvents, nil, nil, mockRSVP)

		event := testEvent("ABC1234")
		mockEvents.On("GetEventByWWWID", mock.Anything, "ABC1234").Return(event, nil).Once()
		mockRSVP.On("SubmitRSVP", mock.Anything, event.ID, mock.AnythingOfType("dto.SubmitRSVPRequest")).
			Return(&models.RSVP{ID: uuid.New(), EventID: event.ID, GuestName: "Olga"}, nil).Once()

		c, rec := newRSVPContext("ABC1234")
		require.NoError(t, routers.SubmitRSVP(c))
		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("rsvp disabled", func(t *testing.T) {
		mockEvents := new(MockEventService)
		mockRSVP := new(MockRSVPService)
		routers := httpapp.NewRouters(slog.Default(), nil, nil, mockEvents, nil, nil, mockRSVP)

		event := testEvent("ABC1234")
		event.RSVPEnabled = false
		mockEvents.On("GetEventByWWWID", mock.Anything, "ABC1234").Return(event, nil).Once()

		c, rec := newRSVPContext("ABC1234")
		require.NoError(t, routers.SubmitRSVP(c))
		assert.Equal(t, http.StatusForbidden, rec.Code)
		mockRSVP.AssertNotCalled(t, "SubmitRSVP")
	})
}

func TestUpdateEventSection(t *testing.T) {
	mockEvents := new(MockEventService)
	routers := httpapp.NewRouters(slog.Default(), nil, nil, mockEvents, nil, nil, nil)
	e := newTestEcho()

	eventID := uuid.New()
	updated := testEvent("ABC1234")
	updated.ID = eventID

	mockEvents.On("UpdateSection", mock.Anything, eventID, "hero", mock.AnythingOfType("json.RawMessage")).
		Return(updated, nil).Once()

	req := httptest.NewRequest(http.MethodPatch, "/", strings.NewReader(`{"subtitle":"June"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("event_id", "section")
	c.SetParamValues(eventID.String(), "hero")

	require.NoError(t, routers.UpdateEventSection(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	mockEvents.AssertExpectations(t)
}
