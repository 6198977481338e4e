package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chronicle-app/chronicle-api/internal/dto"
	"github.com/chronicle-app/chronicle-api/internal/models"
	appErrors "github.com/chronicle-app/chronicle-api/pkg/errors"
)

type eventServiceMock struct {
	listResp   []dto.EventResponse
	listErr    error
	createResp *dto.EventResponse
	createErr  error
	growResp   *dto.EventResponse
	growErr    error
	deleteErr  error

	lastQuery    dto.EventQuery
	lastRequest  dto.EventRequest
	createCalled bool
}

func (m *eventServiceMock) List(ctx context.Context, query dto.EventQuery) ([]dto.EventResponse, error) {
	m.lastQuery = query
	return m.listResp, m.listErr
}

func (m *eventServiceMock) Get(ctx context.Context, id string) (*dto.EventResponse, error) {
	return m.createResp, m.createErr
}

func (m *eventServiceMock) Create(ctx context.Context, req dto.EventRequest) (*dto.EventResponse, error) {
	m.createCalled = true
	m.lastRequest = req
	return m.createResp, m.createErr
}

func (m *eventServiceMock) Update(ctx context.Context, id string, req dto.EventRequest) (*dto.EventResponse, error) {
	m.lastRequest = req
	return m.createResp, m.createErr
}

func (m *eventServiceMock) Delete(ctx context.Context, id string) error {
	return m.deleteErr
}

func (m *eventServiceMock) Grow(ctx context.Context, id string) (*dto.EventResponse, error) {
	return m.growResp, m.growErr
}

func TestEventHandlerListParsesWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eventServiceMock{listResp: []dto.EventResponse{{ID: "event-1"}}}
	handler := NewEventHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/events?after=2024-03-04T00:00:00Z&before=2024-03-05T00:00:00Z", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, mockSvc.lastQuery.After)
	assert.Equal(t, time.Date(2024, time.March, 4, 0, 0, 0, 0, time.UTC), *mockSvc.lastQuery.After)
}

func TestEventHandlerListRejectsBadWindow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewEventHandler(&eventServiceMock{})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/events?after=yesterday", nil)
	c.Request = req

	handler.List(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eventServiceMock{createResp: &dto.EventResponse{ID: "event-1", Adjusted: true}}
	handler := NewEventHandler(mockSvc)

	payload, _ := json.Marshal(dto.EventRequest{
		Title:    "Standup",
		Start:    time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
		Duration: models.Duration{Minutes: 30},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, mockSvc.createCalled)
	assert.Equal(t, "Standup", mockSvc.lastRequest.Title)
}

func TestEventHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eventServiceMock{}
	handler := NewEventHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/events", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.createCalled)
}

func TestEventHandlerCreateUnschedulable(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eventServiceMock{createErr: appErrors.Clone(appErrors.ErrUnschedulable, "")}
	handler := NewEventHandler(mockSvc)

	payload, _ := json.Marshal(dto.EventRequest{
		Title:    "Doomed",
		Start:    time.Date(2024, time.March, 4, 9, 0, 0, 0, time.UTC),
		Duration: models.Duration{Minutes: 30},
	})

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/events", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestEventHandlerDeleteNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eventServiceMock{deleteErr: appErrors.Clone(appErrors.ErrNotFound, "event not found")}
	handler := NewEventHandler(mockSvc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodDelete, "/events/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
