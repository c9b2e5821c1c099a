package status

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/carson-networks/bank-server/internal/logging"
)

type mockAccountCounter struct {
	mock.Mock
}

func (m *mockAccountCounter) CountAccounts(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func createTestLogData() *logging.LogData {
	logger := logging.SetupLogging()
	return logging.NewLogData(logger)
}

func TestHandler_GoodMethod(t *testing.T) {
	counter := new(mockAccountCounter)
	counter.On("CountAccounts", mock.Anything).Return(2, nil)
	statusHandler := NewHandler(counter)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)

	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.NoError(t, err)

	res := w.Result()
	assert.Equal(t, 200, res.StatusCode)

	var body statusBody
	assert.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 2, body.Accounts)
	counter.AssertExpectations(t)
}

func TestHandler_BadMethod(t *testing.T) {
	counter := new(mockAccountCounter)
	statusHandler := NewHandler(counter)
	req := httptest.NewRequest(http.MethodPost, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)

	res := w.Result()
	assert.Equal(t, 400, res.StatusCode)
	counter.AssertNotCalled(t, "CountAccounts", mock.Anything)
}

func TestHandler_StoreUnavailable(t *testing.T) {
	counter := new(mockAccountCounter)
	counter.On("CountAccounts", mock.Anything).Return(0, errors.New("file missing"))
	statusHandler := NewHandler(counter)
	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	err := statusHandler.Handler(w, req, createTestLogData())
	assert.Error(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, w.Result().StatusCode)
}
