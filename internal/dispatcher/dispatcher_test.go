package dispatcher

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
	"github.com/carson-networks/bank-server/internal/storage/account"
)

type mockHandler struct {
	mock.Mock
}

func (m *mockHandler) Handle(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*protocol.Response), args.Error(1)
}

func newTestDispatcher(t *testing.T) (*Dispatcher, *bytes.Buffer) {
	t.Helper()
	audit := &bytes.Buffer{}
	return NewDispatcher(logging.SetupLogging(), logging.NewSinkWriter(audit)), audit
}

func seal(t *testing.T, v any) []byte {
	t.Helper()
	raw, err := protocol.Seal(v)
	require.NoError(t, err)
	return raw
}

// open verifies the response tag and decodes it.
func open(t *testing.T, raw []byte) *protocol.Response {
	t.Helper()
	var resp protocol.Response
	require.NoError(t, protocol.Open(raw, &resp))
	return &resp
}

func TestDispatch_RoutesAndSeals(t *testing.T) {
	d, audit := newTestDispatcher(t)
	handler := new(mockHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(req *protocol.Request) bool {
		return req.AccountNumber == "417"
	})).Return(&protocol.Response{AccountNumber: "417", Hash: "stale", Reason: protocol.ReasonNotFound}, nil)
	d.Register(protocol.GetAccountNumber, handler)

	raw := d.Dispatch(context.Background(), seal(t, &protocol.Request{
		RequestID:     protocol.GetAccountNumber,
		AccountNumber: "417",
	}))

	resp := open(t, raw)
	assert.True(t, resp.State)
	assert.Equal(t, protocol.GetAccountNumber, resp.ResponseID)
	assert.Equal(t, protocol.ReasonNone, resp.Reason)
	assert.Equal(t, "417", resp.AccountNumber)
	assert.Contains(t, audit.String(), "Request: GetAccountNumber done successfully.")
	handler.AssertExpectations(t)
}

func TestDispatch_NumericFieldsAccepted(t *testing.T) {
	d, _ := newTestDispatcher(t)
	handler := new(mockHandler)
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(req *protocol.Request) bool {
		return req.AccountNumber == "417" && req.Count == "2"
	})).Return(&protocol.Response{}, nil)
	d.Register(protocol.GetHistory, handler)

	resp := open(t, d.Dispatch(context.Background(), seal(t, map[string]any{
		"RequestID":     7,
		"AccountNumber": 417,
		"Count":         2,
	})))

	assert.True(t, resp.State)
	handler.AssertExpectations(t)
}

func TestDispatch_TamperedRequestNotDispatched(t *testing.T) {
	d, audit := newTestDispatcher(t)
	handler := new(mockHandler)
	d.Register(protocol.MakeTransaction, handler)

	raw := seal(t, &protocol.Request{RequestID: protocol.MakeTransaction, AccountNumber: "417", Amount: "10"})
	tampered := bytes.Replace(raw, []byte(`"10"`), []byte(`"99"`), 1)

	resp := open(t, d.Dispatch(context.Background(), tampered))

	assert.False(t, resp.State)
	assert.Equal(t, protocol.ReasonIntegrity, resp.Reason)
	assert.Equal(t, protocol.MakeTransaction, resp.ResponseID)
	assert.Contains(t, audit.String(), "Invalid request")
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestDispatch_MalformedJSON(t *testing.T) {
	d, _ := newTestDispatcher(t)

	resp := open(t, d.Dispatch(context.Background(), []byte(`{"RequestID":`)))

	assert.False(t, resp.State)
	assert.Equal(t, protocol.ReasonIntegrity, resp.Reason)
	assert.Equal(t, protocol.RequestID(0), resp.ResponseID)
}

func TestDispatch_UnknownRequestID(t *testing.T) {
	d, audit := newTestDispatcher(t)

	resp := open(t, d.Dispatch(context.Background(), seal(t, map[string]any{"RequestID": 12})))

	assert.False(t, resp.State)
	assert.Equal(t, protocol.ReasonUnknownRequest, resp.Reason)
	assert.Equal(t, protocol.RequestID(12), resp.ResponseID)
	assert.Contains(t, audit.String(), "Unknown request id: 12.")
}

func TestDispatch_BadFieldType(t *testing.T) {
	d, _ := newTestDispatcher(t)
	handler := new(mockHandler)
	d.Register(protocol.CreateUser, handler)

	resp := open(t, d.Dispatch(context.Background(), seal(t, map[string]any{
		"RequestID": 1,
		"UserName":  "bob",
		"IsAdmin":   "yes",
	})))

	assert.False(t, resp.State)
	assert.Equal(t, protocol.ReasonParse, resp.Reason)
	assert.Equal(t, protocol.CreateUser, resp.ResponseID)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestDispatch_HandlerErrorMapsReason(t *testing.T) {
	d, audit := newTestDispatcher(t)
	handler := new(mockHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, account.ErrInsufficientFunds)
	d.Register(protocol.MakeTransaction, handler)

	raw := d.Dispatch(context.Background(), seal(t, &protocol.Request{
		RequestID:     protocol.MakeTransaction,
		AccountNumber: "417",
		Amount:        "-150",
	}))

	resp := open(t, raw)
	assert.False(t, resp.State)
	assert.Equal(t, protocol.ReasonRejected, resp.Reason)
	assert.Equal(t, protocol.MakeTransaction, resp.ResponseID)
	assert.Nil(t, resp.AccountBalance)
	assert.Contains(t, audit.String(), "Request: MakeTransaction failed with reason -2.")

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, float64(-2), envelope["Reason"])
}

func TestDispatch_SuccessOmitsReason(t *testing.T) {
	d, _ := newTestDispatcher(t)
	handler := new(mockHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(nil, nil)
	d.Register(protocol.DeleteUser, handler)

	raw := d.Dispatch(context.Background(), seal(t, &protocol.Request{RequestID: protocol.DeleteUser, AccountNumber: "5"}))

	var envelope map[string]any
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, true, envelope["State"])
	assert.Equal(t, float64(3), envelope["ResponseID"])
	assert.NotContains(t, envelope, "Reason")
	assert.NotEmpty(t, envelope["Hash"])
}

func TestDispatch_RecordsLogData(t *testing.T) {
	d, _ := newTestDispatcher(t)
	handler := new(mockHandler)
	handler.On("Handle", mock.Anything, mock.Anything).Return(&protocol.Response{}, nil)
	d.Register(protocol.ViewAll, handler)

	logData := logging.NewLogData(logging.SetupLogging())
	ctx := logging.WithLogData(context.Background(), logData)
	d.Dispatch(ctx, seal(t, &protocol.Request{RequestID: protocol.ViewAll}))

	kind, ok := logData.Data("kind")
	assert.True(t, ok)
	assert.Equal(t, "ViewAll", kind)
	assert.Contains(t, logData.Log().Data, "dispatchMs")
}
