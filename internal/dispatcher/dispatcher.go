package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/protocol"
)

// Dispatcher verifies inbound envelopes, routes them by RequestID and seals
// the response. It is safe for concurrent use once registration is done.
type Dispatcher struct {
	logger   *logrus.Logger
	audit    logging.Auditor
	mu       sync.RWMutex
	handlers map[protocol.RequestID]protocol.Handler
}

func NewDispatcher(logger *logrus.Logger, audit logging.Auditor) *Dispatcher {
	return &Dispatcher{
		logger:   logger,
		audit:    audit,
		handlers: make(map[protocol.RequestID]protocol.Handler),
	}
}

// Register binds handler to id, replacing any previous binding.
func (d *Dispatcher) Register(id protocol.RequestID, handler protocol.Handler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[id] = handler
}

func (d *Dispatcher) handler(id protocol.RequestID) (protocol.Handler, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	h, ok := d.handlers[id]
	return h, ok
}

// Dispatch processes one raw envelope and returns the sealed response. It
// never fails: every problem becomes a State=false response.
func (d *Dispatcher) Dispatch(ctx context.Context, raw []byte) []byte {
	logData := logging.GetLogData(ctx)
	if logData == nil {
		logData = logging.NewLogData(d.logger)
		ctx = logging.WithLogData(ctx, logData)
	}

	stopTimer := logData.AddTiming("dispatchMs")
	resp := d.route(ctx, raw)
	stopTimer()

	logData.AddData("requestID", int(resp.ResponseID))
	logData.AddData("kind", resp.ResponseID.String())
	logData.AddData("state", resp.State)
	if !resp.State {
		logData.AddData("reason", int(resp.Reason))
	}

	sealed, err := protocol.Seal(resp)
	if err != nil {
		logData.Log().WithError(err).Error("Dispatcher.Dispatch.seal failed")
		sealed, _ = protocol.Seal(protocol.Failure(resp.ResponseID, err))
		return sealed
	}

	if resp.State {
		logData.Log().Info("Dispatcher.Dispatch.Complete")
	} else {
		logData.Log().Warn("Dispatcher.Dispatch.Rejected")
	}
	return sealed
}

func (d *Dispatcher) route(ctx context.Context, raw []byte) *protocol.Response {
	if _, err := protocol.Verify(raw); err != nil {
		id := peekRequestID(raw)
		d.audit.Log("Invalid request: " + err.Error() + ".")
		return protocol.Failure(id, err)
	}

	var req protocol.Request
	if err := json.Unmarshal(raw, &req); err != nil {
		id := peekRequestID(raw)
		d.audit.Log("Invalid request: " + err.Error() + ".")
		return protocol.Failure(id, fmt.Errorf("%w: %w", protocol.ErrBadValue, err))
	}

	handler, ok := d.handler(req.RequestID)
	if !ok {
		d.audit.Log("Unknown request id: " + strconv.Itoa(int(req.RequestID)) + ".")
		return protocol.Failure(req.RequestID, protocol.ErrUnknownRequest)
	}

	d.audit.Log("Request: " + req.RequestID.String() + " received.")
	payload, err := handler.Handle(ctx, &req)
	if err != nil {
		resp := protocol.Failure(req.RequestID, err)
		d.audit.Log(fmt.Sprintf("Request: %s failed with reason %d.", req.RequestID, resp.Reason))
		return resp
	}

	if payload == nil {
		payload = &protocol.Response{}
	}
	payload.ResponseID = req.RequestID
	payload.State = true
	payload.Reason = protocol.ReasonNone
	payload.Hash = ""
	d.audit.Log("Request: " + req.RequestID.String() + " done successfully.")
	return payload
}

// peekRequestID extracts RequestID from an envelope that failed validation so
// the failure can still be correlated. Zero when it cannot be read.
func peekRequestID(raw []byte) protocol.RequestID {
	var probe struct {
		RequestID protocol.RequestID `json:"RequestID"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return 0
	}
	return probe.RequestID
}
