package api

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"sync/atomic"

	"github.com/gofrs/uuid/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/carson-networks/bank-server/internal/logging"
)

type ConnectionState int32

const (
	StateRunning ConnectionState = iota
	StateClosing
	StateTerminated
)

func (s ConnectionState) String() string {
	switch s {
	case StateRunning:
		return "Running"
	case StateClosing:
		return "Closing"
	case StateTerminated:
		return "Terminated"
	default:
		return "Unknown"
	}
}

// envelopeDispatcher turns one raw request envelope into one sealed response.
type envelopeDispatcher interface {
	Dispatch(ctx context.Context, raw []byte) []byte
}

// Connection owns one accepted socket. Each chunk returned by a single Read
// is treated as one complete envelope, and its response is fully written
// before the next Read.
type Connection struct {
	ID uuid.UUID

	conn       net.Conn
	dispatcher envelopeDispatcher
	logger     *logrus.Logger
	audit      logging.Auditor
	limiter    *rate.Limiter
	bufferSize int

	state     atomic.Int32
	closeOnce sync.Once
}

func NewConnection(
	conn net.Conn,
	dispatcher envelopeDispatcher,
	logger *logrus.Logger,
	audit logging.Auditor,
	bufferSize int,
	limiter *rate.Limiter,
) (*Connection, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	if bufferSize <= 0 {
		bufferSize = 1 << 20
	}

	return &Connection{
		ID:         id,
		conn:       conn,
		dispatcher: dispatcher,
		logger:     logger,
		audit:      audit,
		limiter:    limiter,
		bufferSize: bufferSize,
	}, nil
}

func (c *Connection) State() ConnectionState {
	return ConnectionState(c.state.Load())
}

// Serve runs the read/dispatch/write loop until the peer disconnects, a
// socket error occurs or ctx is cancelled. The socket is closed on return.
func (c *Connection) Serve(ctx context.Context) {
	defer c.terminate()

	log := c.logger.WithField("connectionID", c.ID.String())
	log.WithField("remoteAddr", c.conn.RemoteAddr().String()).Info("Connection.Serve.opened")
	c.audit.Log("Client " + c.ID.String() + " connected from " + c.conn.RemoteAddr().String() + ".")

	buf := make([]byte, c.bufferSize)
	for c.State() == StateRunning {
		n, err := c.conn.Read(buf)
		if n > 0 {
			if werr := c.handle(ctx, buf[:n]); werr != nil {
				log.WithError(werr).Warn("Connection.Serve.write failed")
				c.audit.Log("Client " + c.ID.String() + " write error: " + werr.Error() + ".")
				c.setClosing()
				return
			}
		}
		if err != nil {
			if errors.Is(err, io.EOF) || c.State() != StateRunning {
				c.audit.Log("Client " + c.ID.String() + " disconnected.")
			} else {
				log.WithError(err).Warn("Connection.Serve.read failed")
				c.audit.Log("Client " + c.ID.String() + " read error: " + err.Error() + ".")
			}
			c.setClosing()
			return
		}
	}
}

func (c *Connection) handle(ctx context.Context, raw []byte) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	logData := logging.NewLogData(c.logger)
	logData.AddData("connectionID", c.ID.String())
	logData.AddData("bytes", len(raw))
	reqCtx := logging.WithLogData(ctx, logData)

	resp := c.dispatcher.Dispatch(reqCtx, raw)
	_, err := c.conn.Write(resp)
	return err
}

// Close moves the connection to Closing and closes the socket, which unblocks
// a pending Read in Serve.
func (c *Connection) Close() error {
	c.setClosing()
	var err error
	c.closeOnce.Do(func() {
		err = c.conn.Close()
	})
	return err
}

func (c *Connection) setClosing() {
	c.state.CompareAndSwap(int32(StateRunning), int32(StateClosing))
}

func (c *Connection) terminate() {
	_ = c.Close()
	c.state.Store(int32(StateTerminated))
	c.logger.WithField("connectionID", c.ID.String()).Info("Connection.Serve.terminated")
}
