package api

import (
	"context"
	"errors"
	"net"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/carson-networks/bank-server/internal/config"
	"github.com/carson-networks/bank-server/internal/logging"
)

const (
	minAcceptBackoff = 5 * time.Millisecond
	maxAcceptBackoff = time.Second
)

// Listener accepts client connections and runs one Connection per socket.
type Listener struct {
	Logger     *logrus.Logger
	Addr       string
	Dispatcher envelopeDispatcher
	// ServerAudit records listener events, ClientAudit connection events.
	ServerAudit logging.Auditor
	ClientAudit logging.Auditor

	ReadBufferSize    int
	RequestsPerSecond float64
	Burst             int

	mu    sync.Mutex
	conns map[*Connection]struct{}
	wg    sync.WaitGroup
}

func NewListener(env *config.Config, logger *logrus.Logger, dispatcher envelopeDispatcher, sinks *logging.AuditSinks) *Listener {
	return &Listener{
		Logger:            logger,
		Addr:              env.Server.Address(),
		Dispatcher:        dispatcher,
		ServerAudit:       sinks.Server,
		ClientAudit:       sinks.Client,
		ReadBufferSize:    env.Server.ReadBufferSize,
		RequestsPerSecond: env.Server.RequestsPerSecond,
		Burst:             env.Server.Burst,
	}
}

// Serve binds Addr and accepts until ctx is cancelled.
func (l *Listener) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", l.Addr)
	if err != nil {
		l.ServerAudit.Log("Server failed to listen on " + l.Addr + ": " + err.Error() + ".")
		return err
	}
	return l.ServeListener(ctx, ln)
}

// ServeListener accepts on ln until ctx is cancelled. On return ln and every
// live connection are closed and all connection goroutines have exited.
func (l *Listener) ServeListener(ctx context.Context, ln net.Listener) error {
	l.mu.Lock()
	l.conns = make(map[*Connection]struct{})
	l.mu.Unlock()

	stop := context.AfterFunc(ctx, func() {
		_ = ln.Close()
	})
	defer stop()

	l.Logger.WithField("addr", ln.Addr().String()).Info("Listener.Serve.listening")
	l.ServerAudit.Log("Server started listening on " + ln.Addr().String() + ".")

	err := l.acceptLoop(ctx, ln)

	_ = ln.Close()
	l.closeConnections()
	l.wg.Wait()

	l.Logger.Info("Listener.Serve.shutting down")
	l.ServerAudit.Log("Server stopped.")
	return err
}

func (l *Listener) acceptLoop(ctx context.Context, ln net.Listener) error {
	var backoff time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}

			if backoff == 0 {
				backoff = minAcceptBackoff
			} else {
				backoff = min(backoff*2, maxAcceptBackoff)
			}
			l.Logger.WithError(err).WithField("backoff", backoff.String()).Warn("Listener.Serve.accept error")
			l.ServerAudit.Log("Accept error: " + err.Error() + ".")

			select {
			case <-time.After(backoff):
				continue
			case <-ctx.Done():
				return nil
			}
		}
		backoff = 0

		if err := l.start(ctx, conn); err != nil {
			l.Logger.WithError(err).Error("Listener.Serve.connection setup failed")
			_ = conn.Close()
		}
	}
}

func (l *Listener) start(ctx context.Context, conn net.Conn) error {
	var limiter *rate.Limiter
	if l.RequestsPerSecond > 0 {
		burst := l.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(l.RequestsPerSecond), burst)
	}

	c, err := NewConnection(conn, l.Dispatcher, l.Logger, l.ClientAudit, l.ReadBufferSize, limiter)
	if err != nil {
		return err
	}

	l.ServerAudit.Log("New connection " + c.ID.String() + " from " + conn.RemoteAddr().String() + ".")
	l.track(c, true)
	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		defer l.track(c, false)
		c.Serve(ctx)
	}()
	return nil
}

func (l *Listener) track(c *Connection, add bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if add {
		l.conns[c] = struct{}{}
	} else {
		delete(l.conns, c)
	}
}

func (l *Listener) closeConnections() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for c := range l.conns {
		_ = c.Close()
	}
}

// ActiveConnections reports how many connections are being served.
func (l *Listener) ActiveConnections() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.conns)
}
