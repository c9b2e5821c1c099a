// Package client speaks the bank wire protocol over one TCP connection.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"sync"

	"github.com/carson-networks/bank-server/internal/protocol"
)

// ErrRejected wraps a response with State=false.
type ErrRejected struct {
	RequestID protocol.RequestID
	Reason    protocol.Reason
}

func (e *ErrRejected) Error() string {
	return fmt.Sprintf("%s rejected with reason %d", e.RequestID, e.Reason)
}

// Client sends one request at a time and waits for its response.
type Client struct {
	mu      sync.Mutex
	conn    net.Conn
	decoder *json.Decoder
}

// Dial connects to a bank server at addr.
func Dial(ctx context.Context, addr string) (*Client, error) {
	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return New(conn), nil
}

// New wraps an established connection.
func New(conn net.Conn) *Client {
	return &Client{
		conn:    conn,
		decoder: json.NewDecoder(conn),
	}
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// Do seals req, sends it and returns the verified response. A response with
// State=false is returned together with an *ErrRejected.
func (c *Client) Do(ctx context.Context, req *protocol.Request) (*protocol.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Zero deadline when ctx has none.
	deadline, _ := ctx.Deadline()
	if err := c.conn.SetDeadline(deadline); err != nil {
		return nil, err
	}

	req.Hash = ""
	sealed, err := protocol.Seal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to seal request: %w", err)
	}
	if _, err := c.conn.Write(sealed); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	var raw json.RawMessage
	if err := c.decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp protocol.Response
	if err := protocol.Open(raw, &resp); err != nil {
		return nil, fmt.Errorf("invalid response: %w", err)
	}
	if !resp.State {
		return &resp, &ErrRejected{RequestID: resp.ResponseID, Reason: resp.Reason}
	}
	return &resp, nil
}
