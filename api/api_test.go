package api

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/carson-networks/bank-server/internal/client"
	"github.com/carson-networks/bank-server/internal/config"
	"github.com/carson-networks/bank-server/internal/dispatcher"
	"github.com/carson-networks/bank-server/internal/handlers/v1/account"
	"github.com/carson-networks/bank-server/internal/handlers/v1/transaction"
	"github.com/carson-networks/bank-server/internal/logging"
	"github.com/carson-networks/bank-server/internal/operator"
	"github.com/carson-networks/bank-server/internal/protocol"
	"github.com/carson-networks/bank-server/internal/service"
	"github.com/carson-networks/bank-server/internal/storage"
)

type testServer struct {
	svc      *service.Service
	listener *Listener
	addr     string
	cancel   context.CancelFunc
	done     chan error
}

func newTestStack(t *testing.T) (*config.Config, *service.Service, *dispatcher.Dispatcher) {
	t.Helper()
	env := config.Default()
	env.Server.Host = "127.0.0.1"
	env.Server.Port = 0
	env.Storage.Path = filepath.Join(t.TempDir(), "BankDataBase.json")

	store, err := storage.NewStorage(env)
	require.NoError(t, err)

	op := operator.NewOperatorDelegator(store, 1)
	op.Start()
	t.Cleanup(op.Stop)

	logger := logging.SetupLogging()
	svc := service.NewService(store, op, logging.Discard)
	d := dispatcher.NewDispatcher(logger, logging.Discard)
	account.RegisterAll(d, svc.Account)
	transaction.RegisterAll(d, svc.Transaction)
	return env, svc, d
}

func startTestServer(t *testing.T) *testServer {
	t.Helper()
	env, svc, d := newTestStack(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	listener := NewListener(env, logging.SetupLogging(), d, logging.DiscardAuditSinks())
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- listener.ServeListener(ctx, ln)
	}()

	server := &testServer{
		svc:      svc,
		listener: listener,
		addr:     ln.Addr().String(),
		cancel:   cancel,
		done:     done,
	}
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return server
}

func dialTestServer(t *testing.T, addr string) *client.Client {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	c, err := client.Dial(ctx, addr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func do(t *testing.T, c *client.Client, req *protocol.Request) (*protocol.Response, error) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return c.Do(ctx, req)
}

func rejectedReason(t *testing.T, err error) protocol.Reason {
	t.Helper()
	var rejected *client.ErrRejected
	require.True(t, errors.As(err, &rejected), "expected rejection, got %v", err)
	return rejected.Reason
}

func TestListener_BobScenario(t *testing.T) {
	server := startTestServer(t)
	c := dialTestServer(t, server.addr)

	created, err := do(t, c, &protocol.Request{
		RequestID: protocol.CreateUser,
		UserName:  "bob",
		Password:  "pw1",
		FullName:  "Bob B",
		Age:       "30",
	})
	require.NoError(t, err)
	assert.True(t, created.State)
	number := created.AccountNumber
	require.NotEmpty(t, number)

	login, err := do(t, c, &protocol.Request{RequestID: protocol.LogIn, UserName: "bob", Password: "pw1"})
	require.NoError(t, err)
	require.NotNil(t, login.IsAdmin)
	assert.False(t, *login.IsAdmin)
	assert.Equal(t, number, login.AccountNumber)

	deposit, err := do(t, c, &protocol.Request{
		RequestID:     protocol.MakeTransaction,
		AccountNumber: protocol.Text(number),
		Amount:        "100",
	})
	require.NoError(t, err)
	assert.Equal(t, "100", deposit.AccountBalance.String())

	_, err = do(t, c, &protocol.Request{
		RequestID:     protocol.MakeTransaction,
		AccountNumber: protocol.Text(number),
		Amount:        "-150",
	})
	assert.Equal(t, protocol.ReasonRejected, rejectedReason(t, err))

	balance, err := do(t, c, &protocol.Request{RequestID: protocol.GetBalance, AccountNumber: protocol.Text(number)})
	require.NoError(t, err)
	assert.Equal(t, "100", balance.AccountBalance.String())
	assert.Equal(t, protocol.GetBalance, balance.ResponseID)
}

func TestListener_FailureReasons(t *testing.T) {
	server := startTestServer(t)
	c := dialTestServer(t, server.addr)

	_, err := do(t, c, &protocol.Request{RequestID: protocol.LogIn, UserName: "ghost", Password: "x"})
	assert.Equal(t, protocol.ReasonNotFound, rejectedReason(t, err))

	_, err = do(t, c, &protocol.Request{RequestID: protocol.LogIn, UserName: "Ahmed25", Password: "x"})
	assert.Equal(t, protocol.ReasonRejected, rejectedReason(t, err))

	_, err = do(t, c, &protocol.Request{RequestID: protocol.GetHistory, AccountNumber: "200", Count: "5"})
	assert.Equal(t, protocol.ReasonRejected, rejectedReason(t, err))

	_, err = do(t, c, &protocol.Request{RequestID: protocol.RequestID(42)})
	assert.Equal(t, protocol.ReasonUnknownRequest, rejectedReason(t, err))

	_, err = do(t, c, &protocol.Request{RequestID: protocol.MakeTransaction, AccountNumber: "200", Amount: "abc"})
	assert.Equal(t, protocol.ReasonParse, rejectedReason(t, err))
}

func TestListener_TamperedEnvelope(t *testing.T) {
	server := startTestServer(t)

	conn, err := net.Dial("tcp", server.addr)
	require.NoError(t, err)
	defer conn.Close()

	raw, err := protocol.Seal(&protocol.Request{RequestID: protocol.DeleteUser, AccountNumber: "200"})
	require.NoError(t, err)
	raw = []byte(string(raw[:len(raw)-1]) + `,"UserName":"x"}`)
	_, err = conn.Write(raw)
	require.NoError(t, err)

	var resp protocol.Response
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	require.NoError(t, json.NewDecoder(conn).Decode(&resp))
	assert.False(t, resp.State)
	assert.Equal(t, protocol.ReasonIntegrity, resp.Reason)

	count, err := server.svc.Account.CountAccounts(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestListener_ConcurrentClients(t *testing.T) {
	server := startTestServer(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			c, err := client.Dial(ctx, server.addr)
			if !assert.NoError(t, err) {
				return
			}
			defer c.Close()
			for j := 0; j < 5; j++ {
				_, err := c.Do(ctx, &protocol.Request{
					RequestID:     protocol.MakeTransaction,
					AccountNumber: "100",
					Amount:        "1",
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	balance, err := server.svc.Transaction.GetBalance(context.Background(), "100")
	require.NoError(t, err)
	assert.True(t, balance.Equal(decimal.NewFromInt(40)), balance.String())
}

func TestListener_TransferOverWire(t *testing.T) {
	server := startTestServer(t)
	c := dialTestServer(t, server.addr)

	_, err := do(t, c, &protocol.Request{RequestID: protocol.MakeTransaction, AccountNumber: "100", Amount: "50"})
	require.NoError(t, err)

	_, err = do(t, c, &protocol.Request{
		RequestID:             protocol.TransferAmount,
		SenderAccountNumber:   "100",
		ReceiverAccountNumber: "200",
		Amount:                "50",
	})
	require.NoError(t, err)

	history, err := do(t, c, &protocol.Request{RequestID: protocol.GetHistory, AccountNumber: "200", Count: "1"})
	require.NoError(t, err)
	require.Len(t, history.Transactions, 1)
	assert.Equal(t, "50", history.Transactions[0].Amount.String())

	all, err := do(t, c, &protocol.Request{RequestID: protocol.ViewAll})
	require.NoError(t, err)
	assert.True(t, all.DataBase["Ahmed25"].AccountBalance.IsZero())
}

func TestListener_ShutdownClosesConnections(t *testing.T) {
	server := startTestServer(t)
	c := dialTestServer(t, server.addr)

	_, err := do(t, c, &protocol.Request{RequestID: protocol.GetBalance, AccountNumber: "100"})
	require.NoError(t, err)
	assert.Equal(t, 1, server.listener.ActiveConnections())

	server.cancel()
	select {
	case err := <-server.done:
		assert.NoError(t, err)
		server.done <- nil
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not stop")
	}
	assert.Equal(t, 0, server.listener.ActiveConnections())

	_, err = do(t, c, &protocol.Request{RequestID: protocol.GetBalance, AccountNumber: "100"})
	assert.Error(t, err)
}

func TestConnection_Lifecycle(t *testing.T) {
	_, _, d := newTestStack(t)
	serverEnd, clientEnd := net.Pipe()

	conn, err := NewConnection(serverEnd, d, logging.SetupLogging(), logging.Discard, 4096, nil)
	require.NoError(t, err)
	assert.Equal(t, StateRunning, conn.State())

	done := make(chan struct{})
	go func() {
		conn.Serve(context.Background())
		close(done)
	}()

	c := client.New(clientEnd)
	resp, err := do(t, c, &protocol.Request{RequestID: protocol.GetAccountNumber, UserName: "Shimaa98"})
	require.NoError(t, err)
	assert.Equal(t, "200", resp.AccountNumber)

	require.NoError(t, c.Close())
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("connection did not terminate")
	}
	assert.Equal(t, StateTerminated, conn.State())
}

func TestConnection_CloseUnblocksRead(t *testing.T) {
	_, _, d := newTestStack(t)
	serverEnd, clientEnd := net.Pipe()
	defer clientEnd.Close()

	conn, err := NewConnection(serverEnd, d, logging.SetupLogging(), logging.Discard, 4096, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		conn.Serve(context.Background())
		close(done)
	}()

	require.NoError(t, conn.Close())
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("connection did not terminate")
	}
	assert.Equal(t, StateTerminated, conn.State())
}

func TestConnection_RateLimited(t *testing.T) {
	_, _, d := newTestStack(t)
	serverEnd, clientEnd := net.Pipe()

	limiter := rate.NewLimiter(rate.Every(100*time.Millisecond), 1)
	conn, err := NewConnection(serverEnd, d, logging.SetupLogging(), logging.Discard, 4096, limiter)
	require.NoError(t, err)
	go conn.Serve(context.Background())

	c := client.New(clientEnd)
	defer c.Close()

	start := time.Now()
	for i := 0; i < 3; i++ {
		_, err := do(t, c, &protocol.Request{RequestID: protocol.GetBalance, AccountNumber: "100"})
		require.NoError(t, err)
	}
	assert.GreaterOrEqual(t, time.Since(start), 150*time.Millisecond)
}

func TestRest_Status(t *testing.T) {
	_, svc, _ := newTestStack(t)
	rest := &Rest{Logger: logging.SetupLogging(), Service: svc}

	server := httptest.NewServer(rest.Handler())
	defer server.Close()

	res, err := http.Get(server.URL + "/status")
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusOK, res.StatusCode)
	var body struct {
		Status   string `json:"status"`
		Accounts int    `json:"accounts"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&body))
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, 2, body.Accounts)
}

func TestConnectionState_String(t *testing.T) {
	assert.Equal(t, "Running", StateRunning.String())
	assert.Equal(t, "Closing", StateClosing.String())
	assert.Equal(t, "Terminated", StateTerminated.String())
}
