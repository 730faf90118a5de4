package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	oclp "github.com/jbinder6342/OpenCore-Legacy-Patcher"
)

// RPCClient maintains a JSON-RPC channel to the probe helper over a
// websocket. Requests carry a uuid id and are matched to responses by it;
// messages without an id are helper notifications (hotplug) and become
// events.
//
// Request shape: {"jsonrpc":"2.0","id":"<uuid>","method":...,"params":...}
type RPCClient struct {
	url string

	dialer *websocket.Dialer
	connMu sync.RWMutex
	conn   *websocket.Conn

	pendingMu sync.Mutex
	pending   map[string]chan json.RawMessage

	listenersMu sync.RWMutex
	listeners   []*rpcEventSub

	closed chan struct{}
}

type rpcEventSub struct {
	ch        chan Event
	closeOnce sync.Once
}

func (e *rpcEventSub) C() <-chan Event { return e.ch }
func (e *rpcEventSub) Close() error    { e.closeOnce.Do(func() { close(e.ch) }); return nil }

// Call represents an outbound JSON-RPC call to the helper.
type Call struct {
	Method  string
	Params  interface{}
	Timeout time.Duration // optional; default 5s
}

// Result contains a decoded JSON-RPC result or error struct.
type Result struct {
	Result json.RawMessage
	Error  *RPCError
}

// RPCError models a standard JSON-RPC error.
type RPCError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type jsonrpcRequest struct {
	JSONRPC string      `json:"jsonrpc"`
	ID      string      `json:"id"`
	Method  string      `json:"method"`
	Params  interface{} `json:"params,omitempty"`
}

type jsonrpcResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      string          `json:"id"`
	Result  json.RawMessage `json:"result,omitempty"`
	Error   *RPCError       `json:"error,omitempty"`
}

type jsonrpcNotification struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// NewRPCClient creates a client for the given websocket URL
// (e.g. ws://localhost:8090/rpc).
func NewRPCClient(url string) *RPCClient {
	return &RPCClient{
		url:     url,
		dialer:  &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		pending: make(map[string]chan json.RawMessage),
		closed:  make(chan struct{}),
	}
}

// Connect establishes the websocket and starts the read loop.
func (c *RPCClient) Connect(ctx context.Context) error {
	conn, _, err := c.dialer.DialContext(ctx, c.url, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", oclp.ErrProbeUnavailable, err)
	}
	c.connMu.Lock()
	c.conn = conn
	c.connMu.Unlock()
	go c.readLoop()
	return nil
}

// Close terminates the connection and all pending calls.
func (c *RPCClient) Close() error {
	select {
	case <-c.closed:
		return nil
	default:
		close(c.closed)
	}
	c.connMu.Lock()
	conn := c.conn
	c.conn = nil
	c.connMu.Unlock()
	if conn != nil {
		_ = conn.Close()
	}
	c.pendingMu.Lock()
	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
	c.pendingMu.Unlock()
	c.listenersMu.Lock()
	c.listeners = nil
	c.listenersMu.Unlock()
	return nil
}

// FetchReport asks the helper for a fresh hardware report.
func (c *RPCClient) FetchReport(ctx context.Context) (*Report, error) {
	res, err := c.Do(ctx, Call{Method: "probe.report"})
	if err != nil {
		return nil, err
	}
	if res.Error != nil {
		return nil, fmt.Errorf("probe: %s (code %d)", res.Error.Message, res.Error.Code)
	}
	var report Report
	if err := json.Unmarshal(res.Result, &report); err != nil {
		return nil, fmt.Errorf("probe: decode report: %w", err)
	}
	return &report, nil
}

// Do issues a JSON-RPC request and waits for its response.
func (c *RPCClient) Do(ctx context.Context, call Call) (*Result, error) {
	if call.Method == "" {
		return nil, errors.New("method required")
	}
	if call.Timeout <= 0 {
		call.Timeout = 5 * time.Second
	}

	id := uuid.NewString()
	payload, err := json.Marshal(jsonrpcRequest{JSONRPC: "2.0", ID: id, Method: call.Method, Params: call.Params})
	if err != nil {
		return nil, err
	}

	ch := make(chan json.RawMessage, 1)
	c.pendingMu.Lock()
	c.pending[id] = ch
	c.pendingMu.Unlock()

	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()
	if conn == nil {
		c.dropPending(id)
		return nil, oclp.ErrNotConnected
	}
	if err = conn.WriteMessage(websocket.TextMessage, payload); err != nil {
		c.dropPending(id)
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, call.Timeout)
	defer cancel()

	select {
	case <-ctx.Done():
		c.dropPending(id)
		return nil, ctx.Err()
	case respBytes, ok := <-ch:
		if !ok {
			return nil, oclp.ErrNotConnected
		}
		var resp jsonrpcResponse
		if err := json.Unmarshal(respBytes, &resp); err != nil {
			return nil, err
		}
		return &Result{Result: resp.Result, Error: resp.Error}, nil
	}
}

func (c *RPCClient) dropPending(id string) {
	c.pendingMu.Lock()
	delete(c.pending, id)
	c.pendingMu.Unlock()
}

// Subscribe returns helper notifications (hotplug and friends) as events.
func (c *RPCClient) Subscribe(buffer int) EventSubscription {
	es := &rpcEventSub{ch: make(chan Event, buffer)}
	c.listenersMu.Lock()
	c.listeners = append(c.listeners, es)
	c.listenersMu.Unlock()
	return es
}

func (c *RPCClient) broadcast(evt Event) {
	select {
	case <-c.closed:
		return
	default:
	}
	c.listenersMu.RLock()
	listeners := append([]*rpcEventSub(nil), c.listeners...)
	c.listenersMu.RUnlock()
	for _, es := range listeners {
		select {
		case es.ch <- evt:
		default:
		}
	}
}

func (c *RPCClient) readLoop() {
	c.connMu.RLock()
	conn := c.conn
	c.connMu.RUnlock()
	if conn == nil {
		return
	}
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			c.broadcast(Event{Kind: EventControllerDetached, OccurredAt: time.Now(), Source: "probe-rpc", Payload: err.Error()})
			_ = c.Close()
			return
		}
		// Response first: matched by id.
		var resp jsonrpcResponse
		if err := json.Unmarshal(data, &resp); err == nil && resp.ID != "" && (resp.Result != nil || resp.Error != nil) {
			c.pendingMu.Lock()
			ch, found := c.pending[resp.ID]
			if found {
				delete(c.pending, resp.ID)
			}
			c.pendingMu.Unlock()
			if found {
				ch <- data
				close(ch)
			}
			continue
		}
		// No id: a notification.
		var note jsonrpcNotification
		if err := json.Unmarshal(data, &note); err != nil || note.Method == "" {
			continue
		}
		kind := EventNotification
		switch note.Method {
		case "probe.attached":
			kind = EventControllerAttached
		case "probe.detached":
			kind = EventControllerDetached
		}
		c.broadcast(Event{Kind: kind, OccurredAt: time.Now(), Source: "probe-rpc", Payload: note})
	}
}
