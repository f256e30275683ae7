// Package driver speaks the WebDriver-style JSON-over-HTTP protocol of
// a locally running UI-Automation driver (WinAppDriver) and manages the
// driver process itself.
package driver

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/deskpilot/deskpilot/internal/logger"
)

// Client owns a single driver session. It is meant for one logical
// caller at a time; concurrent use of the same Client is not supported.
type Client struct {
	baseURL   string
	timeout   time.Duration
	sessionID string
	httpc     *http.Client
	log       *log.Logger
}

// NewClient creates a client for a driver listening on 127.0.0.1:port.
// timeout bounds every protocol call.
func NewClient(port int, timeout time.Duration) *Client {
	return &Client{
		baseURL: fmt.Sprintf("http://127.0.0.1:%d", port),
		timeout: timeout,
		log:     logger.Component("driver"),
	}
}

// SessionID returns the current session identifier, or "" when not
// connected.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Connected reports whether a session is open.
func (c *Client) Connected() bool {
	return c.httpc != nil && c.sessionID != ""
}

// CreateSession opens a desktop-root session. Calling it on an already
// connected client returns ErrAlreadyConnected; the active session id is
// never overwritten. A non-2xx response or a response without a session
// id yields a *SessionCreationError.
func (c *Client) CreateSession(ctx context.Context) error {
	if c.Connected() {
		return ErrAlreadyConnected
	}

	// The transport handle is owned by this session: created here,
	// released by CloseSession.
	c.httpc = &http.Client{Timeout: c.timeout}

	body, err := json.Marshal(desktopRootCapabilities())
	if err != nil {
		return &SessionCreationError{Message: err.Error()}
	}

	resp, err := c.do(ctx, http.MethodPost, c.baseURL+"/session", body)
	if err != nil {
		c.releaseTransport()
		return &SessionCreationError{Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.releaseTransport()
		return &SessionCreationError{Status: resp.StatusCode, Message: string(msg)}
	}

	var decoded newSessionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		c.releaseTransport()
		return &SessionCreationError{Message: fmt.Sprintf("decode response: %v", err)}
	}
	if decoded.Value.SessionID == "" {
		c.releaseTransport()
		return &SessionCreationError{Status: resp.StatusCode, Message: "response has no session id"}
	}

	c.sessionID = decoded.Value.SessionID
	c.log.Info("session created", "session", c.sessionID)
	return nil
}

// ElementFromPoint resolves the UI element whose bounding rectangle
// contains (x, y).
//
// The outcome is tri-state: (elem, nil) when an element was found,
// (nil, nil) when the lookup was valid but nothing occupies the point,
// which is an expected outcome rather than an error, and
// (nil, *TransportError) when the call itself failed. Without an open
// session the result is (nil, nil).
func (c *Client) ElementFromPoint(ctx context.Context, x, y int) (*Element, error) {
	if !c.Connected() {
		return nil, nil
	}

	elem, err := c.findElement(ctx, pointLocator(x, y))
	if err != nil {
		return nil, err
	}
	if elem == nil {
		c.log.Debug("no element at point", "x", x, "y", y)
		return nil, nil
	}
	c.log.Debug("element at point", "x", x, "y", y, "element", elem.ID)
	return elem, nil
}

// FindElementByName resolves an element by its Name property. Returns
// (nil, nil) when nothing matches.
func (c *Client) FindElementByName(ctx context.Context, name string) (*Element, error) {
	if !c.Connected() {
		return nil, nil
	}
	return c.findElement(ctx, findElementRequest{Using: strategyName, Value: name})
}

// FindElementByAutomationID resolves an element by its AutomationId.
// Returns (nil, nil) when nothing matches.
func (c *Client) FindElementByAutomationID(ctx context.Context, automationID string) (*Element, error) {
	if !c.Connected() {
		return nil, nil
	}
	return c.findElement(ctx, findElementRequest{Using: strategyAccessibility, Value: automationID})
}

func (c *Client) findElement(ctx context.Context, req findElementRequest) (*Element, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Op: "find element", Err: err}
	}

	url := fmt.Sprintf("%s/session/%s/element", c.baseURL, c.sessionID)
	resp, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return nil, &TransportError{Op: "find element", Err: err}
	}
	defer resp.Body.Close()

	// The driver answers no-match with a non-200 status. That is the
	// NotFound outcome, not a failure.
	if resp.StatusCode != http.StatusOK {
		return nil, nil
	}

	var decoded findElementResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, &TransportError{Op: "decode element response", Err: err}
	}

	id := decoded.elementID()
	if id == "" {
		return nil, nil
	}
	return &Element{client: c, ID: id}, nil
}

// CloseSession tears the session down. The DELETE is best effort: a
// session that cannot be cleanly closed must not prevent shutdown, so
// transport errors are logged and swallowed. The session id and the
// transport handle are always released. Safe to call when not connected.
func (c *Client) CloseSession(ctx context.Context) error {
	if !c.Connected() {
		c.releaseTransport()
		return nil
	}

	url := fmt.Sprintf("%s/session/%s", c.baseURL, c.sessionID)
	resp, err := c.do(ctx, http.MethodDelete, url, nil)
	if err != nil {
		// Session may already be gone along with the driver process.
		c.log.Debug("session delete failed", "err", err)
	} else {
		resp.Body.Close()
	}

	c.sessionID = ""
	c.releaseTransport()
	c.log.Info("session closed")
	return nil
}

// post issues a POST scoped to the current session and decodes the JSON
// body into out when out is non-nil. Used by Element operations.
func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	if !c.Connected() {
		return ErrNotConnected
	}

	var body []byte
	if payload != nil {
		var err error
		if body, err = json.Marshal(payload); err != nil {
			return &TransportError{Op: "POST " + path, Err: err}
		}
	} else {
		body = []byte("{}")
	}

	url := fmt.Sprintf("%s/session/%s/%s", c.baseURL, c.sessionID, path)
	resp, err := c.do(ctx, http.MethodPost, url, body)
	if err != nil {
		return &TransportError{Op: "POST " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: "POST " + path, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Op: "POST " + path, Err: err}
		}
	}
	return nil
}

// get issues a GET scoped to the current session and decodes the JSON
// body into out.
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	if !c.Connected() {
		return ErrNotConnected
	}

	url := fmt.Sprintf("%s/session/%s/%s", c.baseURL, c.sessionID, path)
	resp, err := c.do(ctx, http.MethodGet, url, nil)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &TransportError{Op: "GET " + path, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &TransportError{Op: "GET " + path, Err: err}
		}
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string, body []byte) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return c.httpc.Do(req)
}

func (c *Client) releaseTransport() {
	if c.httpc != nil {
		c.httpc.CloseIdleConnections()
		c.httpc = nil
	}
}
