package driver

import "context"

// Element is a remote reference to one UI element inside one session.
// It borrows the owning Client and is logically invalidated when that
// session closes: operations after closure fail with ErrNotConnected.
type Element struct {
	client *Client
	ID     string
}

// Click dispatches a single synthetic click through the driver's native
// click endpoint for this element. Transport errors propagate as
// *TransportError; the handle does not retry.
func (e *Element) Click(ctx context.Context) error {
	return e.client.post(ctx, "element/"+e.ID+"/click", nil, nil)
}

// DoubleClick synthesizes a double-click via the W3C actions endpoint,
// since the driver has no native double-click primitive.
func (e *Element) DoubleClick(ctx context.Context) error {
	return e.client.post(ctx, "actions", doubleClickActions(e.ID), nil)
}

// GetAttribute returns an element attribute such as Name, AutomationId
// or ClassName. An absent attribute yields ("", false, nil) rather than
// an error.
func (e *Element) GetAttribute(ctx context.Context, name string) (string, bool, error) {
	var decoded valueResponse
	if err := e.client.get(ctx, "element/"+e.ID+"/attribute/"+name, &decoded); err != nil {
		return "", false, err
	}
	if decoded.Value == nil {
		return "", false, nil
	}
	return *decoded.Value, true, nil
}

// ControlType returns the element's control type, e.g. Button, Edit,
// Window.
func (e *Element) ControlType(ctx context.Context) (string, error) {
	var decoded valueResponse
	if err := e.client.get(ctx, "element/"+e.ID+"/name", &decoded); err != nil {
		return "", err
	}
	if decoded.Value == nil {
		return "", nil
	}
	return *decoded.Value, nil
}
