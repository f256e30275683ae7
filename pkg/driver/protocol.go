package driver

import "fmt"

// Element identifier keys on the wire. WinAppDriver predates the W3C
// WebDriver spec and may emit the legacy JsonWireProtocol key or the
// standard one depending on endpoint and version, so responses are
// probed for both, legacy first.
const (
	legacyElementKey = "ELEMENT"
	w3cElementKey    = "element-6066-11e4-a52e-4f735466cecf"
)

// Locator strategies understood by POST /session/{id}/element.
const (
	strategyXPath         = "xpath"
	strategyName          = "name"
	strategyAccessibility = "accessibility id"
)

// newSessionPayload is the capabilities body for a desktop-root session.
// "Root" attaches the session to the whole desktop rather than a single
// application, enabling desktop-wide element discovery.
type newSessionPayload struct {
	Capabilities struct {
		AlwaysMatch map[string]string `json:"alwaysMatch"`
	} `json:"capabilities"`
}

func desktopRootCapabilities() newSessionPayload {
	var p newSessionPayload
	p.Capabilities.AlwaysMatch = map[string]string{
		"platformName":      "Windows",
		"appium:app":        "Root",
		"appium:deviceName": "WindowsPC",
	}
	return p
}

// newSessionResponse is the body of a successful POST /session.
type newSessionResponse struct {
	Value struct {
		SessionID string `json:"sessionId"`
	} `json:"value"`
}

// findElementRequest is the body of POST /session/{id}/element.
type findElementRequest struct {
	Using string `json:"using"`
	Value string `json:"value"`
}

// pointLocator builds the xpath locator matching elements whose
// bounding rectangle contains the given point.
func pointLocator(x, y int) findElementRequest {
	return findElementRequest{
		Using: strategyXPath,
		Value: fmt.Sprintf("//*[contains(@BoundingRectangle, '%d') and contains(@BoundingRectangle, '%d')]", x, y),
	}
}

// findElementResponse is the body of a successful element lookup. The
// identifier arrives under one of two keys; elementID resolves it.
type findElementResponse struct {
	Value struct {
		Legacy string `json:"ELEMENT"`
		W3C    string `json:"element-6066-11e4-a52e-4f735466cecf"`
	} `json:"value"`
}

// elementID returns the element identifier, preferring the legacy key
// for compatibility, or "" when neither key is present.
func (r *findElementResponse) elementID() string {
	if r.Value.Legacy != "" {
		return r.Value.Legacy
	}
	return r.Value.W3C
}

// valueResponse is the generic {"value": ...} body of attribute and
// name lookups. A JSON null value decodes to a nil pointer.
type valueResponse struct {
	Value *string `json:"value"`
}

// W3C actions payload, used to synthesize a double-click since the
// driver has no native double-click endpoint.

type actionsPayload struct {
	Actions []pointerActionSource `json:"actions"`
}

type pointerActionSource struct {
	Type    string          `json:"type"`
	ID      string          `json:"id"`
	Actions []pointerAction `json:"actions"`
}

type pointerAction struct {
	Type     string            `json:"type"`
	Button   *int              `json:"button,omitempty"`
	Duration *int              `json:"duration,omitempty"`
	Origin   map[string]string `json:"origin,omitempty"`
}

func intPtr(v int) *int { return &v }

// doubleClickActions builds the pointer sequence for a double-click on
// the element: move to the element origin, two press/release pairs
// separated by a 50ms pause. The pause keeps the pair inside the OS
// double-click interval without the two clicks landing as one gesture.
func doubleClickActions(elementID string) actionsPayload {
	press := pointerAction{Type: "pointerDown", Button: intPtr(0)}
	release := pointerAction{Type: "pointerUp", Button: intPtr(0)}
	return actionsPayload{
		Actions: []pointerActionSource{
			{
				Type: "pointer",
				ID:   "mouse",
				Actions: []pointerAction{
					{Type: "pointerMove", Origin: map[string]string{w3cElementKey: elementID}},
					press,
					release,
					{Type: "pause", Duration: intPtr(50)},
					press,
					release,
				},
			},
		},
	}
}
