package input

import (
	"time"

	"github.com/go-vgo/robotgo"
)

// TypeText types text into the focused element. A positive interval
// paces individual characters the way interactive typing would.
func TypeText(text string, interval time.Duration) {
	if interval <= 0 {
		robotgo.TypeStr(text)
		return
	}
	for _, r := range text {
		robotgo.TypeStr(string(r))
		time.Sleep(interval)
	}
}

// KeyTap presses and releases a key, with optional modifiers.
func KeyTap(key string, modifiers ...string) {
	if len(modifiers) > 0 {
		robotgo.KeyTap(key, modifiers)
		return
	}
	robotgo.KeyTap(key)
}

// KeyDown presses a key without releasing it.
func KeyDown(key string) {
	robotgo.KeyToggle(key, "down")
}

// KeyUp releases a key.
func KeyUp(key string) {
	robotgo.KeyToggle(key, "up")
}

// HotKey presses a key combination, e.g. HotKey("ctrl", "c"). The last
// key is the main key; the rest are modifiers.
func HotKey(keys ...string) {
	switch len(keys) {
	case 0:
		return
	case 1:
		robotgo.KeyTap(keys[0])
	default:
		robotgo.KeyTap(keys[len(keys)-1], keys[:len(keys)-1])
	}
}
