package input

import "github.com/go-vgo/robotgo"

// CopyToClipboard writes text to the system clipboard.
func CopyToClipboard(text string) error {
	return robotgo.WriteAll(text)
}

// ReadClipboard reads text from the system clipboard.
func ReadClipboard() (string, error) {
	return robotgo.ReadAll()
}
