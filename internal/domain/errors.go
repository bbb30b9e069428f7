package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("document not found")
	ErrBadCartValue = errors.New("bad cart value")
)

// InvalidEntryError reports a link-field entry that was neither a document
// nor a usable identifier. The raw payload is kept so the message can name
// the offending value.
type InvalidEntryError struct {
	Raw json.RawMessage
}

func (e *InvalidEntryError) Error() string {
	if len(e.Raw) == 0 {
		return "bad entry value"
	}
	return fmt.Sprintf("bad entry value: %s", e.Raw)
}

// BadIDError reports an identifier that failed validity checks.
type BadIDError struct {
	ID string
}

func (e *BadIDError) Error() string {
	return fmt.Sprintf("bad id value: %q", e.ID)
}
