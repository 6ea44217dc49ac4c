package api

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedStatus = errors.New("unexpected status")
	ErrDecode           = errors.New("invalid response body")
)

// FetchError reports a failed GET against one backend resource
type FetchError struct {
	Resource string // e.g. "sections", "credentials/3", "attachments/12"
	Status   int    // HTTP status, 0 when no response was received
	Err      error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: status %d: %v", e.Resource, e.Status, e.Err)
	}
	return fmt.Sprintf("fetch %s: %v", e.Resource, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}
