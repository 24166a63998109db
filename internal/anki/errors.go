package anki

import (
	"errors"
	"fmt"
)

var (
	ErrMediaNotFound = errors.New("media file not found in collection")
	ErrEmptyQuery    = errors.New("a search query must be provided")
)

// APIError is an error reported inside the AnkiConnect response envelope,
// as opposed to a transport failure reaching the endpoint at all.
type APIError struct {
	Action  string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("anki-connect %s: %s", e.Action, e.Message)
}
