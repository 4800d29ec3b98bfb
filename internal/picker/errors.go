package picker

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDate         = errors.New("invalid date")
	ErrInvalidState        = errors.New("time selected before date")
	ErrIncompleteSelection = errors.New("date and time must both be selected")
	ErrEmptySlotLabel      = errors.New("time slot label is empty")
	ErrDateNotSelectable   = errors.New("date is not selectable")
	ErrUnknownSlot         = errors.New("time slot is not offered for the selected date")
	ErrNotAuthorized       = errors.New("admin view is not authorized")
)

// NetworkError reports a transport failure: the request never produced an
// HTTP response.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: network error: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// ServerError reports a non-2xx response other than 404.
type ServerError struct {
	Op     string
	Status int
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("%s: server responded with status %d", e.Op, e.Status)
}

type NotFoundError struct {
	Op string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s: not found", e.Op)
}
