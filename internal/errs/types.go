package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

type NotFoundError struct {
	ErrorMessage
}

type ValidationError struct {
	ErrorMessage
}

// UnknownWidgetError is returned when an operation names a widget id the layout does not hold.
type UnknownWidgetError struct {
	ErrorMessage
	WidgetID string
}

// RejectReason says why a move or resize was refused.
type RejectReason string

const (
	RejectOutOfBounds RejectReason = "out_of_bounds"
	RejectConflict    RejectReason = "conflict"
)

// MoveRejectedError is the recoverable outcome of a gesture that cannot be applied.
// The layout is unchanged when it is returned.
type MoveRejectedError struct {
	ErrorMessage
	WidgetID string
	Reason   RejectReason
}

// InvalidSizeClassError signals a size class outside small/medium/large.
type InvalidSizeClassError struct {
	ErrorMessage
	Size string
}

// FootprintExceedsGridWidthError signals a footprint that can never fit the grid columns.
type FootprintExceedsGridWidthError struct {
	ErrorMessage
	Width   int
	Columns int
}

type DatabaseError struct {
	ErrorMessage
	Operation string
	Err       error
}

func (e *DatabaseError) Unwrap() error { return e.Err }

// PersistError reports a failed save after an in-memory mutation was already committed.
type PersistError struct {
	ErrorMessage
	Err error
}

func (e *PersistError) Unwrap() error { return e.Err }

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewUnknownWidgetError(widgetID string) *UnknownWidgetError {
	return &UnknownWidgetError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("widget %q not found", widgetID)},
		WidgetID:     widgetID,
	}
}

func NewMoveRejectedError(widgetID string, reason RejectReason) *MoveRejectedError {
	var msg string
	switch reason {
	case RejectOutOfBounds:
		msg = fmt.Sprintf("widget %q would extend outside the grid", widgetID)
	default:
		msg = fmt.Sprintf("widget %q conflicts with another widget", widgetID)
	}
	return &MoveRejectedError{
		ErrorMessage: ErrorMessage{Message: msg},
		WidgetID:     widgetID,
		Reason:       reason,
	}
}

func NewInvalidSizeClassError(size string) *InvalidSizeClassError {
	return &InvalidSizeClassError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("invalid size class %q", size)},
		Size:         size,
	}
}

func NewFootprintExceedsGridWidthError(width, columns int) *FootprintExceedsGridWidthError {
	return &FootprintExceedsGridWidthError{
		ErrorMessage: ErrorMessage{Message: fmt.Sprintf("footprint width %d exceeds grid width %d", width, columns)},
		Width:        width,
		Columns:      columns,
	}
}

func NewDatabaseError(operation, message string, err error) *DatabaseError {
	return &DatabaseError{
		ErrorMessage: ErrorMessage{Message: message},
		Operation:    operation,
		Err:          err,
	}
}

func NewPersistError(err error) *PersistError {
	return &PersistError{
		ErrorMessage: ErrorMessage{Message: "layout changed but could not be saved"},
		Err:          err,
	}
}
