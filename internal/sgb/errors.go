package sgb

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPosition  = errors.New("invalid position")
	ErrInvalidFootprint = errors.New("invalid footprint")
	ErrInvalidParams    = errors.New("invalid params")
)

type InvalidPositionError struct {
	Pos    Pos
	Reason string
}

func (e *InvalidPositionError) Error() string {
	return fmt.Sprintf("invalid position %s: %s", e.Pos, e.Reason)
}

func (e *InvalidPositionError) Unwrap() error { return ErrInvalidPosition }
