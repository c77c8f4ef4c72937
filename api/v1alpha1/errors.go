package v1alpha1

import (
	"errors"
	"fmt"
)

// Data-integrity error kinds. A chart that produces one of these is malformed and
// dependent analysis must stop.
var (
	ErrMissingAscendant  = errors.New("missing ascendant")
	ErrMissingPlanet     = errors.New("missing planet placement")
	ErrDuplicatePlanet   = errors.New("duplicate planet placement")
	ErrInvalidPlacement  = errors.New("invalid placement")
	ErrUnresolvableRuler = errors.New("unresolvable house ruler")
)

// ChartError reports a malformed or incomplete chart. Entity names the missing or
// offending element (a planet, a house or "ascendant").
type ChartError struct {
	Kind   error
	Entity string
	Msg    string
}

func (e *ChartError) Error() string {
	if e == nil {
		return ""
	}
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Entity)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind.Error(), e.Entity, e.Msg)
}

func (e *ChartError) Unwrap() error { return e.Kind }

// NewChartError builds a ChartError of the given kind.
func NewChartError(kind error, entity string, format string, args ...any) *ChartError {
	return &ChartError{Kind: kind, Entity: entity, Msg: fmt.Sprintf(format, args...)}
}

// IsDataIntegrity reports whether err (or anything it wraps) is a ChartError.
func IsDataIntegrity(err error) bool {
	var chartErr *ChartError
	return errors.As(err, &chartErr)
}
