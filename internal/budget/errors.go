package budget

import (
	"errors"
	"fmt"

	"travelagg/pkg/apperr"
)

var (
	ErrInvalidRequest     = errors.New("invalid budget travel request")
	ErrCatalogUnavailable = errors.New("catalog unavailable")
	ErrNoRouteFound       = errors.New("no route found")
)

func invalidRequest(format string, args ...any) error {
	msg := fmt.Sprintf(format, args...)
	return apperr.InvalidRequest(msg, fmt.Errorf("%w: %s", ErrInvalidRequest, msg))
}

func catalogUnavailable(err error) error {
	return apperr.CatalogUnavailable(fmt.Errorf("%w: %w", ErrCatalogUnavailable, err))
}
