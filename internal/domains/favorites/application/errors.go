package application

import (
	"errors"
	"fmt"

	"github.com/AndyCHK/giphy-api-app/internal/domains/favorites/domain"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid favorite input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingUser) ||
		errors.Is(err, domain.ErrEmptyGifID) ||
		errors.Is(err, domain.ErrEmptyAlias) ||
		errors.Is(err, domain.ErrAliasTooLong) ||
		errors.Is(err, domain.ErrInvalidLimit) ||
		errors.Is(err, domain.ErrInvalidOffset) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
