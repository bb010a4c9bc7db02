package application

import (
	"errors"
	"fmt"

	"github.com/AndyCHK/giphy-api-app/internal/domains/gifs/domain"
)

// ErrInvalidInput signals a malformed search or lookup request.
var ErrInvalidInput = errors.New("invalid gif request")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyQuery) ||
		errors.Is(err, domain.ErrQueryTooLong) ||
		errors.Is(err, domain.ErrInvalidLimit) ||
		errors.Is(err, domain.ErrInvalidOffset) ||
		errors.Is(err, domain.ErrEmptyID) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
