package application

import (
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/pets/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/pets/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

// ErrInvalidInput signals the request violated a domain invariant.
var ErrInvalidInput = apierrors.ErrValidation

func mapError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, domain.ErrEmptyName),
		errors.Is(err, domain.ErrEmptySpecies),
		errors.Is(err, domain.ErrMissingAge),
		errors.Is(err, domain.ErrNegativeAge),
		errors.Is(err, domain.ErrInvalidImageURL),
		errors.Is(err, domain.ErrInvalidStatus),
		errors.Is(err, domain.ErrNoChanges):
		return apierrors.Wrap(apierrors.KindValidation, err, "")
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.Wrap(apierrors.KindNotFound, err, "")
	}
	return err
}
