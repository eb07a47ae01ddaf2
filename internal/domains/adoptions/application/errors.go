package application

import (
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/adoptions/ports"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var classified *apierrors.Error
	if errors.As(err, &classified) {
		return err
	}
	switch {
	case errors.Is(err, domain.ErrInvalidPetID),
		errors.Is(err, domain.ErrMissingUser),
		errors.Is(err, domain.ErrInvalidDecision):
		return apierrors.Wrap(apierrors.KindValidation, err, "")
	case errors.Is(err, domain.ErrNotPending),
		errors.Is(err, domain.ErrPetUnavailable):
		return apierrors.Wrap(apierrors.KindConflict, err, "")
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.Wrap(apierrors.KindNotFound, err, "")
	}
	return err
}
