package application

import (
	"errors"

	"github.com/Apurer/pet-adoption-api/internal/domains/users/domain"
	"github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
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
	case errors.Is(err, domain.ErrEmptyFirstName),
		errors.Is(err, domain.ErrEmptyLastName),
		errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrNegativeAge),
		errors.Is(err, domain.ErrInvalidRole),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrPasswordTooLong),
		errors.Is(err, domain.ErrNoChanges):
		return apierrors.Wrap(apierrors.KindValidation, err, "")
	case errors.Is(err, ports.ErrNotFound):
		return apierrors.Wrap(apierrors.KindNotFound, err, "")
	case errors.Is(err, ports.ErrEmailTaken):
		return apierrors.Wrap(apierrors.KindConflict, err, "")
	case errors.Is(err, ports.ErrInvalidCredentials),
		errors.Is(err, ports.ErrInvalidToken):
		return apierrors.Wrap(apierrors.KindUnauthorized, err, "")
	}
	return err
}
