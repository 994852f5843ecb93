package transport

import (
	"errors"

	"github.com/UnendingLoop/ImageVault/internal/model"
)

func errorCodeDefiner(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthenticated):
		return 401
	case errors.Is(err, model.ErrForbidden):
		return 403
	case errors.Is(err, model.ErrImageNotFound):
		return 404
	case errors.Is(err, model.ErrBadRequestBody),
		errors.Is(err, model.ErrEmptyData),
		errors.Is(err, model.ErrBadContentType),
		errors.Is(err, model.ErrLongDescription),
		errors.Is(err, model.ErrEmptyPatch):
		return 400
	case errors.Is(err, model.ErrCommon500),
		errors.Is(err, model.ErrUpstream):
		return 500
	default:
		return 500
	}
}
