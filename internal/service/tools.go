package service

import (
	"strings"
	"unicode/utf8"

	"github.com/UnendingLoop/ImageVault/internal/model"
)

func validateCreateData(data *model.ImageCreateData) error {
	// is there anything to store at all
	if strings.TrimSpace(data.Data) == "" {
		return model.ErrEmptyData
	}

	// is the content type one of the supported image MIME types
	if !model.ContentTypeMap[data.ContentType] {
		return model.ErrBadContentType
	}

	// is the description within bounds
	if utf8.RuneCountInString(data.Description) > model.MaxDescriptionLen {
		return model.ErrLongDescription
	}

	return nil
}

func validatePatch(patch *model.ImagePatch) error {
	if patch.ContentType != nil && !model.ContentTypeMap[*patch.ContentType] {
		return model.ErrBadContentType
	}

	if patch.Description != nil && utf8.RuneCountInString(*patch.Description) > model.MaxDescriptionLen {
		return model.ErrLongDescription
	}

	return nil
}
