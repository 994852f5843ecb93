// Package service provides business-logic for the app
package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/UnendingLoop/ImageVault/internal/model"
	"github.com/UnendingLoop/ImageVault/internal/mwlogger"
	"github.com/UnendingLoop/ImageVault/internal/repository"
)

// ImageService runs the access-controlled resource workflow: check ownership
// against the local record, call the upstream gateway, reconcile the local
// store, respond. Ownership is always decided on the local record BEFORE any
// upstream mutating call - the upstream has no concept of caller identity.
type ImageService struct {
	repo    repository.ImageRepo
	gateway UpstreamGateway

	// insertObserver, when set, is invoked with the outcome of the detached
	// store insert that follows a create response. Used for tests and
	// metrics only - the caller-facing result never waits for it.
	insertObserver func(error)
}

// UpstreamGateway - контракт для работы с внешним сервисом хранения картинок
type UpstreamGateway interface {
	Create(ctx context.Context, payload *model.ImageCreateData) (*model.UpstreamImage, error)
	Update(ctx context.Context, id string, patch *model.ImagePatch, method string) (*model.UpstreamImage, error)
	Delete(ctx context.Context, id string) error
}

func NewImageService(imageRep repository.ImageRepo, gw UpstreamGateway) *ImageService {
	return &ImageService{
		repo:    imageRep,
		gateway: gw,
	}
}

// GetList returns all records owned by the caller. An empty slice is a
// success, not a failure.
func (c *ImageService) GetList(ctx context.Context, caller *model.Caller) ([]model.Image, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	res, err := c.repo.GetByOwner(ctx, caller.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to fetch owner's images list from DB")
		return nil, model.ErrCommon500
	}

	return res, nil
}

// Get returns a single record after the ownership check.
func (c *ImageService) Get(ctx context.Context, caller *model.Caller, id string) (*model.Image, error) {
	return c.getOwned(ctx, caller, id)
}

// Create forwards the payload upstream, then answers with the upstream
// descriptor right away. The local insert runs detached: its failure is a
// logged inconsistency, never a caller-visible one. The 201 reflects
// upstream success only.
func (c *ImageService) Create(ctx context.Context, caller *model.Caller, data *model.ImageCreateData) (*model.UpstreamImage, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	if err := validateCreateData(data); err != nil {
		return nil, err
	}

	descriptor, err := c.gateway.Create(ctx, data)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to create image in upstream service")
		return nil, model.ErrCommon500
	}

	now := time.Now().UTC()
	record := &model.Image{
		ImageID:     descriptor.ID,
		ImageURL:    descriptor.ImageURL,
		ContentType: descriptor.ContentType,
		Description: data.Description,
		OwnerID:     caller.ID,
		CreatedAt:   &now,
		UpdatedAt:   &now,
	}

	// Detached trailing write: the request context may be canceled as soon
	// as the response goes out, so the insert runs on its own context.
	insertCtx := context.WithoutCancel(ctx)
	go func() {
		err := c.repo.Create(insertCtx, record)
		if err != nil {
			logger.Error().Err(err).Msg(fmt.Sprintf("Failed to persist metadata for image %q after upstream create", record.ImageID))
		}
		if c.insertObserver != nil {
			c.insertObserver(err)
		}
	}()

	return descriptor, nil
}

// Replace handles PUT: the full set of mutable fields is required.
func (c *ImageService) Replace(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error {
	if patch.ContentType == nil {
		return model.ErrBadContentType
	}
	if patch.Description == nil {
		empty := ""
		patch.Description = &empty
	}
	return c.update(ctx, caller, id, patch, http.MethodPut)
}

// Patch handles PATCH: any non-empty subset of mutable fields.
func (c *ImageService) Patch(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error {
	if patch.ContentType == nil && patch.Description == nil {
		return model.ErrEmptyPatch
	}
	return c.update(ctx, caller, id, patch, http.MethodPatch)
}

// update runs the shared replace/partial-update sequence. Unlike create, the
// local write completes BEFORE success is reported: the no-content response
// must reflect the final merged state.
func (c *ImageService) update(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch, method string) error {
	logger := mwlogger.LoggerFromContext(ctx)

	if err := validatePatch(patch); err != nil {
		return err
	}

	if _, err := c.getOwned(ctx, caller, id); err != nil {
		return err
	}

	if _, err := c.gateway.Update(ctx, id, patch, method); err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to update image %q in upstream service", id))
		return model.ErrCommon500
	}

	if err := c.repo.Update(ctx, id, patch); err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to update metadata for image %q in DB", id))
		if errors.Is(err, model.ErrImageNotFound) {
			return err // record vanished between the ownership check and the write
		}
		return model.ErrCommon500
	}

	return nil
}

// Delete removes the image upstream first, then the local record.
func (c *ImageService) Delete(ctx context.Context, caller *model.Caller, id string) error {
	logger := mwlogger.LoggerFromContext(ctx)

	if _, err := c.getOwned(ctx, caller, id); err != nil {
		return err
	}

	if err := c.gateway.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to delete image %q in upstream service", id))
		return model.ErrCommon500
	}

	if err := c.repo.Delete(ctx, id); err != nil {
		logger.Error().Err(err).Msg(fmt.Sprintf("Failed to delete metadata for image %q from DB", id))
		if errors.Is(err, model.ErrImageNotFound) {
			return err
		}
		return model.ErrCommon500
	}

	return nil
}

// getOwned loads the record and enforces the ownership rule: 404 for absent
// ids, 403 for records owned by someone else.
func (c *ImageService) getOwned(ctx context.Context, caller *model.Caller, id string) (*model.Image, error) {
	logger := mwlogger.LoggerFromContext(ctx)

	res, err := c.repo.Get(ctx, id)
	if err != nil {
		switch {
		case errors.Is(err, model.ErrImageNotFound):
			return nil, model.ErrImageNotFound // 404
		default:
			logger.Error().Err(err).Msg(fmt.Sprintf("Failed to fetch image %q from DB", id))
			return nil, model.ErrCommon500
		}
	}

	if res.OwnerID != caller.ID {
		return nil, model.ErrForbidden // 403
	}

	return res, nil
}
