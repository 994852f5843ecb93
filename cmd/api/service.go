package main

import (
	"context"

	"github.com/UnendingLoop/ImageVault/internal/model"
)

type ImageAPIRepository interface {
	Create(ctx context.Context, n *model.Image) error
	Get(ctx context.Context, imageID string) (*model.Image, error)
	GetByOwner(ctx context.Context, ownerID string) ([]model.Image, error)
	Update(ctx context.Context, imageID string, patch *model.ImagePatch) error
	Delete(ctx context.Context, imageID string) error
}
type ImageAPIService interface {
	GetList(ctx context.Context, caller *model.Caller) ([]model.Image, error)
	Get(ctx context.Context, caller *model.Caller, id string) (*model.Image, error)
	Create(ctx context.Context, caller *model.Caller, data *model.ImageCreateData) (*model.UpstreamImage, error)
	Replace(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error
	Patch(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error
	Delete(ctx context.Context, caller *model.Caller, id string) error
}
