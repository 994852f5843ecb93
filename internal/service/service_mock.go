package service

import (
	"context"

	"github.com/UnendingLoop/ImageVault/internal/model"
)

// MOCK REPOSITORY

type mockRepo struct {
	createFn     func(ctx context.Context, img *model.Image) error
	getFn        func(ctx context.Context, imageID string) (*model.Image, error)
	getByOwnerFn func(ctx context.Context, ownerID string) ([]model.Image, error)
	updateFn     func(ctx context.Context, imageID string, patch *model.ImagePatch) error
	deleteFn     func(ctx context.Context, imageID string) error
}

func (m *mockRepo) Create(ctx context.Context, img *model.Image) error {
	return m.createFn(ctx, img)
}

func (m *mockRepo) Get(ctx context.Context, imageID string) (*model.Image, error) {
	return m.getFn(ctx, imageID)
}

func (m *mockRepo) GetByOwner(ctx context.Context, ownerID string) ([]model.Image, error) {
	return m.getByOwnerFn(ctx, ownerID)
}

func (m *mockRepo) Update(ctx context.Context, imageID string, patch *model.ImagePatch) error {
	return m.updateFn(ctx, imageID, patch)
}

func (m *mockRepo) Delete(ctx context.Context, imageID string) error {
	return m.deleteFn(ctx, imageID)
}

// MOCK UPSTREAM GATEWAY
// calls counts every invocation so tests can assert the upstream saw
// zero traffic on forbidden/not-found paths.

type mockGateway struct {
	calls    int
	createFn func(ctx context.Context, payload *model.ImageCreateData) (*model.UpstreamImage, error)
	updateFn func(ctx context.Context, id string, patch *model.ImagePatch, method string) (*model.UpstreamImage, error)
	deleteFn func(ctx context.Context, id string) error
}

func (m *mockGateway) Create(ctx context.Context, payload *model.ImageCreateData) (*model.UpstreamImage, error) {
	m.calls++
	return m.createFn(ctx, payload)
}

func (m *mockGateway) Update(ctx context.Context, id string, patch *model.ImagePatch, method string) (*model.UpstreamImage, error) {
	m.calls++
	return m.updateFn(ctx, id, patch, method)
}

func (m *mockGateway) Delete(ctx context.Context, id string) error {
	m.calls++
	return m.deleteFn(ctx, id)
}
