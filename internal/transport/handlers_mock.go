package transport

import (
	"context"

	"github.com/UnendingLoop/ImageVault/internal/model"
	"github.com/gin-gonic/gin"
)

type mockImageService struct {
	getListFn func(ctx context.Context, caller *model.Caller) ([]model.Image, error)
	getFn     func(ctx context.Context, caller *model.Caller, id string) (*model.Image, error)
	createFn  func(ctx context.Context, caller *model.Caller, data *model.ImageCreateData) (*model.UpstreamImage, error)
	replaceFn func(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error
	patchFn   func(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error
	deleteFn  func(ctx context.Context, caller *model.Caller, id string) error
}

func (m *mockImageService) GetList(ctx context.Context, caller *model.Caller) ([]model.Image, error) {
	return m.getListFn(ctx, caller)
}

func (m *mockImageService) Get(ctx context.Context, caller *model.Caller, id string) (*model.Image, error) {
	return m.getFn(ctx, caller, id)
}

func (m *mockImageService) Create(ctx context.Context, caller *model.Caller, data *model.ImageCreateData) (*model.UpstreamImage, error) {
	return m.createFn(ctx, caller, data)
}

func (m *mockImageService) Replace(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error {
	return m.replaceFn(ctx, caller, id, patch)
}

func (m *mockImageService) Patch(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error {
	return m.patchFn(ctx, caller, id, patch)
}

func (m *mockImageService) Delete(ctx context.Context, caller *model.Caller, id string) error {
	return m.deleteFn(ctx, caller, id)
}

// mockVerifier accepts the literal header "Bearer good" and rejects the rest,
// so handler tests don't need real keys.
type mockVerifier struct {
	caller *model.Caller
}

func (m *mockVerifier) Verify(authorizationHeader string) (*model.Caller, error) {
	if authorizationHeader != "Bearer good" {
		return nil, model.ErrUnauthenticated
	}
	if m.caller != nil {
		return m.caller, nil
	}
	return &model.Caller{ID: "user-1"}, nil
}

func init() {
	gin.SetMode(gin.TestMode)
}
