// Package transport provides methods for processing requests from endpoints
package transport

import (
	"context"

	"github.com/UnendingLoop/ImageVault/internal/model"
	"github.com/wb-go/wbf/ginext"
)

type ImageHandler struct {
	service  ImageService
	verifier TokenVerifier
}

type ImageService interface {
	GetList(ctx context.Context, caller *model.Caller) ([]model.Image, error)
	Get(ctx context.Context, caller *model.Caller, id string) (*model.Image, error)
	Create(ctx context.Context, caller *model.Caller, data *model.ImageCreateData) (*model.UpstreamImage, error)
	Replace(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error
	Patch(ctx context.Context, caller *model.Caller, id string, patch *model.ImagePatch) error
	Delete(ctx context.Context, caller *model.Caller, id string) error
}

// TokenVerifier - контракт для проверки bearer-токена
type TokenVerifier interface {
	Verify(authorizationHeader string) (*model.Caller, error)
}

func NewImageHandler(svc ImageService, verifier TokenVerifier) *ImageHandler {
	return &ImageHandler{
		service:  svc,
		verifier: verifier,
	}
}

func (h ImageHandler) SimplePinger(ctx *ginext.Context) {
	ctx.JSON(200, map[string]string{"message": "pong"})
}

func (h ImageHandler) GetAllImages(ctx *ginext.Context) {
	caller, ok := h.authenticate(ctx)
	if !ok {
		return
	}

	res, err := h.service.GetList(ctx.Request.Context(), caller)
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, res)
}

func (h ImageHandler) GetImage(ctx *ginext.Context) {
	caller, ok := h.authenticate(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")

	res, err := h.service.Get(ctx.Request.Context(), caller, id)
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(200, res)
}

func (h ImageHandler) Create(ctx *ginext.Context) {
	caller, ok := h.authenticate(ctx)
	if !ok {
		return
	}

	var data model.ImageCreateData
	if err := ctx.ShouldBindJSON(&data); err != nil {
		ctx.JSON(400, map[string]string{"error": model.ErrBadRequestBody.Error()})
		return
	}

	descriptor, err := h.service.Create(ctx.Request.Context(), caller, &data)
	if err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.JSON(201, descriptor)
}

func (h ImageHandler) Replace(ctx *ginext.Context) {
	caller, ok := h.authenticate(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")

	var patch model.ImagePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(400, map[string]string{"error": model.ErrBadRequestBody.Error()})
		return
	}

	if err := h.service.Replace(ctx.Request.Context(), caller, id, &patch); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Status(204)
}

func (h ImageHandler) PartialUpdate(ctx *ginext.Context) {
	caller, ok := h.authenticate(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")

	var patch model.ImagePatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		ctx.JSON(400, map[string]string{"error": model.ErrBadRequestBody.Error()})
		return
	}

	if err := h.service.Patch(ctx.Request.Context(), caller, id, &patch); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Status(204)
}

func (h ImageHandler) Delete(ctx *ginext.Context) {
	caller, ok := h.authenticate(ctx)
	if !ok {
		return
	}
	id := ctx.Param("id")

	if err := h.service.Delete(ctx.Request.Context(), caller, id); err != nil {
		ctx.JSON(errorCodeDefiner(err), map[string]string{"error": err.Error()})
		return
	}

	ctx.Status(204)
}

// authenticate resolves the caller from the Authorization header. On failure
// it answers 401 itself; no identity is ever attached to the request.
func (h ImageHandler) authenticate(ctx *ginext.Context) (*model.Caller, bool) {
	caller, err := h.verifier.Verify(ctx.GetHeader("Authorization"))
	if err != nil {
		ctx.JSON(401, map[string]string{"error": model.ErrUnauthenticated.Error()})
		return nil, false
	}
	return caller, true
}
