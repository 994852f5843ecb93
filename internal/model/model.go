// Package model provides data-structs for internal app-usage
package model

import (
	"errors"
	"time"
)

// Caller is the authenticated principal for one request, built from verified
// token claims. It lives only for the duration of the request and is never
// persisted.
type Caller struct {
	ID              string `json:"id"`
	FirstName       string `json:"firstName,omitempty"`
	LastName        string `json:"lastName,omitempty"`
	Email           string `json:"email,omitempty"`
	PermissionLevel int    `json:"permissionLevel,omitempty"`
}

//---------------------

// Image is the locally owned metadata record for one upstream-hosted image.
// ImageID, ImageURL and OwnerID are immutable after creation; the internal
// storage key is never exposed.
type Image struct {
	ImageID     string     `json:"id"`
	ImageURL    string     `json:"imageUrl"`
	ContentType string     `json:"contentType"`
	Description string     `json:"description,omitempty"`
	OwnerID     string     `json:"-"`
	CreatedAt   *time.Time `json:"createdAt,omitempty"`
	UpdatedAt   *time.Time `json:"updatedAt,omitempty"`
}

// ImageCreateData carries the caller-supplied payload for a new image.
type ImageCreateData struct {
	Data        string `json:"data"` // base64-encoded image bytes, forwarded as-is
	ContentType string `json:"contentType"`
	Description string `json:"description"`
}

// ImagePatch holds the mutable fields of an image record. Nil means
// "leave unchanged"; immutable fields cannot be expressed here at all.
type ImagePatch struct {
	ContentType *string `json:"contentType,omitempty"`
	Description *string `json:"description,omitempty"`
}

// UpstreamImage is the canonical descriptor returned by the upstream
// image-storage service.
type UpstreamImage struct {
	ID          string `json:"id"`
	ImageURL    string `json:"imageUrl"`
	ContentType string `json:"contentType"`
}

// ------------------

var (
	ErrCommon500       error = errors.New("something went wrong. Try again later")       // 500
	ErrUpstream        error = errors.New("upstream image service request failed")       // 500
	ErrUnauthenticated error = errors.New("invalid or missing credentials")              // 401
	ErrForbidden       error = errors.New("no permission to access this image")          // 403
	ErrImageNotFound   error = errors.New("specified image ID doesn't exist")            // 404
	ErrBadRequestBody  error = errors.New("failed to parse request body")                // 400
	ErrEmptyData       error = errors.New("empty image data provided")                   // 400
	ErrBadContentType  error = errors.New("content type is not supported")               // 400
	ErrLongDescription error = errors.New("description has a max length of 300 runes")   // 400
	ErrEmptyPatch      error = errors.New("at least one mutable field must be provided") // 400
)

//--------------------

const (
	JPEG = "image/jpeg"
	PNG  = "image/png"
	GIF  = "image/gif"
)

// ContentTypeMap enumerates the supported image MIME types.
var ContentTypeMap = map[string]bool{
	JPEG: true,
	PNG:  true,
	GIF:  true,
}

// MaxDescriptionLen bounds the description field of an image record.
const MaxDescriptionLen = 300
