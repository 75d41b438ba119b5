package domain

import (
	"errors"
	"fmt"
)

var (
	MessageFailedProcessRequest = "failed to process request"
	MessageFailedBodyRequest    = "failed to parse request body"
	MessageFailedGetToken       = "failed to get token"
	MessageFailedTokenInvalid   = "invalid token"
	MessageSuccessUploadImage   = "image uploaded successfully"
	MessageFailedUploadImage    = "failed to upload image"

	// Error kinds. Concrete errors wrap one of these so the HTTP layer can pick a status.
	ErrValidation   = errors.New("validation error")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")

	ErrParseUUID       = fmt.Errorf("%w: failed to parse UUID", ErrValidation)
	ErrInvalidID       = fmt.Errorf("%w: id must be a positive integer", ErrValidation)
	ErrTokenNotFound   = fmt.Errorf("%w: token not found", ErrUnauthorized)
	ErrTokenExpired    = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrTokenInvalid    = fmt.Errorf("%w: token invalid", ErrUnauthorized)
	ErrInvalidImage    = fmt.Errorf("%w: only PNG, JPG, WEBP formats are allowed", ErrValidation)
	ErrStorageDisabled = errors.New("object storage is not configured")
)

type UploadImageResponse struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}
