package v1

import (
	"errors"
	"net/http"

	"github.com/demo-night/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"An ID specified in the query string was not a valid UUID"`
}

// status returns the appropriate status for a database error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) || errors.Is(err, models.ErrNoCurrentEvent) {
		return http.StatusNotFound
	}

	return http.StatusBadRequest
}

// Cleanup errors
var (
	errCleanupConfirmation = errors.New("the confirmation for the cleanup API call was incorrect")
)

// Auth errors
var (
	errLoginDisabled = errors.New("organizer login is not configured on this server")
	errWrongPassword = errors.New("the password is not correct")
)

// QR errors
var (
	errQRSize = errors.New("the size parameter must be between 64 and 1024")
)
