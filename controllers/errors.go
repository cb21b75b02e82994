package controllers

import (
	"errors"
	"net/http"

	"hotel-reservations/services"
	"hotel-reservations/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondServiceError maps the service error taxonomy onto HTTP status
// codes. Unexpected store errors are logged in full and surfaced as a
// generic 500 with no internal detail.
func respondServiceError(c *gin.Context, log *zap.Logger, err error) {
	switch {
	case errors.Is(err, services.ErrGuestNotFound):
		utils.JSONError(c, http.StatusNotFound, "guest not found")
	case errors.Is(err, services.ErrNotFound):
		utils.JSONError(c, http.StatusNotFound, "not found")
	case errors.Is(err, services.ErrInvalidDateRange):
		utils.JSONError(c, http.StatusBadRequest, "check_out_date must be after check_in_date")
	case errors.Is(err, services.ErrAlreadyCancelled):
		utils.JSONError(c, http.StatusBadRequest, "reservation is already cancelled")
	case errors.Is(err, services.ErrInvalidTransition):
		utils.JSONError(c, http.StatusBadRequest, "invalid reservation status transition")
	case errors.Is(err, services.ErrValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrReferenceNotFound):
		utils.JSONError(c, http.StatusBadRequest, "referenced entity does not exist")
	case errors.Is(err, services.ErrRoomUnavailable):
		utils.JSONError(c, http.StatusConflict, "room is not available for the requested dates")
	case errors.Is(err, services.ErrDuplicateKey):
		utils.JSONError(c, http.StatusConflict, "duplicate value for a unique field")
	case errors.Is(err, services.ErrReferentialConflict):
		utils.JSONError(c, http.StatusConflict, "entity is still referenced by active records")
	default:
		log.Error("unhandled service error", zap.Error(err), zap.String("path", c.FullPath()))
		utils.JSONError(c, http.StatusInternalServerError, "internal server error")
	}
}
