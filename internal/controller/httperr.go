package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mvaldebenito/vocanta/internal/apperr"
	"github.com/mvaldebenito/vocanta/internal/dto"
)

// WriteError maps service errors onto HTTP statuses. An incomplete finish gets
// its own body so clients can show "answered X of Y".
func WriteError(c *gin.Context, err error) {
	var incomplete *apperr.IncompleteAttemptError
	if errors.As(err, &incomplete) {
		c.JSON(http.StatusBadRequest, dto.IncompleteAttemptResponse{
			Message:  incomplete.Error(),
			Answered: incomplete.Answered,
			Expected: incomplete.Expected,
		})
		return
	}

	switch {
	case errors.Is(err, apperr.ErrInvalidInput):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrForbidden):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, dto.ErrorResponse{Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "internal server error"})
	}
}

// ParamUint reads a numeric path parameter; ok is false after an error
// response has already been written.
func ParamUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name + " format"})
		return 0, false
	}
	return uint(v), true
}

// QueryUint reads a required numeric query parameter.
func QueryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: name + " query parameter is required"})
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "invalid " + name + " format"})
		return 0, false
	}
	return uint(v), true
}
