package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/resort-pms/service-pricing/internal/pkg/domainerr"
)

// envelope is the standard JSON response body.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success writes a 200 response with the given payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, envelope{Success: true, Data: data})
}

// Created writes a 201 response with the given payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, envelope{Success: true, Data: data})
}

// BadRequest writes a 400 response with the given message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, envelope{Success: false, Error: message})
}

// Error maps a domain error to the appropriate HTTP status.
func Error(c *gin.Context, err error) {
	var validationErr *domainerr.ValidationError
	var notFoundErr *domainerr.NotFoundError
	var conflictErr *domainerr.ConflictError

	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, envelope{Success: false, Error: validationErr.Message})
	case errors.As(err, &notFoundErr):
		c.JSON(http.StatusNotFound, envelope{Success: false, Error: notFoundErr.Error()})
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, envelope{Success: false, Error: conflictErr.Message})
	default:
		c.JSON(http.StatusInternalServerError, envelope{Success: false, Error: "internal server error"})
	}
}
