package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"atelier/internal/shared/apperrors"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// OK writes a success envelope with http.StatusOK.
func OK(c *gin.Context, message string, data interface{}) {
	RespondJSON(c, "success", http.StatusOK, message, data, nil)
}

// Created writes a success envelope with http.StatusCreated.
func Created(c *gin.Context, message string, data interface{}) {
	RespondJSON(c, "success", http.StatusCreated, message, data, nil)
}

// Fail maps a domain error to its HTTP status via the error taxonomy and
// writes the error envelope.
func Fail(c *gin.Context, err error) {
	code := apperrors.HTTPStatus(err)
	RespondJSON(c, "error", code, err.Error(), nil, string(apperrors.KindOf(err)))
}
