package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/apperr"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response helpers

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"message": "success",
		"data":    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, gin.H{
		"message": "created",
		"data":    data,
	})
}

func Fail(c *gin.Context, httpCode int, code, message string, field string) {
	detail := gin.H{
		"code":    code,
		"message": message,
	}
	if field != "" {
		detail["field"] = field
	}
	c.JSON(httpCode, gin.H{"error": detail})
}

// HandleError maps the error taxonomy to HTTP statuses. Unexpected errors are
// logged server-side and returned as an opaque failure.
func HandleError(c *gin.Context, log *zap.Logger, err error) {
	var e *apperr.Error
	if !errors.As(err, &e) {
		e = apperr.Internal(err)
	}

	switch e.Kind {
	case apperr.KindUnauthorized:
		Fail(c, http.StatusUnauthorized, e.Kind.String(), e.Message, "")
	case apperr.KindForbidden:
		Fail(c, http.StatusForbidden, e.Kind.String(), e.Message, "")
	case apperr.KindNotFound:
		Fail(c, http.StatusNotFound, e.Kind.String(), e.Message, "")
	case apperr.KindValidation:
		Fail(c, http.StatusBadRequest, e.Kind.String(), e.Message, e.Field)
	case apperr.KindConflict:
		Fail(c, http.StatusConflict, e.Kind.String(), e.Message, "")
	default:
		log.Error("internal error",
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Fail(c, http.StatusInternalServerError, e.Kind.String(), "internal server error", "")
	}
}

func BadRequest(c *gin.Context, message string) {
	Fail(c, http.StatusBadRequest, apperr.KindValidation.String(), message, "")
}

func parseID(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 64)
	return uint(id)
}
