package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Err struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`

	err error
}

func RenderErr(ctx *gin.Context, e *Err) {
	if e.StatusCode >= http.StatusInternalServerError {
		zap.L().Error("request failed",
			zap.String("path", ctx.FullPath()),
			zap.Error(e.err),
		)
	}

	ctx.AbortWithStatusJSON(e.StatusCode, e)
}

func ErrBadRequest(err error) *Err {
	return &Err{
		StatusCode: http.StatusBadRequest,
		Message:    err.Error(),
		err:        err,
	}
}

func ErrUnauthorized(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    err.Error(),
		err:        err,
	}
}

func ErrWrongCredentials(err error) *Err {
	return &Err{
		StatusCode: http.StatusUnauthorized,
		Message:    "wrong credentials",
		err:        err,
	}
}

func ErrForbidden(err error) *Err {
	return &Err{
		StatusCode: http.StatusForbidden,
		Message:    err.Error(),
		err:        err,
	}
}

func ErrNotFound(err error) *Err {
	return &Err{
		StatusCode: http.StatusNotFound,
		Message:    err.Error(),
		err:        err,
	}
}

func ErrConflict(err error) *Err {
	return &Err{
		StatusCode: http.StatusConflict,
		Message:    err.Error(),
		err:        err,
	}
}

func ErrTooManyRequests() *Err {
	return &Err{
		StatusCode: http.StatusTooManyRequests,
		Message:    "too many requests",
		err:        errors.New("too many requests"),
	}
}

func ErrInternalServerError(err error) *Err {
	return &Err{
		StatusCode: http.StatusInternalServerError,
		Message:    "internal server error",
		err:        err,
	}
}
