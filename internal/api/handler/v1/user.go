package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/movienight/server/internal/api/handler/v1/request"
	"github.com/movienight/server/internal/api/handler/v1/response"
	"github.com/movienight/server/internal/api/middleware"
	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/service"
)

var errNotAccountOwner = errors.New("can only delete your own account")

type UserService interface {
	GetUser(ctx context.Context, id uint) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, password string) error
	UpdateName(ctx context.Context, id uint, firstName, lastName string) error
	DeleteUser(ctx context.Context, id uint) error
}

type UserHandler struct {
	svc UserService
}

func NewUserHandler(svc UserService) *UserHandler {
	return &UserHandler{
		svc: svc,
	}
}

// HandleGetUser godoc
// @Summary      Get a user by ID
// @Tags         users
// @Produce      json
// @Param        userID   path       int  true "user ID"
// @Success      200      {object}   domain.User
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /users/{userID} [get]
func (h *UserHandler) HandleGetUser(ctx *gin.Context) {
	userID, err := parseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	user, err := h.svc.GetUser(ctx.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetUser -> h.svc.GetUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// HandleUpdatePassword godoc
// @Summary      Update the caller's password
// @Tags         users
// @Produce      json
// @Param        request  body       request.UpdatePasswordRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /users/password [put]
func (h *UserHandler) HandleUpdatePassword(ctx *gin.Context) {
	var req request.UpdatePasswordRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.UpdatePassword(ctx.Request.Context(), middleware.UserID(ctx), req.Password)
	if err != nil {
		if errors.Is(err, service.ErrBlankPassword) {
			response.RenderErr(ctx, response.ErrBadRequest(err))
			return
		}

		err = fmt.Errorf("v1.HandleUpdatePassword -> h.svc.UpdatePassword -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleUpdateName godoc
// @Summary      Update the caller's display name
// @Tags         users
// @Produce      json
// @Param        request  body       request.UpdateNameRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /users/name [put]
func (h *UserHandler) HandleUpdateName(ctx *gin.Context) {
	var req request.UpdateNameRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.UpdateName(ctx.Request.Context(), middleware.UserID(ctx), req.FirstName, req.LastName)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleUpdateName -> h.svc.UpdateName -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeleteUser godoc
// @Summary      Delete the caller's account and everything it touches
// @Tags         users
// @Produce      json
// @Param        userID   path       int  true "user ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /users/{userID} [delete]
func (h *UserHandler) HandleDeleteUser(ctx *gin.Context) {
	userID, err := parseUintParam(ctx, "userID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if userID != middleware.UserID(ctx) {
		response.RenderErr(ctx, response.ErrForbidden(errNotAccountOwner))
		return
	}

	if err = h.svc.DeleteUser(ctx.Request.Context(), userID); err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrUserNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteUser -> h.svc.DeleteUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}
