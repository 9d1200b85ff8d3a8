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

type LobbyService interface {
	CreateLobby(ctx context.Context, ownerID uint) (domain.Lobby, error)
	GetLobby(ctx context.Context, id uint) (domain.Lobby, error)
	GetLobbyByOwner(ctx context.Context, ownerID uint) (domain.Lobby, error)
	SetReady(ctx context.Context, lobbyID, callerID uint) error
	DeleteLobby(ctx context.Context, lobbyID, callerID uint) error
	JoinLobby(ctx context.Context, lobbyID, userID uint) error
	LeaveLobby(ctx context.Context, lobbyID, userID uint) error
	GetMembers(ctx context.Context, lobbyID uint) ([]domain.User, error)
	SendInvitation(ctx context.Context, invitation domain.Invitation) error
	AcceptInvitation(ctx context.Context, invitation domain.Invitation) error
	DeclineInvitation(ctx context.Context, invitation domain.Invitation) error
	CancelInvitation(ctx context.Context, invitation domain.Invitation) error
	ReceivedInvitations(ctx context.Context, receiverID uint) ([]domain.Invitation, error)
	SentInvitations(ctx context.Context, senderID uint) ([]domain.Invitation, error)
}

type LobbyHandler struct {
	svc LobbyService
}

func NewLobbyHandler(svc LobbyService) *LobbyHandler {
	return &LobbyHandler{
		svc: svc,
	}
}

// HandleCreateLobby godoc
// @Summary      Create a lobby owned by the caller
// @Tags         lobbies
// @Produce      json
// @Success      201      {object}   domain.Lobby
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies [post]
func (h *LobbyHandler) HandleCreateLobby(ctx *gin.Context) {
	lobby, err := h.svc.CreateLobby(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrLobbyExists) {
			response.RenderErr(ctx, response.ErrConflict(service.ErrLobbyExists))
			return
		}

		err = fmt.Errorf("v1.HandleCreateLobby -> h.svc.CreateLobby -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, lobby)
}

// HandleGetMyLobby godoc
// @Summary      Get the caller's own lobby
// @Tags         lobbies
// @Produce      json
// @Success      200      {object}   domain.Lobby
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/mine [get]
func (h *LobbyHandler) HandleGetMyLobby(ctx *gin.Context) {
	lobby, err := h.svc.GetLobbyByOwner(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		if errors.Is(err, service.ErrLobbyNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMyLobby -> h.svc.GetLobbyByOwner -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, lobby)
}

// HandleSetReady godoc
// @Summary      Finalize voting in a lobby
// @Tags         lobbies
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      200      {object}   domain.Lobby
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/ready [post]
func (h *LobbyHandler) HandleSetReady(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.SetReady(ctx.Request.Context(), lobbyID, middleware.UserID(ctx)); err != nil {
		switch {
		case errors.Is(err, service.ErrLobbyNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
		case errors.Is(err, service.ErrNotLobbyOwner):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrNotLobbyOwner))
		case errors.Is(err, service.ErrLobbyAlreadyReady):
			response.RenderErr(ctx, response.ErrConflict(service.ErrLobbyAlreadyReady))
		default:
			err = fmt.Errorf("v1.HandleSetReady -> h.svc.SetReady -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	lobby, err := h.svc.GetLobby(ctx.Request.Context(), lobbyID)
	if err != nil {
		err = fmt.Errorf("v1.HandleSetReady -> h.svc.GetLobby -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, lobby)
}

// HandleDeleteLobby godoc
// @Summary      Delete a lobby and all dependent rows
// @Tags         lobbies
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID} [delete]
func (h *LobbyHandler) HandleDeleteLobby(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteLobby(ctx.Request.Context(), lobbyID, middleware.UserID(ctx)); err != nil {
		switch {
		case errors.Is(err, service.ErrLobbyNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
		case errors.Is(err, service.ErrNotLobbyOwner):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrNotLobbyOwner))
		default:
			err = fmt.Errorf("v1.HandleDeleteLobby -> h.svc.DeleteLobby -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetMembers godoc
// @Summary      List the users inside a lobby
// @Tags         lobbies
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      200      {array}    domain.User
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/members [get]
func (h *LobbyHandler) HandleGetMembers(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	members, err := h.svc.GetMembers(ctx.Request.Context(), lobbyID)
	if err != nil {
		if errors.Is(err, service.ErrLobbyNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMembers -> h.svc.GetMembers -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, members)
}

// HandleJoinLobby godoc
// @Summary      Join a lobby
// @Tags         lobbies
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/members [post]
func (h *LobbyHandler) HandleJoinLobby(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.JoinLobby(ctx.Request.Context(), lobbyID, middleware.UserID(ctx)); err != nil {
		switch {
		case errors.Is(err, service.ErrLobbyNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
		case errors.Is(err, service.ErrMembershipExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrMembershipExists))
		default:
			err = fmt.Errorf("v1.HandleJoinLobby -> h.svc.JoinLobby -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleLeaveLobby godoc
// @Summary      Leave a lobby
// @Tags         lobbies
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/members/me [delete]
func (h *LobbyHandler) HandleLeaveLobby(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.LeaveLobby(ctx.Request.Context(), lobbyID, middleware.UserID(ctx)); err != nil {
		if errors.Is(err, service.ErrMembershipNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMembershipNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleLeaveLobby -> h.svc.LeaveLobby -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleSendInvitation godoc
// @Summary      Invite a user to a lobby
// @Tags         invitations
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Param        request  body       request.SendInvitationRequest true "request body"
// @Success      201
// @Failure      400      {object}   response.Err
// @Failure      403      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/invitations [post]
func (h *LobbyHandler) HandleSendInvitation(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.SendInvitationRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.SendInvitation(ctx.Request.Context(), domain.Invitation{
		SenderID:   middleware.UserID(ctx),
		LobbyID:    lobbyID,
		ReceiverID: req.ReceiverID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotLobbyMember):
			response.RenderErr(ctx, response.ErrForbidden(service.ErrNotLobbyMember))
		case errors.Is(err, service.ErrInvitationExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrInvitationExists))
		default:
			err = fmt.Errorf("v1.HandleSendInvitation -> h.svc.SendInvitation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusCreated)
}

// HandleCancelInvitation godoc
// @Summary      Cancel an invitation the caller sent
// @Tags         invitations
// @Produce      json
// @Param        lobbyID     path    int  true "lobby ID"
// @Param        receiverID  path    int  true "receiver ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/invitations/{receiverID} [delete]
func (h *LobbyHandler) HandleCancelInvitation(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	receiverID, err := parseUintParam(ctx, "receiverID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.CancelInvitation(ctx.Request.Context(), domain.Invitation{
		SenderID:   middleware.UserID(ctx),
		LobbyID:    lobbyID,
		ReceiverID: receiverID,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvitationNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleCancelInvitation -> h.svc.CancelInvitation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleAcceptInvitation godoc
// @Summary      Accept an invitation and join the lobby
// @Tags         invitations
// @Produce      json
// @Param        request  body       request.RespondInvitationRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /invitations/accept [post]
func (h *LobbyHandler) HandleAcceptInvitation(ctx *gin.Context) {
	var req request.RespondInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.AcceptInvitation(ctx.Request.Context(), domain.Invitation{
		SenderID:   req.SenderID,
		LobbyID:    req.LobbyID,
		ReceiverID: middleware.UserID(ctx),
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvitationNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvitationNotFound))
		case errors.Is(err, service.ErrMembershipExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrMembershipExists))
		default:
			err = fmt.Errorf("v1.HandleAcceptInvitation -> h.svc.AcceptInvitation -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleDeclineInvitation godoc
// @Summary      Decline an invitation
// @Tags         invitations
// @Produce      json
// @Param        request  body       request.RespondInvitationRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /invitations/decline [post]
func (h *LobbyHandler) HandleDeclineInvitation(ctx *gin.Context) {
	var req request.RespondInvitationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err := h.svc.DeclineInvitation(ctx.Request.Context(), domain.Invitation{
		SenderID:   req.SenderID,
		LobbyID:    req.LobbyID,
		ReceiverID: middleware.UserID(ctx),
	})
	if err != nil {
		if errors.Is(err, service.ErrInvitationNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrInvitationNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeclineInvitation -> h.svc.DeclineInvitation -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleReceivedInvitations godoc
// @Summary      List invitations received by the caller
// @Tags         invitations
// @Produce      json
// @Success      200      {array}    domain.Invitation
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /invitations [get]
func (h *LobbyHandler) HandleReceivedInvitations(ctx *gin.Context) {
	invitations, err := h.svc.ReceivedInvitations(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleReceivedInvitations -> h.svc.ReceivedInvitations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitations)
}

// HandleSentInvitations godoc
// @Summary      List invitations sent by the caller
// @Tags         invitations
// @Produce      json
// @Success      200      {array}    domain.Invitation
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /invitations/sent [get]
func (h *LobbyHandler) HandleSentInvitations(ctx *gin.Context) {
	invitations, err := h.svc.SentInvitations(ctx.Request.Context(), middleware.UserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleSentInvitations -> h.svc.SentInvitations -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, invitations)
}
