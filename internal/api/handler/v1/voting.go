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

type VotingService interface {
	SuggestMovie(ctx context.Context, lobbyID, userID, movieID uint) error
	RemoveSuggestion(ctx context.Context, lobbyID, movieID uint) error
	GetSuggestions(ctx context.Context, lobbyID uint) ([]domain.Suggestion, error)
	CastVote(ctx context.Context, lobbyID, userID, movieID uint) error
	RetractVote(ctx context.Context, lobbyID, userID, movieID uint) error
	VotesOfUser(ctx context.Context, lobbyID, userID uint) ([]domain.Vote, error)
	Tally(ctx context.Context, lobbyID uint) (map[uint]int, error)
	ResolveWinners(ctx context.Context, lobbyID uint) ([]domain.MovieResult, error)
}

type VotingHandler struct {
	svc VotingService
}

func NewVotingHandler(svc VotingService) *VotingHandler {
	return &VotingHandler{
		svc: svc,
	}
}

// HandleSuggestMovie godoc
// @Summary      Suggest a movie as a candidate in a lobby
// @Tags         voting
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Param        request  body       request.SuggestMovieRequest true "request body"
// @Success      201
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/suggestions [post]
func (h *VotingHandler) HandleSuggestMovie(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.SuggestMovieRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.SuggestMovie(ctx.Request.Context(), lobbyID, middleware.UserID(ctx), req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLobbyNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
		case errors.Is(err, service.ErrLobbyAlreadyReady):
			response.RenderErr(ctx, response.ErrConflict(service.ErrLobbyAlreadyReady))
		case errors.Is(err, service.ErrSuggestionExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrSuggestionExists))
		default:
			err = fmt.Errorf("v1.HandleSuggestMovie -> h.svc.SuggestMovie -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusCreated)
}

// HandleRemoveSuggestion godoc
// @Summary      Withdraw a suggestion and its votes
// @Tags         voting
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Param        movieID  path       int  true "movie ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/suggestions/{movieID} [delete]
func (h *VotingHandler) HandleRemoveSuggestion(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	movieID, err := parseUintParam(ctx, "movieID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.RemoveSuggestion(ctx.Request.Context(), lobbyID, movieID); err != nil {
		switch {
		case errors.Is(err, service.ErrLobbyNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
		case errors.Is(err, service.ErrSuggestionNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrSuggestionNotFound))
		case errors.Is(err, service.ErrLobbyAlreadyReady):
			response.RenderErr(ctx, response.ErrConflict(service.ErrLobbyAlreadyReady))
		default:
			err = fmt.Errorf("v1.HandleRemoveSuggestion -> h.svc.RemoveSuggestion -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetSuggestions godoc
// @Summary      List a lobby's suggestions
// @Tags         voting
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      200      {array}    domain.Suggestion
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/suggestions [get]
func (h *VotingHandler) HandleGetSuggestions(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	suggestions, err := h.svc.GetSuggestions(ctx.Request.Context(), lobbyID)
	if err != nil {
		if errors.Is(err, service.ErrLobbyNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetSuggestions -> h.svc.GetSuggestions -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, suggestions)
}

// HandleCastVote godoc
// @Summary      Vote for a movie in a lobby
// @Tags         voting
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Param        request  body       request.CastVoteRequest true "request body"
// @Success      201
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/votes [post]
func (h *VotingHandler) HandleCastVote(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.CastVoteRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.CastVote(ctx.Request.Context(), lobbyID, middleware.UserID(ctx), req.MovieID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLobbyNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
		case errors.Is(err, service.ErrLobbyAlreadyReady):
			response.RenderErr(ctx, response.ErrConflict(service.ErrLobbyAlreadyReady))
		case errors.Is(err, service.ErrVoteExists):
			response.RenderErr(ctx, response.ErrConflict(service.ErrVoteExists))
		default:
			err = fmt.Errorf("v1.HandleCastVote -> h.svc.CastVote -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusCreated)
}

// HandleRetractVote godoc
// @Summary      Retract the caller's vote for a movie
// @Tags         voting
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Param        movieID  path       int  true "movie ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/votes/{movieID} [delete]
func (h *VotingHandler) HandleRetractVote(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	movieID, err := parseUintParam(ctx, "movieID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	err = h.svc.RetractVote(ctx.Request.Context(), lobbyID, middleware.UserID(ctx), movieID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrLobbyNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
		case errors.Is(err, service.ErrVoteNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrVoteNotFound))
		case errors.Is(err, service.ErrLobbyAlreadyReady):
			response.RenderErr(ctx, response.ErrConflict(service.ErrLobbyAlreadyReady))
		default:
			err = fmt.Errorf("v1.HandleRetractVote -> h.svc.RetractVote -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleGetMyVotes godoc
// @Summary      List the caller's votes in a lobby
// @Tags         voting
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      200      {array}    domain.Vote
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/votes [get]
func (h *VotingHandler) HandleGetMyVotes(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	votes, err := h.svc.VotesOfUser(ctx.Request.Context(), lobbyID, middleware.UserID(ctx))
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMyVotes -> h.svc.VotesOfUser -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, votes)
}

// HandleGetTally godoc
// @Summary      Get per-movie vote counts for a lobby
// @Tags         voting
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      200      {object}   response.TallyResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/tally [get]
func (h *VotingHandler) HandleGetTally(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	tally, err := h.svc.Tally(ctx.Request.Context(), lobbyID)
	if err != nil {
		if errors.Is(err, service.ErrLobbyNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetTally -> h.svc.Tally -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.TallyResponse{
		LobbyID: lobbyID,
		Tally:   tally,
	})
}

// HandleGetWinners godoc
// @Summary      Get a lobby's movies ranked by vote count
// @Tags         voting
// @Produce      json
// @Param        lobbyID  path       int  true "lobby ID"
// @Success      200      {object}   response.WinnersResponse
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /lobbies/{lobbyID}/winners [get]
func (h *VotingHandler) HandleGetWinners(ctx *gin.Context) {
	lobbyID, err := parseUintParam(ctx, "lobbyID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	winners, err := h.svc.ResolveWinners(ctx.Request.Context(), lobbyID)
	if err != nil {
		if errors.Is(err, service.ErrLobbyNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrLobbyNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetWinners -> h.svc.ResolveWinners -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.WinnersResponse{
		LobbyID: lobbyID,
		Winners: winners,
	})
}
