package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/movienight/server/internal/api/handler/v1/request"
	"github.com/movienight/server/internal/api/handler/v1/response"
	"github.com/movienight/server/internal/domain"
	"github.com/movienight/server/internal/service"
)

type MovieService interface {
	ImportMovie(ctx context.Context, movie domain.Movie) (domain.Movie, error)
	GetMovie(ctx context.Context, id uint) (domain.Movie, error)
	ListMovies(ctx context.Context) ([]domain.Movie, error)
	DeleteMovie(ctx context.Context, id uint) error
	CreateGenre(ctx context.Context, name string) (domain.Genre, error)
	ListGenres(ctx context.Context) ([]domain.Genre, error)
	TagMovie(ctx context.Context, movieID uint, genreName string) error
	GenreLabel(ctx context.Context, movieID uint) (string, error)
	FilterByGenres(ctx context.Context, genreNames []string) ([]domain.Movie, error)
}

type MovieHandler struct {
	svc MovieService
}

func NewMovieHandler(svc MovieService) *MovieHandler {
	return &MovieHandler{
		svc: svc,
	}
}

// HandleImportMovie godoc
// @Summary      Add a movie to the catalog
// @Tags         movies
// @Produce      json
// @Param        request  body       request.ImportMovieRequest true "request body"
// @Success      201      {object}   domain.Movie
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /movies [post]
func (h *MovieHandler) HandleImportMovie(ctx *gin.Context) {
	var req request.ImportMovieRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	movie, err := h.svc.ImportMovie(ctx.Request.Context(), domain.Movie{
		Title:       req.Title,
		Description: req.Description,
		TrailerPath: req.TrailerPath,
	})
	if err != nil {
		err = fmt.Errorf("v1.HandleImportMovie -> h.svc.ImportMovie -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, movie)
}

// HandleGetMovie godoc
// @Summary      Get a movie with its genre label
// @Tags         movies
// @Produce      json
// @Param        movieID  path       int  true "movie ID"
// @Success      200      {object}   response.MovieWithGenres
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /movies/{movieID} [get]
func (h *MovieHandler) HandleGetMovie(ctx *gin.Context) {
	movieID, err := parseUintParam(ctx, "movieID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	movie, err := h.svc.GetMovie(ctx.Request.Context(), movieID)
	if err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMovieNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleGetMovie -> h.svc.GetMovie -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	label, err := h.svc.GenreLabel(ctx.Request.Context(), movieID)
	if err != nil {
		err = fmt.Errorf("v1.HandleGetMovie -> h.svc.GenreLabel -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.MovieWithGenres{
		Movie:  movie,
		Genres: label,
	})
}

// HandleDeleteMovie godoc
// @Summary      Remove a movie from the catalog
// @Tags         movies
// @Produce      json
// @Param        movieID  path       int  true "movie ID"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /movies/{movieID} [delete]
func (h *MovieHandler) HandleDeleteMovie(ctx *gin.Context) {
	movieID, err := parseUintParam(ctx, "movieID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.DeleteMovie(ctx.Request.Context(), movieID); err != nil {
		if errors.Is(err, service.ErrMovieNotFound) {
			response.RenderErr(ctx, response.ErrNotFound(service.ErrMovieNotFound))
			return
		}

		err = fmt.Errorf("v1.HandleDeleteMovie -> h.svc.DeleteMovie -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.Status(http.StatusNoContent)
}

// HandleListMovies godoc
// @Summary      List the movie catalog, optionally filtered by genres
// @Tags         movies
// @Produce      json
// @Param        genres   query      string false "comma-separated genre names; movies must match all"
// @Success      200      {array}    domain.Movie
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /movies [get]
func (h *MovieHandler) HandleListMovies(ctx *gin.Context) {
	var genreNames []string
	if raw := ctx.Query("genres"); raw != "" {
		genreNames = strings.Split(raw, ",")
	}

	movies, err := h.svc.FilterByGenres(ctx.Request.Context(), genreNames)
	if err != nil {
		err = fmt.Errorf("v1.HandleListMovies -> h.svc.FilterByGenres -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, movies)
}

// HandleCreateGenre godoc
// @Summary      Create a genre
// @Tags         movies
// @Produce      json
// @Param        request  body       request.CreateGenreRequest true "request body"
// @Success      201      {object}   domain.Genre
// @Failure      400      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /genres [post]
func (h *MovieHandler) HandleCreateGenre(ctx *gin.Context) {
	var req request.CreateGenreRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	genre, err := h.svc.CreateGenre(ctx.Request.Context(), req.Name)
	if err != nil {
		err = fmt.Errorf("v1.HandleCreateGenre -> h.svc.CreateGenre -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusCreated, genre)
}

// HandleListGenres godoc
// @Summary      List all genres
// @Tags         movies
// @Produce      json
// @Success      200      {array}    domain.Genre
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /genres [get]
func (h *MovieHandler) HandleListGenres(ctx *gin.Context) {
	genres, err := h.svc.ListGenres(ctx.Request.Context())
	if err != nil {
		err = fmt.Errorf("v1.HandleListGenres -> h.svc.ListGenres -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, genres)
}

// HandleTagMovie godoc
// @Summary      Tag a movie with a genre
// @Tags         movies
// @Produce      json
// @Param        movieID  path       int  true "movie ID"
// @Param        request  body       request.TagMovieRequest true "request body"
// @Success      204
// @Failure      400      {object}   response.Err
// @Failure      404      {object}   response.Err
// @Failure      409      {object}   response.Err
// @Failure      500      {object}   response.Err
// @Security     BearerAuth
// @Router       /movies/{movieID}/genres [post]
func (h *MovieHandler) HandleTagMovie(ctx *gin.Context) {
	movieID, err := parseUintParam(ctx, "movieID")
	if err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	var req request.TagMovieRequest
	if err = ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err = h.svc.TagMovie(ctx.Request.Context(), movieID, req.Genre); err != nil {
		switch {
		case errors.Is(err, service.ErrGenreNotFound):
			response.RenderErr(ctx, response.ErrNotFound(service.ErrGenreNotFound))
		case errors.Is(err, service.ErrGenreAssigned):
			response.RenderErr(ctx, response.ErrConflict(service.ErrGenreAssigned))
		default:
			err = fmt.Errorf("v1.HandleTagMovie -> h.svc.TagMovie -> %w", err)
			response.RenderErr(ctx, response.ErrInternalServerError(err))
		}
		return
	}

	ctx.Status(http.StatusNoContent)
}
