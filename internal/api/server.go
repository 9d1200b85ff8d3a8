package api

import (
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/movienight/server/docs"
	v1 "github.com/movienight/server/internal/api/handler/v1"
	"github.com/movienight/server/internal/api/middleware"
	"github.com/movienight/server/internal/config"
	"github.com/movienight/server/internal/repository"
	"github.com/movienight/server/internal/repository/dao"
	"github.com/movienight/server/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	authHandler := s.initAuthHandler(db)
	userHandler := s.initUserHandler(db)
	lobbyHandler := s.initLobbyHandler(db)
	movieHandler := s.initMovieHandler(db)
	votingHandler := s.initVotingHandler(db)
	s.MountHandlers(authHandler, userHandler, lobbyHandler, movieHandler, votingHandler)

	return s
}

func (s *Server) initAuthHandler(db *gorm.DB) *v1.AuthHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewAuthService(repo)
	handler := v1.NewAuthHandler(s.Config.API, svc)

	return handler
}

func (s *Server) initUserHandler(db *gorm.DB) *v1.UserHandler {
	userDAO := dao.NewUserDAO(db)
	repo := repository.NewUserRepository(userDAO)
	svc := service.NewUserService(repo)
	handler := v1.NewUserHandler(svc)

	return handler
}

func (s *Server) initLobbyHandler(db *gorm.DB) *v1.LobbyHandler {
	lobbyDAO := dao.NewLobbyDAO(db)
	repo := repository.NewLobbyRepository(lobbyDAO)
	svc := service.NewLobbyService(repo)
	handler := v1.NewLobbyHandler(svc)

	return handler
}

func (s *Server) initMovieHandler(db *gorm.DB) *v1.MovieHandler {
	movieDAO := dao.NewMovieDAO(db)
	repo := repository.NewMovieRepository(movieDAO)
	svc := service.NewMovieService(repo)
	handler := v1.NewMovieHandler(svc)

	return handler
}

func (s *Server) initVotingHandler(db *gorm.DB) *v1.VotingHandler {
	votingRepo := repository.NewVotingRepository(dao.NewSuggestionDAO(db), dao.NewVoteDAO(db))
	lobbyRepo := repository.NewLobbyRepository(dao.NewLobbyDAO(db))
	svc := service.NewVotingService(votingRepo, lobbyRepo)
	handler := v1.NewVotingHandler(svc)

	return handler
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	lobbyHandler *v1.LobbyHandler,
	movieHandler *v1.MovieHandler,
	votingHandler *v1.VotingHandler,
) {
	const basePath = "/api/v1"

	signupLimiter := middleware.NewIPRateLimiter(10, 5, 5*time.Minute)

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", middleware.RateLimitByIP(signupLimiter), authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	authenticated := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		authenticated.GET("/users/:userID", userHandler.HandleGetUser)
		authenticated.PUT("/users/password", userHandler.HandleUpdatePassword)
		authenticated.PUT("/users/name", userHandler.HandleUpdateName)
		authenticated.DELETE("/users/:userID", userHandler.HandleDeleteUser)

		authenticated.POST("/lobbies", lobbyHandler.HandleCreateLobby)
		authenticated.GET("/lobbies/mine", lobbyHandler.HandleGetMyLobby)
		authenticated.POST("/lobbies/:lobbyID/ready", lobbyHandler.HandleSetReady)
		authenticated.DELETE("/lobbies/:lobbyID", lobbyHandler.HandleDeleteLobby)
		authenticated.GET("/lobbies/:lobbyID/members", lobbyHandler.HandleGetMembers)
		authenticated.POST("/lobbies/:lobbyID/members", lobbyHandler.HandleJoinLobby)
		authenticated.DELETE("/lobbies/:lobbyID/members/me", lobbyHandler.HandleLeaveLobby)

		authenticated.POST("/lobbies/:lobbyID/invitations", lobbyHandler.HandleSendInvitation)
		authenticated.DELETE("/lobbies/:lobbyID/invitations/:receiverID", lobbyHandler.HandleCancelInvitation)
		authenticated.GET("/invitations", lobbyHandler.HandleReceivedInvitations)
		authenticated.GET("/invitations/sent", lobbyHandler.HandleSentInvitations)
		authenticated.POST("/invitations/accept", lobbyHandler.HandleAcceptInvitation)
		authenticated.POST("/invitations/decline", lobbyHandler.HandleDeclineInvitation)

		authenticated.GET("/movies", movieHandler.HandleListMovies)
		authenticated.POST("/movies", movieHandler.HandleImportMovie)
		authenticated.GET("/movies/:movieID", movieHandler.HandleGetMovie)
		authenticated.DELETE("/movies/:movieID", movieHandler.HandleDeleteMovie)
		authenticated.POST("/movies/:movieID/genres", movieHandler.HandleTagMovie)
		authenticated.GET("/genres", movieHandler.HandleListGenres)
		authenticated.POST("/genres", movieHandler.HandleCreateGenre)

		authenticated.POST("/lobbies/:lobbyID/suggestions", votingHandler.HandleSuggestMovie)
		authenticated.GET("/lobbies/:lobbyID/suggestions", votingHandler.HandleGetSuggestions)
		authenticated.DELETE("/lobbies/:lobbyID/suggestions/:movieID", votingHandler.HandleRemoveSuggestion)
		authenticated.POST("/lobbies/:lobbyID/votes", votingHandler.HandleCastVote)
		authenticated.GET("/lobbies/:lobbyID/votes", votingHandler.HandleGetMyVotes)
		authenticated.DELETE("/lobbies/:lobbyID/votes/:movieID", votingHandler.HandleRetractVote)
		authenticated.GET("/lobbies/:lobbyID/tally", votingHandler.HandleGetTally)
		authenticated.GET("/lobbies/:lobbyID/winners", votingHandler.HandleGetWinners)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "MovieNight API"
	docs.SwaggerInfo.Description = "Social movie-selection server: lobbies, suggestions, voting."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
