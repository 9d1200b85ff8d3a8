package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/movienight/server/internal/api/handler/v1/response"
	"github.com/movienight/server/internal/pkg/jwthelper"
)

// ContextUserIDKey is where VerifyJWT stores the authenticated user's id.
const ContextUserIDKey = "userID"

var errMissingToken = errors.New("missing or malformed Authorization header")

type Authenticator struct {
	signingKey []byte
}

func NewAuthenticator(signingKey string) *Authenticator {
	return &Authenticator{
		signingKey: []byte(signingKey),
	}
}

func (a *Authenticator) VerifyJWT() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		header := ctx.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			response.RenderErr(ctx, response.ErrUnauthorized(errMissingToken))
			return
		}

		claims, err := jwthelper.ParseToken(a.signingKey, token)
		if err != nil {
			response.RenderErr(ctx, response.ErrUnauthorized(err))
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Next()
	}
}

// UserID reads the authenticated user's id set by VerifyJWT.
func UserID(ctx *gin.Context) uint {
	return ctx.GetUint(ContextUserIDKey)
}
