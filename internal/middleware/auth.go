package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/balbesina228/films-api/internal/errs"
	"github.com/balbesina228/films-api/internal/server"
	"github.com/balbesina228/films-api/internal/service"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	ParseToken(token string) (*service.Claims, error)
}

// AuthMiddleware guards the mutating routes with the bearer tokens issued
// by POST /login.
type AuthMiddleware struct {
	server *server.Server
	tokens TokenVerifier
}

func NewAuthMiddleware(s *server.Server, tokens TokenVerifier) *AuthMiddleware {
	return &AuthMiddleware{
		server: s,
		tokens: tokens,
	}
}

// RequireAuth rejects requests without a valid "Authorization: Bearer"
// header with a 401. On success the user's uuid and username are stored
// in Echo context and added to the request logger.
func (auth *AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return errs.NewUnauthorizedError("Missing bearer token", false)
		}

		claims, err := auth.tokens.ParseToken(token)
		if err != nil {
			GetLogger(c).Debug().Err(err).Msg("rejected bearer token")
			return errs.NewUnauthorizedError("Invalid or expired token", false)
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(UsernameKey, claims.Username)

		l := GetLogger(c).With().Str("user_id", claims.UserID).Logger()
		setLogger(c, &l)

		return next(c)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
