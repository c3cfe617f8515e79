package middleware

import (
	"errors"
	"strings"

	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"
	"go-ems/internal/shared/token"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const AccessTokenCookie = "access_token"

// SessionParser is satisfied by *token.Manager.
type SessionParser interface {
	Parse(raw string, kind token.Kind) (domain.Session, error)
}

// AuthMiddleware resolves the bearer token (or access_token cookie) into a
// domain.Session stored on the gin context.
func AuthMiddleware(tokens SessionParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, found := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie(AccessTokenCookie); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			abortWithError(c, apperror.ErrUnauthorized.WithMessage("Token not found"))
			return
		}

		session, err := tokens.Parse(tokenString, token.KindAccess)
		if err != nil {
			if !errors.Is(err, token.ErrTokenExpired) {
				err = token.ErrInvalidToken
			}
			abortWithError(c, err)
			return
		}

		userID := session.User.ID.String()
		c.Set(domain.SessionKey, session)
		c.Set("user_id", userID)
		c.Set("role", string(session.User.Role))

		ctx := c.Request.Context()
		ctx = contextutil.WithUserID(ctx, userID)
		ctx = contextutil.WithRole(ctx, string(session.User.Role))
		if l := contextutil.GetLogger(ctx, nil); l != nil {
			ctx = contextutil.WithLogger(ctx, l.With(zap.String("user_id", userID)))
		}
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

func sessionFrom(c *gin.Context) (domain.Session, bool) {
	raw, ok := c.Get(domain.SessionKey)
	if !ok {
		return domain.Session{}, false
	}
	session, ok := raw.(domain.Session)
	return session, ok
}

func abortWithError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Abort(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}
