package auth

import (
	"net/http"
	"time"

	"go-ems/internal/apicontext"
	autherrors "go-ems/internal/auth/errors"
	"go-ems/internal/middleware"
	platform "go-ems/internal/shared/request"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const (
	RefreshTokenCookie = "refresh_token"
	ClientTypeHeader   = "X-Client-Type"
)

type Handler struct {
	service      Service
	cookieSecure bool
}

func NewHandler(s Service, cookieSecure bool) *Handler {
	return &Handler{service: s, cookieSecure: cookieSecure}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	pair, userResp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}

	if h.isWeb(c) {
		h.setTokenCookies(c, pair)
	}

	response.Success(c, http.StatusOK, LoginResponse{
		User:         userResp,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExpiresAt,
	}, nil)
}

// Refresh reads the refresh token from the cookie for web clients and from
// the body for mobile clients.
func (h *Handler) Refresh(c *gin.Context) {
	isWeb := h.isWeb(c)

	var refreshToken string
	if isWeb {
		cookie, err := c.Cookie(RefreshTokenCookie)
		if err != nil || cookie == "" {
			apicontext.WriteError(c, autherrors.ErrMissingRefreshToken)
			return
		}
		refreshToken = cookie
	} else {
		var req RefreshRequest
		if !apicontext.BindJSON(c, &req) {
			return
		}
		refreshToken = req.RefreshToken
	}

	pair, userResp, err := h.service.Refresh(c.Request.Context(), refreshToken)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}

	if isWeb {
		h.setTokenCookies(c, pair)
	}

	response.Success(c, http.StatusOK, LoginResponse{
		User:         userResp,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    pair.AccessExpiresAt,
	}, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	h.clearCookie(c, middleware.AccessTokenCookie)
	h.clearCookie(c, RefreshTokenCookie)
	response.SuccessWithMessage(c, http.StatusOK, nil, "Logged out")
}

func (h *Handler) Me(c *gin.Context, ac *apicontext.ApiContext) {
	resp, err := h.service.Me(c.Request.Context(), ac.User.ID)
	if err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ChangePassword(c *gin.Context, ac *apicontext.ApiContext) {
	var req ChangePasswordRequest
	if !apicontext.BindJSON(c, &req) {
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), ac.User.ID, req); err != nil {
		apicontext.WriteError(c, err)
		return
	}
	response.SuccessWithMessage(c, http.StatusOK, nil, "Password updated")
}

func (h *Handler) isWeb(c *gin.Context) bool {
	return platform.IsWebClient(platform.ResolveClientType(c.GetHeader(ClientTypeHeader), c.GetHeader("User-Agent")))
}

func (h *Handler) setTokenCookies(c *gin.Context, pair TokenPair) {
	h.setCookie(c, middleware.AccessTokenCookie, pair.AccessToken, pair.AccessExpiresAt)
	h.setCookie(c, RefreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresAt)
}

func (h *Handler) setCookie(c *gin.Context, name, value string, expiresAt time.Time) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) clearCookie(c *gin.Context, name string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
