package apicontext

import (
	"errors"
	"math"
	"net/url"
	"strconv"
	"strings"

	"go-ems/internal/domain"
	"go-ems/internal/shared/apperror"
	"go-ems/internal/shared/contextutil"
	"go-ems/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MinLimit     = 1
	MaxLimit     = 100

	// MaxPage keeps (page-1)*limit inside an int32 offset.
	MaxPage = math.MaxInt32 / MaxLimit

	SortAsc  = "asc"
	SortDesc = "desc"
)

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

type Search struct {
	Term      string `json:"search"`
	SortBy    string `json:"sortBy"`
	SortOrder string `json:"sortOrder"`
}

// ApiContext is everything a handler body needs about the caller and the
// common query parameters. It is passed explicitly, never looked up.
type ApiContext struct {
	Session    domain.Session
	User       domain.SessionUser
	Pagination Pagination
	Search     Search
	// Query holds the parsed query string; empty when the raw query was
	// malformed.
	Query url.Values
}

func (ac *ApiContext) IsPrivileged() bool {
	return ac.User.Role.IsPrivileged()
}

func (ac *ApiContext) Meta(total int64) *response.PaginationMeta {
	meta := response.NewPaginationMeta(total, ac.Pagination.Page, ac.Pagination.Limit)
	return &meta
}

type HandlerFunc func(c *gin.Context, ac *ApiContext)

// FeatureChecker is satisfied by the rbac service.
type FeatureChecker interface {
	Allowed(role domain.Role, feature string) bool
}

// Build resolves the session set by the auth middleware and parses
// pagination and search parameters.
func Build(c *gin.Context) (*ApiContext, error) {
	raw, ok := c.Get(domain.SessionKey)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}
	session, ok := raw.(domain.Session)
	if !ok {
		return nil, apperror.ErrUnauthorized
	}

	values, err := url.ParseQuery(c.Request.URL.RawQuery)
	if err != nil {
		contextutil.GetLogger(c.Request.Context(), zap.L()).Warn("malformed query string, using defaults",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		values = url.Values{}
	}

	return &ApiContext{
		Session:    session,
		User:       session.User,
		Pagination: ParsePagination(values),
		Search:     ParseSearch(values),
		Query:      values,
	}, nil
}

func ParsePagination(values url.Values) Pagination {
	page := DefaultPage
	v, err := strconv.Atoi(strings.TrimSpace(values.Get("page")))
	if (err == nil || errors.Is(err, strconv.ErrRange)) && v >= 1 {
		page = min(v, MaxPage)
	}

	limit := DefaultLimit
	if v, err := strconv.Atoi(strings.TrimSpace(values.Get("limit"))); err == nil {
		limit = v
	}
	if limit < MinLimit {
		limit = MinLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	return Pagination{Page: page, Limit: limit}
}

func ParseSearch(values url.Values) Search {
	order := strings.ToLower(strings.TrimSpace(values.Get("sortOrder")))
	if order != SortAsc {
		order = SortDesc
	}
	return Search{
		Term:      strings.TrimSpace(values.Get("search")),
		SortBy:    strings.TrimSpace(values.Get("sortBy")),
		SortOrder: order,
	}
}

// Handle builds the context and runs fn; a missing session ends in 401.
func Handle(fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		ac, err := Build(c)
		if err != nil {
			WriteError(c, err)
			return
		}
		fn(c, ac)
	}
}

// WithRoleGuard gates fn on role membership: 401 without a session, 403 with
// a reason when the role is not in allowed.
func WithRoleGuard(allowed []domain.Role, fn HandlerFunc) gin.HandlerFunc {
	return Handle(func(c *gin.Context, ac *ApiContext) {
		for _, r := range allowed {
			if ac.User.Role == r {
				fn(c, ac)
				return
			}
		}
		WriteError(c, apperror.Forbidden(forbiddenReason(ac.User.Role, allowed)))
	})
}

// WithFeatureGuard gates fn on the rbac decision for feature.
func WithFeatureGuard[F ~string](checker FeatureChecker, feature F, fn HandlerFunc) gin.HandlerFunc {
	return Handle(func(c *gin.Context, ac *ApiContext) {
		if !checker.Allowed(ac.User.Role, string(feature)) {
			WriteError(c, apperror.Forbidden("Role "+string(ac.User.Role)+" cannot access "+string(feature)))
			return
		}
		fn(c, ac)
	})
}

// WriteError renders err through the error envelope. Server-side failures
// are logged with request context; the client only sees a generic message.
func WriteError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	logger := contextutil.GetLogger(c.Request.Context(), zap.L())
	fields := []zap.Field{
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	}
	if apperror.IsInternal(err) {
		logger.Error("request failed", append(fields, zap.Error(err))...)
	} else {
		logger.Warn("request rejected", append(fields, zap.String("message", httpErr.Message))...)
	}
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// BindJSON binds and validates the body, writing a 400 with field details on
// failure. It returns false when the handler should stop.
func BindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		WriteError(c, apperror.MapValidationError(err))
		return false
	}
	return true
}

func forbiddenReason(role domain.Role, allowed []domain.Role) string {
	names := make([]string, len(allowed))
	for i, r := range allowed {
		names[i] = string(r)
	}
	return "Role " + string(role) + " is not allowed, requires one of: " + strings.Join(names, ", ")
}
