package rbac

import (
	"go-ems/internal/domain"
	"go-ems/internal/rbac/infra"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	// Allowed checks a feature given by name. Unknown names are denied and
	// logged, they never fall through to allowed.
	Allowed(role domain.Role, feature string) bool
	Permissions(role domain.Role) []Feature
}

type service struct {
	enforcer *casbin.Enforcer
	logger   *zap.Logger
}

func NewService(enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

// NewDefaultService seeds an enforcer from the decision table.
func NewDefaultService(logger ...*zap.Logger) (Service, error) {
	enforcer, err := infra.NewEnforcer(Grants())
	if err != nil {
		return nil, err
	}
	return NewService(enforcer, logger...), nil
}

func (s *service) Allowed(role domain.Role, feature string) bool {
	f, ok := ParseFeature(feature)
	if !ok {
		s.logger.Warn("rbac check on unknown feature denied",
			zap.String("role", string(role)),
			zap.String("feature", feature),
		)
		return false
	}

	allowed, err := s.enforcer.Enforce(string(role), string(f))
	if err != nil {
		s.logger.Error("rbac enforce failed, using decision table",
			zap.String("role", string(role)),
			zap.String("feature", feature),
			zap.Error(err),
		)
		return CanAccess(role, f)
	}

	s.logger.Debug("rbac enforce result",
		zap.String("role", string(role)),
		zap.String("feature", feature),
		zap.Bool("allowed", allowed),
	)
	return allowed
}

func (s *service) Permissions(role domain.Role) []Feature {
	return FeaturesFor(role)
}
