package notification

import (
	"context"

	"go-ems/internal/shared/contextutil"

	"go.uber.org/zap"
)

// Dispatcher delivers notifications after the owning transaction has
// committed. It has no error return: delivery problems are logged and never
// reach the caller.
//
//go:generate mockgen -source=dispatcher.go -destination=mock/dispatcher_mock.go -package=mock
type Dispatcher interface {
	Dispatch(ctx context.Context, inputs ...Input)
}

type directDispatcher struct {
	repo   Repository
	logger *zap.Logger
}

// NewDirectDispatcher inserts notification rows in the request path.
func NewDirectDispatcher(repo Repository, logger ...*zap.Logger) Dispatcher {
	l := zap.L().Named("notification.dispatcher")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.dispatcher")
	}
	return &directDispatcher{repo: repo, logger: l}
}

func (d *directDispatcher) Dispatch(ctx context.Context, inputs ...Input) {
	if len(inputs) == 0 {
		return
	}

	ctx = contextutil.Detach(ctx)
	items := make([]Notification, len(inputs))
	for i, in := range inputs {
		items[i] = in.toEntity()
	}

	if err := d.repo.CreateBatch(ctx, items); err != nil {
		contextutil.GetLogger(ctx, d.logger).Error("failed to deliver notifications",
			zap.Int("count", len(items)),
			zap.String("type", string(inputs[0].Type)),
			zap.Error(err),
		)
		return
	}
	d.logger.Debug("notifications delivered", zap.Int("count", len(items)))
}

type nopDispatcher struct{}

// NopDispatcher drops everything.
func NopDispatcher() Dispatcher { return nopDispatcher{} }

func (nopDispatcher) Dispatch(context.Context, ...Input) {}
