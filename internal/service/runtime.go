package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Runtime carries settings shared by every service.
type Runtime struct {
	Logger       *zap.Logger
	Metrics      *MetricsService
	QueryTimeout time.Duration
}

func (r Runtime) normalise() Runtime {
	if r.Logger == nil {
		r.Logger = zap.NewNop()
	}
	return r
}

// query runs fn with the store deadline applied and records its duration under label.
func (r Runtime) query(ctx context.Context, label string, fn func(ctx context.Context) error) error {
	if r.QueryTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.QueryTimeout)
		defer cancel()
	}
	start := time.Now()
	err := fn(ctx)
	r.Metrics.ObserveDBQuery(label, time.Since(start))
	return err
}
