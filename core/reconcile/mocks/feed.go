package mocks

import (
	"context"
	"time"

	"calendar-sync/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Feed is a mock implementation of reconcile.Feed
type Feed struct {
	mock.Mock
}

func (m *Feed) Fetch(ctx context.Context, windowStart, windowEnd time.Time, loc *time.Location) ([]reconcile.SourceEvent, error) {
	args := m.Called(ctx, windowStart, windowEnd, loc)
	if events, ok := args.Get(0).([]reconcile.SourceEvent); ok {
		return events, args.Error(1)
	}
	return nil, args.Error(1)
}
