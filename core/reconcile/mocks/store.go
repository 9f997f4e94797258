package mocks

import (
	"context"

	"calendar-sync/core/reconcile"

	"github.com/stretchr/testify/mock"
)

// Store is a mock implementation of reconcile.Store
type Store struct {
	mock.Mock
}

func (m *Store) ListManaged(ctx context.Context, title string) ([]reconcile.DestinationRecord, error) {
	args := m.Called(ctx, title)
	if records, ok := args.Get(0).([]reconcile.DestinationRecord); ok {
		return records, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Store) Create(ctx context.Context, rec reconcile.DestinationRecord) (reconcile.DestinationRecord, error) {
	args := m.Called(ctx, rec)
	if created, ok := args.Get(0).(reconcile.DestinationRecord); ok {
		return created, args.Error(1)
	}
	return reconcile.DestinationRecord{}, args.Error(1)
}

func (m *Store) Update(ctx context.Context, rec reconcile.DestinationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}

func (m *Store) Delete(ctx context.Context, rec reconcile.DestinationRecord) error {
	args := m.Called(ctx, rec)
	return args.Error(0)
}
