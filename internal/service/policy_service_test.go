package service

import (
	"context"
	"errors"
	"testing"

	"campus-access-gateway/internal/core/domain"
	"campus-access-gateway/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPolicyService_Lookup(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPolicyRepository(ctrl)
	svc := NewPolicyService(repo, domain.DefaultPolicySet(), zerolog.Nop())
	ctx := context.Background()

	t.Run("store hit", func(t *testing.T) {
		stored := &domain.Policy{Service: "mess", Cost: 7500, RequiresPayment: true}
		repo.EXPECT().GetByService(ctx, "mess").Return(stored, nil)

		p, err := svc.Lookup(ctx, "mess")
		require.NoError(t, err)
		assert.Equal(t, int64(7500), p.Cost)
	})

	t.Run("absent from healthy store stays absent", func(t *testing.T) {
		// "mess" exists in the fallback, but the store answered
		// authoritatively: no fallback substitution.
		repo.EXPECT().GetByService(ctx, "mess").Return(nil, nil)

		p, err := svc.Lookup(ctx, "mess")
		require.NoError(t, err)
		assert.Nil(t, p)
	})

	t.Run("store error falls back to defaults", func(t *testing.T) {
		repo.EXPECT().GetByService(ctx, "mess").Return(nil, errors.New("connection refused"))

		p, err := svc.Lookup(ctx, "mess")
		require.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, int64(5000), p.Cost)
	})

	t.Run("store error with unknown service", func(t *testing.T) {
		repo.EXPECT().GetByService(ctx, "parking").Return(nil, errors.New("connection refused"))

		p, err := svc.Lookup(ctx, "parking")
		require.NoError(t, err)
		assert.Nil(t, p)
	})
}

func TestPolicyService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := mocks.NewMockPolicyRepository(ctrl)
	svc := NewPolicyService(repo, domain.DefaultPolicySet(), zerolog.Nop())
	ctx := context.Background()

	t.Run("store hit", func(t *testing.T) {
		stored := []domain.Policy{{Service: "mess", Cost: 5000, RequiresPayment: true}}
		repo.EXPECT().List(ctx).Return(stored, nil)

		policies, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, policies, 1)
	})

	t.Run("store error lists fallback", func(t *testing.T) {
		repo.EXPECT().List(ctx).Return(nil, errors.New("connection refused"))

		policies, err := svc.List(ctx)
		require.NoError(t, err)
		assert.Len(t, policies, 4)
	})
}
