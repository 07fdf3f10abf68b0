package postgres

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func policyColumns() []string {
	return []string{"service_type", "cost", "requires_payment"}
}

func TestPolicyRepo_GetByService_NormalizesName(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPolicyRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM policies WHERE service_type").
		WithArgs("mess").
		WillReturnRows(pgxmock.NewRows(policyColumns()).AddRow("mess", int64(5000), true))

	// Mixed-case input is lowercased before hitting the store.
	p, err := repo.GetByService(context.Background(), " MESS ")
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, int64(5000), p.Cost)
	assert.True(t, p.RequiresPayment)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyRepo_GetByService_Unknown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPolicyRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM policies WHERE service_type").
		WithArgs("skydiving").
		WillReturnRows(pgxmock.NewRows(policyColumns()))

	p, err := repo.GetByService(context.Background(), "skydiving")
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPolicyRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewPolicyRepo(mock)

	rows := pgxmock.NewRows(policyColumns()).
		AddRow("attendance", int64(0), false).
		AddRow("mess", int64(5000), true)

	mock.ExpectQuery("SELECT .+ FROM policies ORDER BY service_type").
		WillReturnRows(rows)

	policies, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, policies, 2)
	assert.Equal(t, "attendance", policies[0].Service)
	assert.NoError(t, mock.ExpectationsWereMet())
}
