package postgres

import (
	"context"
	"errors"
	"testing"

	"campus-access-gateway/internal/core/domain"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func identityColumns() []string {
	return []string{"id", "name", "roll_no", "card_uid", "wallet_balance", "status"}
}

func identityRow(i *domain.Identity) *pgxmock.Rows {
	return pgxmock.NewRows(identityColumns()).AddRow(
		i.ID, i.Name, i.RollNo, i.CardUID, i.WalletBalance, i.Status,
	)
}

func demoIdentity() *domain.Identity {
	return &domain.Identity{
		ID:            1,
		Name:          "Yasharth Singh",
		RollNo:        "ROLL001",
		CardUID:       "RFID_001",
		WalletBalance: 50000,
		Status:        domain.IdentityStatusActive,
	}
}

func TestIdentityRepo_GetByCardUID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdentityRepo(mock)
	id := demoIdentity()

	mock.ExpectQuery("SELECT .+ FROM identities WHERE card_uid").
		WithArgs("RFID_001").
		WillReturnRows(identityRow(id))

	result, err := repo.GetByCardUID(context.Background(), "RFID_001")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, id.Name, result.Name)
	assert.Equal(t, int64(50000), result.WalletBalance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityRepo_GetByCardUID_Unknown(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdentityRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM identities WHERE card_uid").
		WithArgs("RFID_999").
		WillReturnRows(pgxmock.NewRows(identityColumns()))

	// Unknown card is nil, nil: an expected outcome, not an error.
	result, err := repo.GetByCardUID(context.Background(), "RFID_999")
	require.NoError(t, err)
	assert.Nil(t, result)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityRepo_GetByCardUID_StoreError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdentityRepo(mock)

	mock.ExpectQuery("SELECT .+ FROM identities WHERE card_uid").
		WithArgs("RFID_001").
		WillReturnError(errors.New("connection refused"))

	_, err = repo.GetByCardUID(context.Background(), "RFID_001")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestIdentityRepo_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewIdentityRepo(mock)

	rows := pgxmock.NewRows(identityColumns()).
		AddRow(int64(1), "Yasharth Singh", "ROLL001", "RFID_001", int64(50000), domain.IdentityStatusActive).
		AddRow(int64(2), "Mohammad Ali", "ROLL002", "RFID_002", int64(30000), domain.IdentityStatusActive)

	mock.ExpectQuery("SELECT .+ FROM identities ORDER BY id").
		WillReturnRows(rows)

	identities, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, identities, 2)
	assert.Equal(t, "RFID_002", identities[1].CardUID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
