package storage_test

import (
	"context"
	"errors"
	"testing"

	"foodwala-storefront/shop-svc/internal/storage"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresZoneRepository_ListZones(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectQuery("SELECT id, name, fee").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "fee"}).
			AddRow("gulshan", "Gulshan-e-Iqbal", "100.00").
			AddRow("dha", "DHA", "200.00"))

	zones, err := storage.NewPostgresZoneRepository(mockDB).ListZones(context.Background())

	require.NoError(t, err)
	require.Len(t, zones, 2)
	assert.Equal(t, "gulshan", zones[0].ID)
	assert.True(t, decimal.NewFromInt(200).Equal(zones[1].Fee))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresZoneRepository_ListZonesErrors(t *testing.T) {
	tests := []struct {
		name    string
		prepare func(mock sqlmock.Sqlmock)
	}{
		{
			name: "query_error",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id, name, fee").WillReturnError(errors.New("connection refused"))
			},
		},
		{
			name: "bad_fee",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT id, name, fee").
					WillReturnRows(sqlmock.NewRows([]string{"id", "name", "fee"}).AddRow("x", "X", "free"))
			},
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			mockDB, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer mockDB.Close()
			testCase.prepare(mock)

			_, err = storage.NewPostgresZoneRepository(mockDB).ListZones(context.Background())
			assert.Error(t, err)
		})
	}
}

func TestPostgresZoneRepository_EnsureSchema(t *testing.T) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer mockDB.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS delivery_zones").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, storage.NewPostgresZoneRepository(mockDB).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
