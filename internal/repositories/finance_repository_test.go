package repositories

import (
	"context"
	"regexp"
	"testing"

	"quarhire/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFinanceRepositoryListBuckets(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("bookings"))
	mock.ExpectQuery(regexp.QuoteMeta("pickup_date>=? AND pickup_date<=?")).
		WithArgs("2025-01-01", "2025-03-31").
		WillReturnRows(sqlmock.NewRows([]string{"status", "month", "vehicle_type", "count", "total"}).
			AddRow("paid", "2025-02", "sedan", 3, "2400.00").
			AddRow("pending", "2025-03", "suv", 1, "1200.50"))

	out, err := FinanceRepository{DB: db}.ListBuckets(context.Background(), "2025-01-01", "2025-03-31")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, models.StatusPaid, out[0].Status)
	assert.Equal(t, "2025-02", out[0].Month)
	assert.Equal(t, 3, out[0].Count)
	assert.Equal(t, "1200.5", out[1].Total.String())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFinanceRepositoryMissingTable(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WithArgs("bookings").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	out, err := FinanceRepository{DB: db}.ListBuckets(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, out)
}
