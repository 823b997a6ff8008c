package repositories

import (
	"context"
	"regexp"
	"testing"

	"quarhire/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDriverRepositoryDeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM drivers WHERE id=?")).
		WithArgs(int64(9)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = DriverRepository{DB: db}.Delete(context.Background(), 9)
	assert.True(t, domain.IsNotFound(err))
}

func TestDriverRepositoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(regexp.QuoteMeta("FROM drivers WHERE id=?")).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err = DriverRepository{DB: db}.GetByID(context.Background(), 3)
	assert.True(t, domain.IsNotFound(err))
}
