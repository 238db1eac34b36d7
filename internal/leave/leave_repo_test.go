package leave

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestRepository_WithTxRunsOnTransaction(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{
		Logger: logger.Discard,
	})
	assert.NoError(t, err)

	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)

	qtx, ok := NewRepository(gdb).WithTx(tx).(*repository)
	assert.True(t, ok)
	assert.Same(t, tx, qtx.db.Statement.ConnPool)

	// The transaction connection must survive chained query building.
	mock.ExpectQuery(`SELECT .* FROM "leave_requests"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	_, err = qtx.FindAll(context.Background())
	assert.NoError(t, err)

	mock.ExpectRollback()
	assert.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}
