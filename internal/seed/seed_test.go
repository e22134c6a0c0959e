package seed

import (
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock, func()) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock, func() { sqlDB.Close() }
}

func TestRunWithoutSeedFileIsNoop(t *testing.T) {
	db, _, cleanup := newMockDB(t)
	defer cleanup()

	assert.NoError(t, Run(db, "", zap.NewNop()))
}

func TestRunSkipsPopulatedCatalog(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "teachers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	assert.NoError(t, Run(db, "does-not-matter.json", zap.NewNop()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRunMissingFileFails(t *testing.T) {
	db, mock, cleanup := newMockDB(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT count\(\*\) FROM "teachers"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	assert.Error(t, Run(db, "no/such/file.json", zap.NewNop()))
}
