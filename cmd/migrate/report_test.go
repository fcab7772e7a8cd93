package main

import (
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func TestCollectReport(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "pdf_chunk"`).WillReturnRows(countRows(12))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "pdf_chunk" WHERE embedding IS NOT NULL`).WillReturnRows(countRows(10))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "pdf_image"`).WillReturnRows(countRows(3))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "pdf_image" WHERE`).WillReturnRows(countRows(1))
	mock.ExpectQuery(`SELECT \* FROM "pdf_image" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "metadata"}).
			AddRow(7, []byte(`{"bbox":[0,0,10,10],"alt_text":"power port"}`)).
			AddRow(8, []byte(`{`)))

	r, err := collectReport(db)

	require.NoError(t, err)
	assert.Equal(t, int64(12), r.Chunks)
	assert.Equal(t, int64(10), r.Embedded)
	assert.Equal(t, int64(3), r.Images)
	assert.Equal(t, int64(1), r.WithAlt)
	require.Len(t, r.Samples, 2)
	assert.Equal(t, "power port", r.Samples[0].Meta.AltText)
	assert.Error(t, r.Samples[1].Err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollectReport_QueryErrorIsReturned(t *testing.T) {
	db, mock := newMockDB(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "pdf_chunk"`).WillReturnError(errors.New(`relation "pdf_chunk" does not exist`))

	r, err := collectReport(db)

	assert.Nil(t, r)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "count chunks")
}

func TestCollectReport_SampleErrorIsReturned(t *testing.T) {
	db, mock := newMockDB(t)

	for i := 0; i < 4; i++ {
		mock.ExpectQuery(`SELECT count\(\*\)`).WillReturnRows(countRows(0))
	}
	mock.ExpectQuery(`FROM "pdf_image"`).WillReturnError(errors.New("operator does not exist: json ? unknown"))

	_, err := collectReport(db)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample images")
}
