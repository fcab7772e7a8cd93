package implementation

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeviceCatalog_Describe(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT d\.id AS id, d\.label AS label, b\.label AS brand_label, dt\.label AS type_label FROM device AS d LEFT JOIN brand AS b .* LEFT JOIN device_type AS dt .* WHERE d\.id = `).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "brand_label", "type_label"}).
			AddRow(3, "X1", "Acme", "Router"))

	desc, err := NewDeviceCatalog(db).Describe(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, "Acme Router X1", desc)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeviceCatalog_UnknownDevice(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM device AS d`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "brand_label", "type_label"}))

	catalog := NewDeviceCatalog(db)
	device, err := catalog.FindById(context.Background(), 99)

	require.NoError(t, err)
	assert.Nil(t, device)
}

func TestDeviceCatalog_NullBrand(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`FROM device AS d`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "label", "brand_label", "type_label"}).
			AddRow(5, "T9", nil, "Thermostat"))

	desc, err := NewDeviceCatalog(db).Describe(context.Background(), 5)

	require.NoError(t, err)
	assert.Equal(t, "Thermostat T9", desc)
}
