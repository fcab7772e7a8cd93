package implementation

import (
	"context"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/repository/contract"

	"gorm.io/gorm"
)

type DeviceCatalogImpl struct {
	db *gorm.DB
}

func NewDeviceCatalog(db *gorm.DB) contract.DeviceCatalog {
	return &DeviceCatalogImpl{db: db}
}

type deviceRow struct {
	Id         int
	Label      *string
	BrandLabel *string
	TypeLabel  *string
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// FindById returns nil, nil for an unknown device.
func (r *DeviceCatalogImpl) FindById(ctx context.Context, deviceId int) (*entity.Device, error) {
	var rows []deviceRow
	err := r.db.WithContext(ctx).
		Table("device AS d").
		Select("d.id AS id, d.label AS label, b.label AS brand_label, dt.label AS type_label").
		Joins("LEFT JOIN brand AS b ON d.brand_id = b.id").
		Joins("LEFT JOIN device_type AS dt ON d.device_type_id = dt.id").
		Where("d.id = ?", deviceId).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	row := rows[0]
	return &entity.Device{
		Id:         row.Id,
		Label:      deref(row.Label),
		BrandLabel: deref(row.BrandLabel),
		TypeLabel:  deref(row.TypeLabel),
	}, nil
}

func (r *DeviceCatalogImpl) Describe(ctx context.Context, deviceId int) (string, error) {
	device, err := r.FindById(ctx, deviceId)
	if err != nil {
		return "", err
	}
	return device.Description(), nil
}
