package contract

import (
	"context"

	"device-assistant-ai/internal/entity"
)

type DeviceCatalog interface {
	FindById(ctx context.Context, deviceId int) (*entity.Device, error)
	// Describe returns "" when the device is unknown.
	Describe(ctx context.Context, deviceId int) (string, error)
}
