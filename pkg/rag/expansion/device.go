package expansion

import (
	"context"
	"fmt"
	"strings"

	"device-assistant-ai/internal/pkg/logger"
	"device-assistant-ai/internal/repository/contract"
)

type DeviceContextInjector struct {
	catalog contract.DeviceCatalog
	logger  logger.ILogger
}

func NewDeviceContextInjector(catalog contract.DeviceCatalog, log logger.ILogger) *DeviceContextInjector {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &DeviceContextInjector{catalog: catalog, logger: log}
}

// Inject prefixes the query with "[Info: <description>] ". Unknown devices
// and catalog failures leave the query untouched.
func (d *DeviceContextInjector) Inject(ctx context.Context, query string, deviceId int) string {
	if deviceId <= 0 {
		return query
	}
	desc, err := d.catalog.Describe(ctx, deviceId)
	if err != nil {
		d.logger.Error("DEVICE_CONTEXT", "device lookup failed", map[string]interface{}{
			"device_id": deviceId,
			"error":     err.Error(),
		})
		return query
	}
	desc = strings.TrimSpace(desc)
	if desc == "" {
		return query
	}
	return fmt.Sprintf("[Info: %s] %s", desc, query)
}
