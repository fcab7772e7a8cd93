package memory

import (
	"context"
	"strconv"
	"time"

	"device-assistant-ai/internal/entity"
	"device-assistant-ai/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

// CachedDeviceCatalog memoizes device lookups. Device rows change rarely and
// every device-scoped query needs the description before anything else runs.
type CachedDeviceCatalog struct {
	inner contract.DeviceCatalog
	cache *cache.Cache
}

var _ contract.DeviceCatalog = &CachedDeviceCatalog{}

func NewCachedDeviceCatalog(inner contract.DeviceCatalog, ttl time.Duration) *CachedDeviceCatalog {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &CachedDeviceCatalog{
		inner: inner,
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (c *CachedDeviceCatalog) FindById(ctx context.Context, deviceId int) (*entity.Device, error) {
	key := strconv.Itoa(deviceId)
	if x, found := c.cache.Get(key); found {
		return x.(*entity.Device), nil
	}

	device, err := c.inner.FindById(ctx, deviceId)
	if err != nil {
		return nil, err
	}
	// unknown devices are cached too, as nil
	c.cache.Set(key, device, cache.DefaultExpiration)
	return device, nil
}

func (c *CachedDeviceCatalog) Describe(ctx context.Context, deviceId int) (string, error) {
	device, err := c.FindById(ctx, deviceId)
	if err != nil {
		return "", err
	}
	return device.Description(), nil
}

func (c *CachedDeviceCatalog) Invalidate(deviceId int) {
	c.cache.Delete(strconv.Itoa(deviceId))
}
