package serverutils

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/sync/semaphore"
)

var ErrServerBusy = errors.New("server busy, try again later")

// ConcurrencyLimiter caps the number of RPCs executing at once. Waiting
// callers give up when their request context ends.
type ConcurrencyLimiter struct {
	sem  *semaphore.Weighted
	size int64
}

func NewConcurrencyLimiter(size int) *ConcurrencyLimiter {
	if size < 1 {
		size = 1
	}
	return &ConcurrencyLimiter{sem: semaphore.NewWeighted(int64(size)), size: int64(size)}
}

func (l *ConcurrencyLimiter) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if err := l.sem.Acquire(ctx.UserContext(), 1); err != nil {
			return ErrServerBusy
		}
		defer l.sem.Release(1)
		return ctx.Next()
	}
}

// RequestTimeout bounds the user context of every request.
func RequestTimeout(d time.Duration) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if d <= 0 {
			return ctx.Next()
		}
		c, cancel := context.WithTimeout(ctx.UserContext(), d)
		defer cancel()
		ctx.SetUserContext(c)
		return ctx.Next()
	}
}
