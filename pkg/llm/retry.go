package llm

import (
	"context"
	"errors"
	"strings"
	"time"

	"device-assistant-ai/internal/pkg/logger"

	"github.com/cenkalti/backoff/v4"
)

// RetryPolicy is the single retry rule applied to every model call:
// MaxAttempts tries, waiting BaseDelay * Multiplier^n between them.
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Multiplier  float64
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 3, BaseDelay: time.Second, Multiplier: 2}
}

func (p RetryPolicy) backOff(ctx context.Context) backoff.BackOff {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	multiplier := p.Multiplier
	if multiplier < 1 {
		multiplier = 1
	}

	exp := backoff.NewExponentialBackOff()
	exp.InitialInterval = p.BaseDelay
	exp.Multiplier = multiplier
	exp.RandomizationFactor = 0
	exp.MaxInterval = time.Duration(1<<62 - 1)
	exp.MaxElapsedTime = 0

	return backoff.WithContext(backoff.WithMaxRetries(exp, uint64(attempts-1)), ctx)
}

// Do runs call under the policy. Empty output counts as a failed attempt.
// When every attempt came back empty the result is ("", nil); when the last
// attempt errored that error is returned.
func (p RetryPolicy) Do(ctx context.Context, call func(context.Context) (string, error), notify func(attempt int, err error)) (string, error) {
	var out string
	attempt := 0

	op := func() error {
		attempt++
		text, err := call(ctx)
		if err != nil {
			return err
		}
		if strings.TrimSpace(text) == "" {
			return ErrEmptyResponse
		}
		out = text
		return nil
	}

	var onRetry backoff.Notify
	if notify != nil {
		onRetry = func(err error, _ time.Duration) { notify(attempt, err) }
	}

	err := backoff.RetryNotify(op, p.backOff(ctx), onRetry)
	switch {
	case err == nil:
		return out, nil
	case errors.Is(err, ErrEmptyResponse):
		return "", nil
	default:
		return "", err
	}
}

// ResilientProvider applies a RetryPolicy to every call of the wrapped provider.
type ResilientProvider struct {
	inner    LLMProvider
	policy   RetryPolicy
	defaults []Option
	logger   logger.ILogger
}

var _ LLMProvider = &ResilientProvider{}

func NewResilientProvider(inner LLMProvider, policy RetryPolicy, log logger.ILogger) *ResilientProvider {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &ResilientProvider{inner: inner, policy: policy, logger: log}
}

// WithDefaultOptions sets options applied before the per-call ones.
func (r *ResilientProvider) WithDefaultOptions(opts ...Option) *ResilientProvider {
	r.defaults = opts
	return r
}

func (r *ResilientProvider) options(opts []Option) []Option {
	if len(r.defaults) == 0 {
		return opts
	}
	merged := make([]Option, 0, len(r.defaults)+len(opts))
	merged = append(merged, r.defaults...)
	return append(merged, opts...)
}

func (r *ResilientProvider) Chat(ctx context.Context, history []Message, opts ...Option) (string, error) {
	opts = r.options(opts)
	return r.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return r.inner.Chat(ctx, history, opts...)
	}, r.logRetry)
}

func (r *ResilientProvider) Generate(ctx context.Context, prompt string, opts ...Option) (string, error) {
	opts = r.options(opts)
	return r.policy.Do(ctx, func(ctx context.Context) (string, error) {
		return r.inner.Generate(ctx, prompt, opts...)
	}, r.logRetry)
}

func (r *ResilientProvider) logRetry(attempt int, err error) {
	r.logger.Warn("LLM", "model call failed, retrying", map[string]interface{}{
		"attempt": attempt,
		"max":     r.policy.MaxAttempts,
		"error":   err.Error(),
	})
}
