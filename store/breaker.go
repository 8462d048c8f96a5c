package store

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/rushteam/ecochef/core"
)

// BreakerConfig 是熔断配置，零值使用默认值。
type BreakerConfig struct {
	// MaxRequests 半开状态允许通过的请求数，默认 1
	MaxRequests uint32 `yaml:"max_requests" split_words:"true"`

	// Interval 闭合状态下清零计数的周期，默认 1 分钟
	Interval time.Duration `yaml:"interval"`

	// Timeout 打开状态持续多久后进入半开，默认 30 秒
	Timeout time.Duration `yaml:"timeout"`

	// ConsecutiveFailures 连续失败多少次后熔断，默认 5
	ConsecutiveFailures uint32 `yaml:"consecutive_failures" split_words:"true"`
}

func (c BreakerConfig) withDefaults() BreakerConfig {
	if c.MaxRequests == 0 {
		c.MaxRequests = 1
	}
	if c.Interval <= 0 {
		c.Interval = time.Minute
	}
	if c.Timeout <= 0 {
		c.Timeout = 30 * time.Second
	}
	if c.ConsecutiveFailures == 0 {
		c.ConsecutiveFailures = 5
	}
	return c
}

// BreakerStore 为任意 KeyValueStore 加上熔断。
// 只有后端故障计入失败；INVALID_INPUT 等业务错误与上下文取消不影响熔断状态。
// 熔断打开时直接返回 UNAVAILABLE，不再访问后端。
type BreakerStore struct {
	inner core.KeyValueStore
	cb    *gobreaker.CircuitBreaker[any]
}

// NewBreakerStore 包装 inner。
func NewBreakerStore(inner core.KeyValueStore, cfg BreakerConfig, logger zerolog.Logger) *BreakerStore {
	cfg = cfg.withDefaults()
	name := "store." + inner.Name()
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        name,
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("store circuit breaker state changed")
		},
	})
	return &BreakerStore{inner: inner, cb: cb}
}

// State 返回当前熔断状态。
func (b *BreakerStore) State() gobreaker.State {
	return b.cb.State()
}

func (b *BreakerStore) Name() string { return b.inner.Name() }

func (b *BreakerStore) HSet(ctx context.Context, key, field string, value []byte) error {
	_, err := b.call(func() (any, error) { return nil, b.inner.HSet(ctx, key, field, value) })
	return err
}

func (b *BreakerStore) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	v, err := b.call(func() (any, error) { return b.inner.HGetAll(ctx, key) })
	out, _ := v.(map[string][]byte)
	return out, err
}

func (b *BreakerStore) Close() error {
	return b.inner.Close()
}

// outcome 承载不计入熔断的业务错误（如 INVALID_INPUT），使其作为“成功”结果穿过熔断器。
type outcome struct {
	value any
	err   error
}

func (b *BreakerStore) call(fn func() (any, error)) (any, error) {
	res, err := b.cb.Execute(func() (any, error) {
		v, err := fn()
		if err != nil && !countsAsFailure(err) {
			return outcome{value: v, err: err}, nil
		}
		if err != nil {
			return nil, err
		}
		return outcome{value: v}, nil
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, core.NewStoreUnavailable(b.inner.Name(), err)
	}
	if err != nil {
		return nil, err
	}
	o := res.(outcome)
	return o.value, o.err
}

// countsAsFailure 只有后端不可用与未知错误计入失败；上下文取消由调用方引起，不计入。
func countsAsFailure(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if core.IsNotFound(err) || core.IsNotSupported(err) || core.IsInvalidInput(err) {
		return false
	}
	return true
}

var _ core.KeyValueStore = (*BreakerStore)(nil)
