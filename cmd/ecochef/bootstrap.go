package main

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/rushteam/ecochef/config"
	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/corpus"
	"github.com/rushteam/ecochef/engine"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/pkg/logs"
	"github.com/rushteam/ecochef/recall"
	"github.com/rushteam/ecochef/store"
)

type app struct {
	engine *engine.Engine
	store  core.KeyValueStore
}

func (a *app) Close() error {
	return a.store.Close()
}

// bootstrap 按配置打开存储、加载语料与可选的内容后处理链，并构建 Engine。
func bootstrap(ctx context.Context, cfg *config.App, logOut io.Writer) (*app, error) {
	logCfg := cfg.Log
	if logCfg.Output == nil {
		logCfg.Output = logOut
	}
	logger := logs.New(logCfg)

	c, err := corpus.Load(cfg.Corpus.Path)
	if err != nil {
		return nil, err
	}

	opts := []engine.Option{
		engine.WithLogger(logger),
		engine.WithConfig(cfg.Recommend),
		engine.WithDedup(cfg.Recommend.Dedup),
	}
	if cfg.Pipeline != "" {
		pc, err := pipeline.LoadFromYAML(cfg.Pipeline)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		p, err := config.BuildPipeline(pc)
		if err != nil {
			return nil, fmt.Errorf("pipeline: %w", err)
		}
		opts = append(opts, engine.WithContentNodes(p.Nodes...))
	}

	kv, err := openStore(ctx, cfg.Store, logger)
	if err != nil {
		return nil, err
	}
	adapter := recall.NewStoreInteractionAdapter(kv, cfg.Store.KeyPrefix)

	e, err := engine.New(c, adapter, adapter, opts...)
	if err != nil {
		_ = kv.Close()
		return nil, err
	}
	logger.Debug().
		Str("backend", kv.Name()).
		Int("recipes", c.Len()).
		Msg("ecochef started")
	return &app{engine: e, store: kv}, nil
}

func openStore(ctx context.Context, cfg config.StoreConfig, logger zerolog.Logger) (core.KeyValueStore, error) {
	var (
		kv  core.KeyValueStore
		err error
	)
	switch cfg.Backend {
	case config.BackendMemory:
		kv = store.NewMemoryStore()
	case config.BackendBadger:
		kv, err = store.OpenBadgerStore(cfg.Badger)
	case config.BackendRedis:
		kv, err = store.NewRedisStore(ctx, cfg.Redis)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
	if err != nil {
		return nil, err
	}
	if cfg.BreakerEnabled {
		kv = store.NewBreakerStore(kv, cfg.Breaker, logger)
	}
	return kv, nil
}
