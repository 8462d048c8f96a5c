// Package engine 是推荐系统对上层暴露的入口。
//
// Engine 在启动时构建一次（TF-IDF 空间、语料库、两条召回分支），之后只读，
// 可在并发请求间无锁共享：
//
//	eng, err := engine.New(c, adapter, adapter, engine.WithLogger(logger))
//	results, err := eng.Recommend(ctx, "u1", "tomato, onion, garlic", "vegan")
//	err = eng.RecordLike(ctx, "u1", "Tomato Soup", true)
//	err = eng.RecordFeedback(ctx, "u1", "Tomato Soup", 5)
package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/corpus"
	"github.com/rushteam/ecochef/filter"
	"github.com/rushteam/ecochef/matrix"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/recall"
)

// 写入类型，用于指标与日志。
const (
	KindLike     = "like"
	KindFeedback = "feedback"
)

// Engine 组合内容分支与协同分支，并负责偏好/评分的写入。
type Engine struct {
	corpus  *corpus.Corpus
	prefs   core.PreferenceStore
	ratings core.RatingStore

	hybrid  *recall.Hybrid
	logger  zerolog.Logger
	metrics *Metrics
}

// New 构建 Engine。空语料返回错误，属于启动时致命错误。
func New(c *corpus.Corpus, prefs core.PreferenceStore, ratings core.RatingStore, opts ...Option) (*Engine, error) {
	if c == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: corpus is required")
	}
	if prefs == nil || ratings == nil {
		return nil, core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput, "engine: preference and rating stores are required")
	}

	o := &options{
		logger:  zerolog.Nop(),
		config:  &core.DefaultRecommendConfig{},
		builder: matrix.DenseBuilder{},
	}
	for _, opt := range opts {
		opt(o)
	}
	cfg := o.config

	content, err := recall.NewContentRecall(c, cfg.DefaultContentTopN())
	if err != nil {
		return nil, fmt.Errorf("build content recall: %w", err)
	}

	e := &Engine{
		corpus:  c,
		prefs:   prefs,
		ratings: ratings,
		logger:  o.logger,
		metrics: NewMetrics(o.registerer),
	}

	// 内容分支：召回 TopN -> 饮食过滤 -> 可选的配置节点
	dietary := &filter.FilterNode{
		Filters: []filter.Filter{filter.NewDietaryFilter("")},
		OnError: func(f filter.Filter, item *core.Item, err error) {
			e.logger.Warn().Err(err).Str("filter", f.Name()).Str("recipe", item.ID).Msg("filter error ignored")
		},
	}
	contentPipeline := (&pipeline.Pipeline{}).Append(content, dietary).Append(o.nodes...)

	e.hybrid = &recall.Hybrid{
		Content: &recall.PipelineSource{SourceName: "content", Pipeline: contentPipeline},
		Collaborative: &recall.UserBasedCF{
			Preferences: prefs,
			Ratings:     ratings,
			Builder:     o.builder,
			Resolver:    c,
			K:           cfg.DefaultNeighbors(),
			Threshold:   cfg.DefaultRatingThreshold(),
			TopKItems:   cfg.DefaultCollaborativeLimit(),
		},
		ContentSlots:       cfg.DefaultContentSlots(),
		CollaborativeSlots: cfg.DefaultCollaborativeSlots(),
		MaxResults:         cfg.DefaultMaxResults(),
		Dedup:              o.dedup,
	}

	e.logger.Debug().
		Int("recipes", c.Len()).
		Int("content_nodes", len(contentPipeline.Nodes)).
		Bool("dedup", o.dedup).
		Msg("engine ready")
	return e, nil
}

// Metrics 返回引擎指标。
func (e *Engine) Metrics() *Metrics { return e.metrics }

// Recommend 返回 0~5 条推荐：内容结果在前，协同结果在后，每条带来源。
// 协同分支失败只记录日志并降级；内容分支失败则整个请求失败。
func (e *Engine) Recommend(ctx context.Context, userID, ingredients, dietary string) ([]core.RecipeResult, error) {
	rctx := &core.RecommendContext{
		UserID:    userID,
		Query:     ingredients,
		Dietary:   strings.TrimSpace(dietary),
		RequestID: uuid.NewString(),
	}
	log := e.logger.With().
		Str("request_id", rctx.RequestID).
		Str("user_id", userID).
		Logger()

	// 每个请求一份浅拷贝，回调带上请求级 logger
	hybrid := *e.hybrid
	hybrid.OnCollaborativeError = func(err error) {
		e.metrics.CollaborativeDegraded.Inc()
		log.Warn().Err(err).Msg("collaborative recall degraded")
	}

	start := time.Now()
	items, err := hybrid.Process(ctx, rctx, nil)
	took := time.Since(start)
	e.metrics.Duration.Observe(took.Seconds())
	if err != nil {
		log.Error().Err(err).Msg("recommend failed")
		return nil, fmt.Errorf("recommend: %w", err)
	}

	results := lo.Map(items, func(it *core.Item, _ int) core.RecipeResult { return it.Result() })
	for source, n := range lo.CountValuesBy(results, func(r core.RecipeResult) string { return r.Source }) {
		e.metrics.Recommendations.WithLabelValues(source).Add(float64(n))
	}

	log.Info().
		Str("dietary", rctx.Dietary).
		Int("results", len(results)).
		Dur("took", took).
		Msg("recommend done")
	return results, nil
}

// RecordLike 记录喜欢/不喜欢（upsert）。菜谱不在语料中时返回 NOT_FOUND。
func (e *Engine) RecordLike(ctx context.Context, userID, title string, liked bool) error {
	err := e.recordLike(ctx, userID, title, liked)
	e.metrics.recordWrite(KindLike, err)
	e.logWrite(KindLike, userID, title, err)
	return err
}

func (e *Engine) recordLike(ctx context.Context, userID, title string, liked bool) error {
	p, err := core.NewPreference(userID, title, liked)
	if err != nil {
		return err
	}
	if err := e.requireRecipe(title); err != nil {
		return err
	}
	return e.prefs.UpsertPreference(ctx, p)
}

// RecordFeedback 记录评分（upsert）。评分校验先于任何查找与写入。
func (e *Engine) RecordFeedback(ctx context.Context, userID, title string, rating int) error {
	err := e.recordFeedback(ctx, userID, title, rating)
	e.metrics.recordWrite(KindFeedback, err)
	e.logWrite(KindFeedback, userID, title, err)
	return err
}

func (e *Engine) recordFeedback(ctx context.Context, userID, title string, rating int) error {
	r, err := core.NewRating(userID, title, rating)
	if err != nil {
		return err
	}
	if err := e.requireRecipe(title); err != nil {
		return err
	}
	return e.ratings.UpsertRating(ctx, r)
}

func (e *Engine) requireRecipe(title string) error {
	if e.corpus.Contains(title) {
		return nil
	}
	return core.NewDomainError(core.ModuleEngine, core.ErrorCodeNotFound, fmt.Sprintf("recipe %q not found", title))
}

func (e *Engine) logWrite(kind, userID, title string, err error) {
	level := zerolog.InfoLevel
	if err != nil {
		level = zerolog.WarnLevel
	}
	e.logger.WithLevel(level).Err(err).Str("kind", kind).Str("user_id", userID).Str("recipe", title).Str("result", writeResult(err)).Msg("interaction recorded")
}

func writeResult(err error) string {
	switch {
	case err == nil:
		return resultOK
	case core.IsInvalidInput(err):
		return resultInvalid
	case core.IsNotFound(err):
		return resultNotFound
	default:
		return resultError
	}
}
