package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/matrix"
	"github.com/rushteam/ecochef/pipeline"
)

// Option 配置 Engine。
type Option func(*options)

type options struct {
	logger     zerolog.Logger
	registerer prometheus.Registerer
	config     core.RecommendConfig
	builder    matrix.Builder
	nodes      []pipeline.Node
	dedup      bool
}

// WithLogger 设置日志，默认 zerolog.Nop()。
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer 设置指标注册器，默认使用独立的 Registry（不暴露）。
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// WithConfig 设置推荐参数，默认 core.DefaultRecommendConfig。
func WithConfig(cfg core.RecommendConfig) Option {
	return func(o *options) {
		if cfg != nil {
			o.config = cfg
		}
	}
}

// WithMatrixBuilder 替换偏好矩阵的构建实现。
func WithMatrixBuilder(b matrix.Builder) Option {
	return func(o *options) {
		if b != nil {
			o.builder = b
		}
	}
}

// WithContentNodes 在内容分支的饮食过滤之后追加 Node（例如配置驱动的 filter.expr）。
func WithContentNodes(nodes ...pipeline.Node) Option {
	return func(o *options) {
		o.nodes = append(o.nodes, nodes...)
	}
}

// WithDedup 合并时按标题跨来源去重。
func WithDedup(dedup bool) Option {
	return func(o *options) {
		o.dedup = dedup
	}
}
