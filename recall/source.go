package recall

import (
	"context"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/pipeline"
)

// Source 表示一个可复用的召回源（内容 / 协同 / ...）。
// 可以把它理解为“可并发 fan-out 的策略单元”。
type Source interface {
	Name() string
	Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error)
}

// PipelineSource 把一条 Pipeline 包装成 Source：从空输入开始依次执行各 Node。
// 用于把“召回 + 过滤 + 截断”组合成一个分支交给 Hybrid 并发执行。
type PipelineSource struct {
	SourceName string
	Pipeline   *pipeline.Pipeline
}

func (s *PipelineSource) Name() string {
	if s.SourceName == "" {
		return "recall.pipeline"
	}
	return s.SourceName
}

func (s *PipelineSource) Recall(ctx context.Context, rctx *core.RecommendContext) ([]*core.Item, error) {
	if s.Pipeline == nil {
		return nil, nil
	}
	return s.Pipeline.Run(ctx, rctx, nil)
}
