package pipeline

import (
	"context"

	"github.com/rushteam/ecochef/core"
)

// Kind 用于标记 Node 类型，方便观测与编排（例如按阶段打点）。
type Kind string

const (
	KindRecall Kind = "recall" // 召回阶段：内容召回 / 协同召回
	KindFilter Kind = "filter" // 过滤阶段：饮食约束、表达式过滤
	KindReRank Kind = "rerank" // 重排阶段：混合合并、TopN 截断
)

// Node 是 Pipeline 的最小可扩展单元。
// 统一采用“输入 items -> 输出 items”的形态，召回生成、过滤剔除、截断都用同一种签名。
type Node interface {
	Name() string
	Kind() Kind

	Process(
		ctx context.Context,
		rctx *core.RecommendContext,
		items []*core.Item,
	) ([]*core.Item, error)
}

// NodeBuilder 根据配置构建 Node，供配置驱动的注册表使用。
type NodeBuilder func(map[string]any) (Node, error)
