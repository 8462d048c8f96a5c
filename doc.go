// Package ecochef 是一个混合菜谱推荐引擎。
//
// 设计要点：
// - 内容召回：食材文本 → TF-IDF 向量 → 余弦相似度 TopN → 饮食标签过滤
// - 协同召回：偏好/评分 → 用户×菜谱矩阵 → 余弦近邻 → 近邻高分且用户未接触过的菜谱
// - 混合合并：内容 3 条 + 协同 2 条，截断到 5 条，每条标记来源
// - Pipeline-first: 内容分支由 Node 串联，后处理节点可由配置驱动
package ecochef

import (
	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/engine"
	"github.com/rushteam/ecochef/pipeline"
)

// 轻量 facade：便于直接 import "ecochef" 使用核心抽象。
type (
	Engine       = engine.Engine
	Option       = engine.Option
	RecipeResult = core.RecipeResult
	Pipeline     = pipeline.Pipeline
	Node         = pipeline.Node
	Kind         = pipeline.Kind
)

const (
	KindRecall = pipeline.KindRecall
	KindFilter = pipeline.KindFilter
	KindReRank = pipeline.KindReRank
)

// 推荐来源。
const (
	SourceContentBased  = core.SourceContentBased
	SourceCollaborative = core.SourceCollaborative
)

// New 等价于 engine.New。
var New = engine.New
