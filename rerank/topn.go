package rerank

import (
	"context"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/pipeline"
)

// TopNNode 是一个 Top-N 截断节点，保留前 N 个物品。
// 用于内容召回之后限制结果数量，以及混合合并后的最终截断。
//
// 示例：
//
//	p := &pipeline.Pipeline{
//	    Nodes: []pipeline.Node{
//	        contentRecall,
//	        &filter.FilterNode{Filters: []filter.Filter{filter.NewDietaryFilter("")}},
//	        &rerank.TopNNode{N: 10},
//	    },
//	}
type TopNNode struct {
	// N 要保留的物品数量
	// N <= 0 时不截断；N > len(items) 时返回全部
	N int
}

func (n *TopNNode) Name() string {
	return "rerank.topn"
}

func (n *TopNNode) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *TopNNode) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if n.N <= 0 || len(items) <= n.N {
		return items, nil
	}
	return items[:n.N], nil
}
