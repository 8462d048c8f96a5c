package filter

import (
	"context"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/pkg/utils"
)

// LabelFiltered 记录 Item 被哪个过滤器移除。
const LabelFiltered = "filtered"

// FilterNode 是过滤 Node，可以组合多个过滤器进行过滤。
// 如果任何一个过滤器返回 true，该物品就会被过滤掉。
type FilterNode struct {
	Filters []Filter

	// OnError 过滤器返回错误时的回调（可选，用于日志），该过滤器的判定被忽略
	OnError func(f Filter, item *core.Item, err error)
}

func (n *FilterNode) Name() string {
	return "filter.node"
}

func (n *FilterNode) Kind() pipeline.Kind {
	return pipeline.KindFilter
}

func (n *FilterNode) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(n.Filters) == 0 || len(items) == 0 {
		return items, nil
	}

	out := make([]*core.Item, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}

		filterReason := ""
		for _, f := range n.Filters {
			ok, err := f.ShouldFilter(ctx, rctx, item)
			if err != nil {
				// 过滤器错误时记录但不中断流程
				if n.OnError != nil {
					n.OnError(f, item, err)
				}
				continue
			}
			if ok {
				filterReason = f.Name()
				break
			}
		}

		if filterReason != "" {
			item.PutLabel(LabelFiltered, utils.NewLabel("true", filterReason))
			continue
		}
		out = append(out, item)
	}

	return out, nil
}
