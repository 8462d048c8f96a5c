package rerank

import (
	"context"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/pkg/utils"
)

// Dedup 按 key 去重，保留首个出现的物品。
// 保留者已有的 Label 不被覆盖（recall_source 仍是首个来源），缺失的 Label 从重复者补齐；
// 被合并的来源依次记录在 merged_sources 上。
// key 来源优先级：
//   - LabelKey 非空时取 label[LabelKey].Value
//   - 否则取 Item.ID（菜谱标题）
//
// 混合合并默认不去重；需要时在合并之后挂载该节点。
type Dedup struct {
	LabelKey string
}

func (n *Dedup) Name() string {
	return "rerank.dedup"
}

func (n *Dedup) Kind() pipeline.Kind {
	return pipeline.KindReRank
}

func (n *Dedup) Process(
	_ context.Context,
	_ *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	if len(items) == 0 {
		return items, nil
	}

	seen := make(map[string]*core.Item, len(items))
	out := make([]*core.Item, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}

		key := it.ID
		if n.LabelKey != "" {
			if lbl, ok := it.Labels[n.LabelKey]; ok {
				key = lbl.Value
			}
		}
		if key == "" {
			out = append(out, it)
			continue
		}
		if kept, ok := seen[key]; ok {
			mergeInto(kept, it)
			continue
		}
		seen[key] = it
		out = append(out, it)
	}
	return out, nil
}

func mergeInto(kept, dup *core.Item) {
	for k, v := range dup.Labels {
		if k == core.LabelRecallSource || k == core.LabelMergedSources {
			continue
		}
		if _, ok := kept.Labels[k]; !ok {
			kept.SetLabel(k, v)
		}
	}

	src := dup.Source()
	if src == "" {
		return
	}
	if _, ok := kept.Labels[core.LabelMergedSources]; !ok {
		if first := kept.Source(); first != "" {
			kept.SetLabel(core.LabelMergedSources, utils.NewLabel(first, "rerank.dedup"))
		}
	}
	kept.PutLabel(core.LabelMergedSources, utils.NewLabel(src, "rerank.dedup"))
}
