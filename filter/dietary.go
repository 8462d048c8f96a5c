package filter

import (
	"context"
	"strings"

	"github.com/rushteam/ecochef/core"
)

// DietaryFilter 按饮食标签过滤：菜谱的标签集合中没有与目标标签相等（忽略大小写、精确匹配）的标签时移除。
// Tag 为空时使用 rctx.Dietary；两者都为空表示不过滤。
//
// 过滤发生在内容召回的 TopN 截取之后，因此结果可能少于 TopN。
type DietaryFilter struct {
	Tag string
}

// NewDietaryFilter 创建饮食标签过滤器。
func NewDietaryFilter(tag string) *DietaryFilter {
	return &DietaryFilter{Tag: tag}
}

func (f *DietaryFilter) Name() string {
	return "filter.dietary"
}

func (f *DietaryFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	tag := f.Tag
	if tag == "" && rctx != nil {
		tag = rctx.Dietary
	}
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return false, nil
	}
	if item == nil || item.Recipe == nil {
		return true, nil
	}
	return !HasDietaryTag(item.Recipe, tag), nil
}

// HasDietaryTag 判断菜谱是否带有指定饮食标签（忽略大小写、精确匹配）。
func HasDietaryTag(r *core.Recipe, tag string) bool {
	for _, t := range r.DietaryTags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}
