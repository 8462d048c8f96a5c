package core

import "github.com/rushteam/ecochef/pkg/utils"

// LabelRecallSource 是记录召回来源的 Label key，值为 SourceContentBased / SourceCollaborative。
const LabelRecallSource = "recall_source"

// LabelMergedSources 记录去重时被合并的全部召回来源，值形如 "Content-Based|Collaborative"。
// recall_source 始终保留首个来源。
const LabelMergedSources = "merged_sources"

// Item 是推荐链路中的统一承载结构：菜谱、分数、元信息、标签。
// ID 即菜谱标题；Labels 用于解释与来源标记；Score 用于排序决策。
type Item struct {
	ID     string
	Score  float64
	Recipe *Recipe
	Meta   map[string]any
	Labels map[string]utils.Label
}

func NewItem(id string) *Item {
	return &Item{
		ID:     id,
		Score:  0,
		Meta:   make(map[string]any),
		Labels: make(map[string]utils.Label),
	}
}

// NewRecipeItem 基于语料库中的菜谱创建 Item。
func NewRecipeItem(r *Recipe) *Item {
	it := NewItem(r.Title)
	it.Recipe = r
	return it
}

// PutLabel 写入 Label；若已存在同名 key，则按默认 Merge 规则累积。
func (it *Item) PutLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	if old, ok := it.Labels[key]; ok {
		it.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	it.Labels[key] = lbl
}

// SetLabel 覆盖写入 Label，不做合并。
func (it *Item) SetLabel(key string, lbl utils.Label) {
	if it.Labels == nil {
		it.Labels = make(map[string]utils.Label)
	}
	it.Labels[key] = lbl
}

// Source 返回召回来源（recall_source label 的值）。
func (it *Item) Source() string {
	if it == nil || it.Labels == nil {
		return ""
	}
	return it.Labels[LabelRecallSource].Value
}

// Clone 返回浅拷贝：Recipe 共享（只读），Meta / Labels 独立。
func (it *Item) Clone() *Item {
	out := &Item{
		ID:     it.ID,
		Score:  it.Score,
		Recipe: it.Recipe,
		Meta:   make(map[string]any, len(it.Meta)),
		Labels: make(map[string]utils.Label, len(it.Labels)),
	}
	for k, v := range it.Meta {
		out.Meta[k] = v
	}
	for k, v := range it.Labels {
		out.Labels[k] = v
	}
	return out
}

// Result 转换为对上层暴露的 RecipeResult。
func (it *Item) Result() RecipeResult {
	return NewRecipeResult(it.Recipe, it.Source())
}
