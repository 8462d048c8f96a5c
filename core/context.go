package core

import "github.com/rushteam/ecochef/pkg/utils"

// RecommendContext 承载一次推荐请求的用户与查询信息，贯穿整个 Pipeline 透传。
type RecommendContext struct {
	// UserID 由外部身份服务提供的已认证用户标识（不透明字符串）
	UserID string

	// Query 是用户输入的食材文本
	Query string

	// Dietary 是饮食约束标签（如 vegan / gluten-free），为空表示不过滤
	Dietary string

	// RequestID 用于日志关联
	RequestID string

	// Labels 是请求级标签
	Labels map[string]utils.Label

	// Params 请求级扩展参数，可在表达式过滤中通过 rctx.params 访问
	Params map[string]any
}

// PutLabel 写入请求级 Label。
func (rctx *RecommendContext) PutLabel(key string, lbl utils.Label) {
	if rctx.Labels == nil {
		rctx.Labels = make(map[string]utils.Label)
	}
	if old, ok := rctx.Labels[key]; ok {
		rctx.Labels[key] = utils.MergeLabel(old, lbl)
		return
	}
	rctx.Labels[key] = lbl
}

// GetLabel 获取请求级 Label。
func (rctx *RecommendContext) GetLabel(key string) (utils.Label, bool) {
	if rctx.Labels == nil {
		return utils.Label{}, false
	}
	lbl, ok := rctx.Labels[key]
	return lbl, ok
}
