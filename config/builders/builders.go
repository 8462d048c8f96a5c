// Package builders 注册内置 Node 的配置构建逻辑。
// 在入口处 import _ "github.com/rushteam/ecochef/config/builders" 即可。
package builders

import (
	"fmt"

	"github.com/rushteam/ecochef/config"
	"github.com/rushteam/ecochef/filter"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/pkg/conv"
	"github.com/rushteam/ecochef/rerank"
)

func init() {
	config.Register("filter", BuildFilterNode)
	config.Register("filter.dietary", BuildDietaryNode)
	config.Register("filter.expr", BuildExprNode)
	config.Register("rerank.topn", BuildTopNNode)
	config.Register("rerank.dedup", BuildDedupNode)
}

// BuildFilterNode 组合多个过滤器：
//
//	type: filter
//	config:
//	  filters:
//	    - type: dietary
//	      tag: vegan
//	    - type: expr
//	      expr: 'size(recipe.ingredients) <= 8'
func BuildFilterNode(cfg map[string]any) (pipeline.Node, error) {
	specs := conv.SliceAnyToMap(cfg["filters"])
	if len(specs) == 0 {
		return nil, fmt.Errorf("filters not found or invalid")
	}
	filters := make([]filter.Filter, 0, len(specs))
	for _, fc := range specs {
		f, err := buildFilter(fc)
		if err != nil {
			return nil, err
		}
		filters = append(filters, f)
	}
	return &filter.FilterNode{Filters: filters}, nil
}

func buildFilter(fc map[string]any) (filter.Filter, error) {
	switch t := conv.ConfigGet(fc, "type", ""); t {
	case "dietary":
		return filter.NewDietaryFilter(conv.ConfigGet(fc, "tag", "")), nil
	case "expr":
		expr, err := conv.RequireString(fc, "expr")
		if err != nil {
			return nil, fmt.Errorf("expr filter: %w", err)
		}
		return filter.NewExprFilter(expr, conv.ConfigGet(fc, "invert", false))
	default:
		return nil, fmt.Errorf("unknown filter type: %q", t)
	}
}

// BuildDietaryNode 单个饮食过滤；tag 为空时使用请求中的饮食要求。
func BuildDietaryNode(cfg map[string]any) (pipeline.Node, error) {
	f := filter.NewDietaryFilter(conv.ConfigGet(cfg, "tag", ""))
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

// BuildExprNode 表达式过滤，表达式为 true 时保留；invert 为 true 时反转。
func BuildExprNode(cfg map[string]any) (pipeline.Node, error) {
	expr, err := conv.RequireString(cfg, "expr")
	if err != nil {
		return nil, err
	}
	f, err := filter.NewExprFilter(expr, conv.ConfigGet(cfg, "invert", false))
	if err != nil {
		return nil, err
	}
	return &filter.FilterNode{Filters: []filter.Filter{f}}, nil
}

func BuildTopNNode(cfg map[string]any) (pipeline.Node, error) {
	n := conv.ConfigGetInt64(cfg, "n", 0)
	if n <= 0 {
		return nil, fmt.Errorf("n must be positive")
	}
	return &rerank.TopNNode{N: int(n)}, nil
}

func BuildDedupNode(cfg map[string]any) (pipeline.Node, error) {
	return &rerank.Dedup{LabelKey: conv.ConfigGet(cfg, "label_key", "")}, nil
}
