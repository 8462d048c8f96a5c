package filter

import (
	"context"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/pkg/dsl"
)

// ExprFilter 使用 CEL 表达式过滤：表达式为 true 的 Item 保留，false 的移除。
// Invert 为 true 时反转语义（表达式为 true 时移除）。
//
// 示例：
//   - `size(recipe.ingredients) <= 8`：只保留食材不超过 8 种的菜谱
//   - `recipe.image_url != ""`：只保留有图片的菜谱
type ExprFilter struct {
	program *dsl.Program
	Invert  bool
}

// NewExprFilter 编译表达式并创建过滤器，表达式只编译一次。
func NewExprFilter(expr string, invert bool) (*ExprFilter, error) {
	p, err := dsl.Compile(expr)
	if err != nil {
		return nil, err
	}
	return &ExprFilter{program: p, Invert: invert}, nil
}

func (f *ExprFilter) Name() string {
	return "filter.expr"
}

// Expr 返回表达式原文。
func (f *ExprFilter) Expr() string {
	return f.program.String()
}

func (f *ExprFilter) ShouldFilter(
	_ context.Context,
	rctx *core.RecommendContext,
	item *core.Item,
) (bool, error) {
	keep, err := f.program.Eval(item, rctx)
	if err != nil {
		return false, err
	}
	if f.Invert {
		return keep, nil
	}
	return !keep, nil
}
