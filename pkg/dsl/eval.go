// Package dsl 提供基于 CEL (Common Expression Language) 的 Item 表达式解释器，
// 用于配置驱动的过滤规则。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/rushteam/ecochef/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvErr  error
	celEnvOnce sync.Once
)

func getCELEnv() (*cel.Env, error) {
	celEnvOnce.Do(func() {
		celEnv, celEnvErr = cel.NewEnv(
			cel.Variable("item", cel.DynType),
			cel.Variable("recipe", cel.DynType),
			cel.Variable("label", cel.DynType),
			cel.Variable("rctx", cel.DynType),
		)
	})
	return celEnv, celEnvErr
}

// Program 是编译后的表达式，可在多个 goroutine 中并发求值。
//
// 可用变量：
//   - item：id / score / meta / labels
//   - recipe：title / ingredients / instructions / dietary_tags / image_url
//   - label：label key -> value，例如 label.recall_source == "Content-Based"
//   - rctx：user_id / query / dietary / params
//
// 示例：
//   - `size(recipe.ingredients) <= 8`
//   - `"vegan" in recipe.dietary_tags`
//   - `item.score > 0.2 && label.recall_source == "Content-Based"`
type Program struct {
	expr string
	prg  cel.Program
}

// Compile 编译表达式，语法错误或返回值不是 bool 时报错。
func Compile(expr string) (*Program, error) {
	env, err := getCELEnv()
	if err != nil {
		return nil, fmt.Errorf("cel env: %w", err)
	}

	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile error: %w", issues.Err())
	}
	if t := ast.OutputType(); !t.IsExactType(cel.BoolType) && !t.IsExactType(cel.DynType) {
		return nil, fmt.Errorf("expression must return boolean, got %s", t)
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("program error: %w", err)
	}
	return &Program{expr: expr, prg: prg}, nil
}

// String 返回原始表达式。
func (p *Program) String() string { return p.expr }

// Eval 对单个 Item 求值。
// 访问不存在的 key 会报错，需要时用 `"key" in label` 判断存在性。
func (p *Program) Eval(item *core.Item, rctx *core.RecommendContext) (bool, error) {
	out, _, err := p.prg.Eval(buildInput(item, rctx))
	if err != nil {
		return false, fmt.Errorf("eval error: %w", err)
	}
	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Evaluate 编译并执行一次表达式，空表达式视为 true。
func Evaluate(expr string, item *core.Item, rctx *core.RecommendContext) (bool, error) {
	if expr == "" {
		return true, nil
	}
	p, err := Compile(expr)
	if err != nil {
		return false, err
	}
	return p.Eval(item, rctx)
}

func buildInput(it *core.Item, rctx *core.RecommendContext) map[string]any {
	labels := make(map[string]any)
	labelValues := make(map[string]any)
	item := map[string]any{
		"id":     "",
		"score":  0.0,
		"meta":   map[string]any{},
		"labels": labels,
	}
	recipe := map[string]any{
		"title":        "",
		"ingredients":  []string{},
		"instructions": "",
		"dietary_tags": []string{},
		"image_url":    "",
	}

	if it != nil {
		for k, v := range it.Labels {
			labels[k] = map[string]any{"value": v.Value, "source": v.Source}
			labelValues[k] = v.Value
		}
		item["id"] = it.ID
		item["score"] = it.Score
		if it.Meta != nil {
			item["meta"] = it.Meta
		}
		if r := it.Recipe; r != nil {
			recipe["title"] = r.Title
			recipe["ingredients"] = nonNil(r.Ingredients)
			recipe["instructions"] = r.Instructions
			recipe["dietary_tags"] = nonNil(r.DietaryTags)
			recipe["image_url"] = r.ImageURL
		}
	}

	ctxMap := map[string]any{
		"user_id": "",
		"query":   "",
		"dietary": "",
		"params":  map[string]any{},
	}
	if rctx != nil {
		ctxMap["user_id"] = rctx.UserID
		ctxMap["query"] = rctx.Query
		ctxMap["dietary"] = rctx.Dietary
		if rctx.Params != nil {
			ctxMap["params"] = rctx.Params
		}
	}

	return map[string]any{
		"item":   item,
		"recipe": recipe,
		"label":  labelValues,
		"rctx":   ctxMap,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
