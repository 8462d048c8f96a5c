package builders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rushteam/ecochef/config"
	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/filter"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/rerank"
)

func recipeItems(recipes ...core.Recipe) []*core.Item {
	out := make([]*core.Item, 0, len(recipes))
	for i := range recipes {
		out = append(out, core.NewRecipeItem(&recipes[i]))
	}
	return out
}

func TestRegisteredTypes(t *testing.T) {
	types := config.SupportedTypes()
	for _, want := range []string{"filter", "filter.dietary", "filter.expr", "rerank.dedup", "rerank.topn"} {
		require.Contains(t, types, want)
	}
}

func TestBuildPipeline_FromYAML(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  name: content
  nodes:
    - type: filter.dietary
      config:
        tag: vegan
    - type: filter.expr
      config:
        expr: size(recipe.ingredients) <= 2
    - type: rerank.topn
      config:
        n: 1
`))
	require.NoError(t, err)

	p, err := config.BuildPipeline(cfg)
	require.NoError(t, err)
	require.Len(t, p.Nodes, 3)

	in := recipeItems(
		core.Recipe{Title: "Stew", Ingredients: []string{"beef", "carrot"}},
		core.Recipe{Title: "Big Salad", Ingredients: []string{"a", "b", "c"}, DietaryTags: []string{"vegan"}},
		core.Recipe{Title: "Hummus", Ingredients: []string{"chickpea", "tahini"}, DietaryTags: []string{"Vegan"}},
		core.Recipe{Title: "Toast", Ingredients: []string{"bread"}, DietaryTags: []string{"vegan"}},
	)
	out, err := p.Run(context.Background(), &core.RecommendContext{}, in)
	require.NoError(t, err)
	require.Len(t, out, 1)
	require.Equal(t, "Hummus", out[0].ID)
}

func TestBuildPipeline_UnknownType(t *testing.T) {
	cfg, err := pipeline.ParseYAML([]byte(`
pipeline:
  nodes:
    - type: rank.lr
`))
	require.NoError(t, err)

	_, err = config.BuildPipeline(cfg)
	require.ErrorContains(t, err, `unsupported node type "rank.lr"`)
}

func TestBuildFilterNode(t *testing.T) {
	node, err := BuildFilterNode(map[string]any{
		"filters": []any{
			map[string]any{"type": "dietary"},
			map[string]any{"type": "expr", "expr": `recipe.image_url != ""`},
		},
	})
	require.NoError(t, err)
	fn, ok := node.(*filter.FilterNode)
	require.True(t, ok)
	require.Len(t, fn.Filters, 2)

	_, err = BuildFilterNode(map[string]any{})
	require.Error(t, err)

	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "blacklist"}}})
	require.ErrorContains(t, err, "unknown filter type")

	_, err = BuildFilterNode(map[string]any{"filters": []any{map[string]any{"type": "expr"}}})
	require.ErrorContains(t, err, "expr is required")
}

func TestBuildExprNode_Invalid(t *testing.T) {
	_, err := BuildExprNode(map[string]any{"expr": "recipe.("})
	require.Error(t, err)

	_, err = BuildExprNode(map[string]any{})
	require.Error(t, err)
}

func TestBuildTopNNode(t *testing.T) {
	node, err := BuildTopNNode(map[string]any{"n": 3.0})
	require.NoError(t, err)
	require.Equal(t, 3, node.(*rerank.TopNNode).N)

	_, err = BuildTopNNode(map[string]any{})
	require.Error(t, err)
}

func TestBuildDedupNode(t *testing.T) {
	node, err := BuildDedupNode(map[string]any{"label_key": "title"})
	require.NoError(t, err)
	require.Equal(t, "title", node.(*rerank.Dedup).LabelKey)
}
