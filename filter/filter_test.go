package filter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rushteam/ecochef/core"
)

func recipeItems() []*core.Item {
	recipes := []core.Recipe{
		{Title: "Tomato Soup", Ingredients: []string{"tomato", "onion"}, DietaryTags: []string{"Vegan", "gluten-free"}},
		{Title: "Cheese Toast", Ingredients: []string{"bread", "cheese", "butter"}, DietaryTags: []string{"vegetarian"}},
		{Title: "Steak", Ingredients: []string{"beef"}},
		{Title: "Vegan Curry", Ingredients: []string{"chickpea", "coconut", "curry", "rice"}, DietaryTags: []string{" vegan "}},
	}
	out := make([]*core.Item, 0, len(recipes))
	for i := range recipes {
		out = append(out, core.NewRecipeItem(&recipes[i]))
	}
	return out
}

func titles(items []*core.Item) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		out = append(out, it.ID)
	}
	return out
}

func TestDietaryFilter(t *testing.T) {
	tests := []struct {
		name    string
		tag     string
		dietary string
		want    []string
	}{
		{name: "vegan case-insensitive", tag: "VEGAN", want: []string{"Tomato Soup", "Vegan Curry"}},
		{name: "from context", dietary: "vegetarian", want: []string{"Cheese Toast"}},
		{name: "exact match only", tag: "veg", want: []string{}},
		{name: "empty tag keeps all", want: []string{"Tomato Soup", "Cheese Toast", "Steak", "Vegan Curry"}},
		{name: "unknown tag removes all", tag: "keto", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &FilterNode{Filters: []Filter{NewDietaryFilter(tt.tag)}}
			rctx := &core.RecommendContext{Dietary: tt.dietary}

			in := recipeItems()
			out, err := node.Process(context.Background(), rctx, in)
			require.NoError(t, err)
			require.Equal(t, tt.want, titles(out))
			require.LessOrEqual(t, len(out), len(in))
		})
	}
}

func TestFilterNode_LabelsRemoved(t *testing.T) {
	in := recipeItems()
	node := &FilterNode{Filters: []Filter{NewDietaryFilter("vegan")}}

	_, err := node.Process(context.Background(), &core.RecommendContext{}, in)
	require.NoError(t, err)
	require.Equal(t, "filter.dietary", in[2].Labels[LabelFiltered].Source)
	_, ok := in[0].Labels[LabelFiltered]
	require.False(t, ok)
}

type errFilter struct{}

func (errFilter) Name() string { return "filter.err" }
func (errFilter) ShouldFilter(context.Context, *core.RecommendContext, *core.Item) (bool, error) {
	return true, errors.New("boom")
}

func TestFilterNode_ErrorIgnored(t *testing.T) {
	var seen int
	node := &FilterNode{
		Filters: []Filter{errFilter{}},
		OnError: func(Filter, *core.Item, error) { seen++ },
	}
	in := recipeItems()
	out, err := node.Process(context.Background(), &core.RecommendContext{}, in)
	require.NoError(t, err)
	require.Len(t, out, len(in))
	require.Equal(t, len(in), seen)
}

func TestExprFilter(t *testing.T) {
	f, err := NewExprFilter(`size(recipe.ingredients) <= 2`, false)
	require.NoError(t, err)
	require.Equal(t, `size(recipe.ingredients) <= 2`, f.Expr())

	node := &FilterNode{Filters: []Filter{f}}
	out, err := node.Process(context.Background(), &core.RecommendContext{}, recipeItems())
	require.NoError(t, err)
	require.Equal(t, []string{"Tomato Soup", "Steak"}, titles(out))

	inv, err := NewExprFilter(`recipe.title == "Steak"`, true)
	require.NoError(t, err)
	out, err = (&FilterNode{Filters: []Filter{inv}}).Process(context.Background(), nil, recipeItems())
	require.NoError(t, err)
	require.Equal(t, []string{"Tomato Soup", "Cheese Toast", "Vegan Curry"}, titles(out))

	_, err = NewExprFilter(`recipe.title ==`, false)
	require.Error(t, err)
}
