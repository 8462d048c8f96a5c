package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testRecipes = `Title,Ingredients,Instructions,Dietary_Tags,Image_URL
Tomato Onion Garlic Sauce,"['tomato', 'onion', 'garlic']",Simmer.,['vegan'],
Pancakes,"['flour', 'egg', 'milk']",Fry.,['vegetarian'],
Garlic Bread,"['bread', 'garlic', 'butter']",Bake.,['vegetarian'],
`

func setup(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	corpusPath := filepath.Join(dir, "recipes.csv")
	require.NoError(t, os.WriteFile(corpusPath, []byte(testRecipes), 0o600))

	cfg := "corpus:\n  path: " + corpusPath + "\nstore:\n  backend: memory\nlog:\n  level: disabled\n" + extra
	cfgPath := filepath.Join(dir, "ecochef.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(cfg), 0o600))
	return cfgPath
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Recommend(t *testing.T) {
	cfg := setup(t, "")

	code, out, _ := runCLI("-config", cfg, "recommend", "-user", "u1", "-ingredients", "tomato, onion, garlic")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "Tomato Onion Garlic Sauce")
	require.Contains(t, out, "Garlic Bread")
	require.Contains(t, out, "Content-Based")
	require.NotContains(t, out, "Pancakes")

	code, out, _ = runCLI("-config", cfg, "recommend", "-ingredients", "garlic", "-dietary", "vegan")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "Tomato Onion Garlic Sauce")
	require.NotContains(t, out, "Garlic Bread")

	code, out, _ = runCLI("-config", cfg, "recommend", "-ingredients", "saffron")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "no recipes found")
}

func TestRun_RecommendWithPipeline(t *testing.T) {
	dir := t.TempDir()
	pipelinePath := filepath.Join(dir, "content.yaml")
	require.NoError(t, os.WriteFile(pipelinePath, []byte(`
pipeline:
  name: content
  nodes:
    - type: filter.expr
      config:
        expr: '!("butter" in recipe.ingredients)'
`), 0o600))
	cfg := setup(t, "pipeline: "+pipelinePath+"\n")

	code, out, _ := runCLI("-config", cfg, "recommend", "-ingredients", "garlic")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, "Tomato Onion Garlic Sauce")
	require.NotContains(t, out, "Garlic Bread")
}

func TestRun_LikeAndFeedback(t *testing.T) {
	cfg := setup(t, "")

	code, out, _ := runCLI("-config", cfg, "like", "-user", "u1", "-recipe", "Pancakes")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, `liked "Pancakes"`)

	code, out, _ = runCLI("-config", cfg, "like", "-user", "u1", "-recipe", "Pancakes", "-liked=false")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, `disliked "Pancakes"`)

	code, _, errOut := runCLI("-config", cfg, "like", "-user", "u1", "-recipe", "Fried Ice")
	require.Equal(t, exitError, code)
	require.Contains(t, errOut, "not found:")

	code, out, _ = runCLI("-config", cfg, "feedback", "-user", "u1", "-recipe", "Pancakes", "-rating", "4")
	require.Equal(t, exitOK, code)
	require.Contains(t, out, `rated "Pancakes" 4/5`)
}

func TestRun_UsageErrors(t *testing.T) {
	cfg := setup(t, "")

	tests := []struct {
		name string
		args []string
	}{
		{name: "no command", args: []string{"-config", cfg}},
		{name: "unknown command", args: []string{"-config", cfg, "train"}},
		{name: "missing ingredients", args: []string{"-config", cfg, "recommend", "-user", "u1"}},
		{name: "missing recipe", args: []string{"-config", cfg, "like", "-user", "u1"}},
		{name: "rating zero", args: []string{"-config", cfg, "feedback", "-user", "u1", "-recipe", "Pancakes", "-rating", "0"}},
		{name: "rating six", args: []string{"-config", cfg, "feedback", "-user", "u1", "-recipe", "Pancakes", "-rating", "6"}},
		{name: "rating not integer", args: []string{"-config", cfg, "feedback", "-user", "u1", "-recipe", "Pancakes", "-rating", "4.5"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(tt.args...)
			require.Equal(t, exitUsage, code)
		})
	}
}

func TestRun_BadConfig(t *testing.T) {
	code, _, errOut := runCLI("-config", filepath.Join(t.TempDir(), "missing.yaml"), "recommend", "-ingredients", "x")
	require.Equal(t, exitError, code)
	require.Contains(t, errOut, "config:")
}

func TestTruncate(t *testing.T) {
	require.Equal(t, "abc", truncate("abc", 5))
	require.Equal(t, "ab...", truncate("abcdefgh", 5))
}
