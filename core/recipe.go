package core

// 推荐结果来源标识。
const (
	SourceContentBased  = "Content-Based"
	SourceCollaborative = "Collaborative"
)

// Recipe 是语料库中的一条菜谱记录。
// Title 作为语料库内的唯一键（存储层不强制唯一，加载时保留第一次出现的记录）。
// 语料加载后不可变，生命周期与进程一致。
type Recipe struct {
	Title        string   `json:"title" yaml:"title"`
	Ingredients  []string `json:"ingredients" yaml:"ingredients"`
	Instructions string   `json:"instructions" yaml:"instructions"`
	DietaryTags  []string `json:"dietary_tags" yaml:"dietary_tags"`
	ImageURL     string   `json:"image_url" yaml:"image_url"`
}

// RecipeResult 是对上层暴露的推荐结果，Source 为 "Content-Based" 或 "Collaborative"。
type RecipeResult struct {
	Title        string   `json:"title"`
	Ingredients  []string `json:"ingredients"`
	Instructions string   `json:"instructions"`
	DietaryTags  []string `json:"dietary_tags"`
	ImageURL     string   `json:"image_url"`
	Source       string   `json:"source"`
}

// NewRecipeResult 由菜谱与来源构造结果。
func NewRecipeResult(r *Recipe, source string) RecipeResult {
	if r == nil {
		return RecipeResult{Source: source}
	}
	return RecipeResult{
		Title:        r.Title,
		Ingredients:  r.Ingredients,
		Instructions: r.Instructions,
		DietaryTags:  r.DietaryTags,
		ImageURL:     r.ImageURL,
		Source:       source,
	}
}
