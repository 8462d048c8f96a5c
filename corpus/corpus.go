// Package corpus 持有进程内只读的菜谱语料库，并负责从 CSV / JSON 文件加载。
package corpus

import (
	"strings"

	"github.com/samber/lo"

	"github.com/rushteam/ecochef/core"
)

// Corpus 是按加载顺序排列的菜谱集合，标题作为唯一键。
// 构建后不可变，可在多个 goroutine 间无锁共享。
type Corpus struct {
	recipes []core.Recipe
	index   map[string]int
}

// New 基于菜谱列表构建语料库。
// 重复标题只保留第一次出现的记录；没有标题或没有食材的记录被跳过。
func New(recipes []core.Recipe) *Corpus {
	c := &Corpus{
		recipes: make([]core.Recipe, 0, len(recipes)),
		index:   make(map[string]int, len(recipes)),
	}
	for _, r := range recipes {
		r.Title = strings.TrimSpace(r.Title)
		r.Ingredients = lo.Compact(lo.Map(r.Ingredients, func(s string, _ int) string {
			return strings.TrimSpace(s)
		}))
		if r.Title == "" || len(r.Ingredients) == 0 {
			continue
		}
		if _, ok := c.index[r.Title]; ok {
			continue
		}
		c.index[r.Title] = len(c.recipes)
		c.recipes = append(c.recipes, r)
	}
	return c
}

// Len 返回菜谱数量。
func (c *Corpus) Len() int { return len(c.recipes) }

// Recipes 返回全部菜谱（只读，调用方不应修改）。
func (c *Corpus) Recipes() []core.Recipe { return c.recipes }

// At 返回第 i 个菜谱，与向量空间中的文档下标一致。
func (c *Corpus) At(i int) *core.Recipe {
	if i < 0 || i >= len(c.recipes) {
		return nil
	}
	return &c.recipes[i]
}

// Lookup 按标题精确查找菜谱。
func (c *Corpus) Lookup(title string) (*core.Recipe, bool) {
	i, ok := c.index[title]
	if !ok {
		return nil, false
	}
	return &c.recipes[i], true
}

// Contains 判断标题是否存在于语料库。
func (c *Corpus) Contains(title string) bool {
	_, ok := c.index[title]
	return ok
}
