// Package matrix 由偏好与评分记录构建稠密的 用户×菜谱 偏好矩阵，并计算用户近邻。
//
// 矩阵按请求构建，用完即弃：
//   - 行：所有出现过的用户（字典序）
//   - 列：所有出现过的菜谱标题（字典序）
//   - 单元格默认 0；喜欢 +1，不喜欢 -1；同一单元格的评分随后写入并覆盖偏好值
package matrix

import (
	"sort"

	"github.com/samber/lo"

	"github.com/rushteam/ecochef/core"
)

// Builder 是矩阵构建的抽象，DenseBuilder 为默认实现。
// 后续稀疏/增量构建只需实现该接口。
type Builder interface {
	Build(prefs []core.Preference, ratings []core.Rating) *PreferenceMatrix
}

// PreferenceMatrix 是 用户×菜谱 的稠密矩阵。
type PreferenceMatrix struct {
	users   []string
	recipes []string
	userIdx map[string]int
	colIdx  map[string]int
	cells   [][]float64
}

// DenseBuilder 构建稠密矩阵。
type DenseBuilder struct{}

// Build 先写入偏好（±1），再写入评分（覆盖）。空输入得到 0×0 矩阵。
func (DenseBuilder) Build(prefs []core.Preference, ratings []core.Rating) *PreferenceMatrix {
	users := append(
		lo.Map(prefs, func(p core.Preference, _ int) string { return p.UserID }),
		lo.Map(ratings, func(r core.Rating, _ int) string { return r.UserID })...,
	)
	titles := append(
		lo.Map(prefs, func(p core.Preference, _ int) string { return p.RecipeTitle }),
		lo.Map(ratings, func(r core.Rating, _ int) string { return r.RecipeTitle })...,
	)

	m := newMatrix(lo.Uniq(users), lo.Uniq(titles))
	for _, p := range prefs {
		v := -1.0
		if p.Liked {
			v = 1
		}
		m.set(p.UserID, p.RecipeTitle, v)
	}
	for _, r := range ratings {
		m.set(r.UserID, r.RecipeTitle, float64(r.Value))
	}
	return m
}

func newMatrix(users, recipes []string) *PreferenceMatrix {
	sort.Strings(users)
	sort.Strings(recipes)

	m := &PreferenceMatrix{
		users:   users,
		recipes: recipes,
		userIdx: make(map[string]int, len(users)),
		colIdx:  make(map[string]int, len(recipes)),
		cells:   make([][]float64, len(users)),
	}
	for i, u := range users {
		m.userIdx[u] = i
		m.cells[i] = make([]float64, len(recipes))
	}
	for j, t := range recipes {
		m.colIdx[t] = j
	}
	return m
}

func (m *PreferenceMatrix) set(user, title string, v float64) {
	m.cells[m.userIdx[user]][m.colIdx[title]] = v
}

// Users 返回行标签（用户 ID）。
func (m *PreferenceMatrix) Users() []string { return m.users }

// Recipes 返回列标签（菜谱标题）。
func (m *PreferenceMatrix) Recipes() []string { return m.recipes }

// Dims 返回 (行数, 列数)。
func (m *PreferenceMatrix) Dims() (int, int) { return len(m.users), len(m.recipes) }

// Row 返回用户所在行；用户不存在时返回 false。
func (m *PreferenceMatrix) Row(user string) ([]float64, bool) {
	i, ok := m.userIdx[user]
	if !ok {
		return nil, false
	}
	return m.cells[i], true
}

// Value 返回单元格值，行或列不存在时为 0。
func (m *PreferenceMatrix) Value(user, title string) float64 {
	i, ok := m.userIdx[user]
	if !ok {
		return 0
	}
	j, ok := m.colIdx[title]
	if !ok {
		return 0
	}
	return m.cells[i][j]
}
