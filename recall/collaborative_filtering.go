package recall

import (
	"context"
	"fmt"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/matrix"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/pkg/utils"
)

// RecipeResolver 按标题解析菜谱，corpus.Corpus 实现了该接口。
type RecipeResolver interface {
	Lookup(title string) (*core.Recipe, bool)
}

// UserBasedCF 是基于用户的协同过滤召回源（User-based Collaborative Filtering, User-CF）。
//
// 核心思想："口味相似的用户，喜欢相似的菜谱"
//
// 算法流程：
//  1. 全量枚举偏好与评分，构建 用户×菜谱 矩阵（按请求构建）
//  2. 计算目标用户与其他用户的余弦相似度，取 TopK 个近邻
//  3. 按近邻排名、列顺序依次挑选：近邻单元格 >= Threshold 且目标用户单元格恰好为 0
//  4. 按首次出现去重，经 Resolver 解析为菜谱（语料中不存在的标题静默丢弃）
//
// 冷启动（目标用户不在矩阵中 / 矩阵为空）返回空列表，不是错误。
// 存储枚举失败返回 UNAVAILABLE，由 Hybrid 吸收。
type UserBasedCF struct {
	Preferences core.PreferenceStore
	Ratings     core.RatingStore

	// Builder 矩阵构建器，默认 matrix.DenseBuilder
	Builder matrix.Builder

	// Resolver 标题 -> 菜谱
	Resolver RecipeResolver

	// K 近邻数，默认 2
	K int

	// Threshold 近邻单元格达到该值才作为候选；零值或负数取默认值 4，config 层拒绝显式的 0
	Threshold float64

	// TopKItems 最终返回的条数上限，默认 10
	TopKItems int
}

func (r *UserBasedCF) Name() string        { return "recall.u2i" }
func (r *UserBasedCF) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *UserBasedCF) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

func (r *UserBasedCF) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Preferences == nil || r.Ratings == nil || rctx == nil || rctx.UserID == "" {
		return nil, nil
	}

	prefs, err := r.Preferences.ListPreferences(ctx)
	if err != nil {
		return nil, fmt.Errorf("list preferences: %w", asUnavailable("preferences", err))
	}
	ratings, err := r.Ratings.ListRatings(ctx)
	if err != nil {
		return nil, fmt.Errorf("list ratings: %w", asUnavailable("ratings", err))
	}

	builder := r.Builder
	if builder == nil {
		builder = matrix.DenseBuilder{}
	}
	m := builder.Build(prefs, ratings)

	k := r.K
	if k <= 0 {
		k = 2
	}
	neighbors, ok := matrix.Neighbors(m, rctx.UserID, k)
	if !ok || len(neighbors) == 0 {
		return nil, nil
	}

	threshold := r.Threshold
	if threshold <= 0 {
		threshold = 4
	}
	topK := r.TopKItems
	if topK <= 0 {
		topK = 10
	}

	out := make([]*core.Item, 0, topK)
	for _, c := range Candidates(m, rctx.UserID, neighbors, threshold) {
		if len(out) >= topK {
			break
		}
		recipe := &core.Recipe{Title: c.Title}
		if r.Resolver != nil {
			var found bool
			if recipe, found = r.Resolver.Lookup(c.Title); !found {
				continue
			}
		}
		it := core.NewItem(c.Title)
		it.Recipe = recipe
		it.Score = c.Similarity
		it.Meta["neighbor"] = c.Neighbor
		it.PutLabel(core.LabelRecallSource, utils.NewLabel(core.SourceCollaborative, "recall"))
		out = append(out, it)
	}
	return out, nil
}

// Candidate 是协同过滤挑选出的一个菜谱标题及其来源近邻。
type Candidate struct {
	Title      string
	Neighbor   string
	Similarity float64
}

// Candidates 按近邻排名、列顺序挑选候选标题，按首次出现去重。
// 条件：近邻单元格 >= threshold 且目标用户单元格 == 0（负偏好也视为“见过”）。
func Candidates(m *matrix.PreferenceMatrix, userID string, neighbors []matrix.Neighbor, threshold float64) []Candidate {
	target, ok := m.Row(userID)
	if !ok {
		return nil
	}

	seen := make(map[string]struct{})
	var out []Candidate
	for _, n := range neighbors {
		row, ok := m.Row(n.UserID)
		if !ok {
			continue
		}
		for j, title := range m.Recipes() {
			if row[j] < threshold || target[j] != 0 {
				continue
			}
			if _, dup := seen[title]; dup {
				continue
			}
			seen[title] = struct{}{}
			out = append(out, Candidate{Title: title, Neighbor: n.UserID, Similarity: n.Similarity})
		}
	}
	return out
}

func asUnavailable(backend string, err error) error {
	if core.IsDomainError(err) {
		return err
	}
	return core.NewStoreUnavailable(backend, err)
}
