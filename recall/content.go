package recall

import (
	"context"
	"sort"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/corpus"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/pkg/utils"
	"github.com/rushteam/ecochef/vectorize"
)

// Scored 是语料库中一个菜谱（按下标）与查询的相似度。
type Scored struct {
	Index int
	Score float64
}

// ContentRecall 是基于内容的召回源（Content-Based Recommendation）。
//
// 核心思想："食材越接近，菜谱越相似"
//
// 算法流程：
//  1. 查询食材文本 → TF-IDF 向量（空间由语料一次性构建，不重新拟合）
//  2. 与每个菜谱向量计算余弦相似度
//  3. 降序稳定排序（相同分数保持语料顺序），截取 TopN
//
// 与任何菜谱都没有共同词项的查询得到空结果（冷启动），不是错误。
// 饮食过滤不在这里做，由后续的 filter.FilterNode 在 TopN 之后执行。
type ContentRecall struct {
	Space  *vectorize.Space
	Corpus *corpus.Corpus

	// TopN 过滤前保留的条数，默认 10
	TopN int
}

// NewContentRecall 基于语料库构建 TF-IDF 空间。空语料返回错误（启动时致命）。
func NewContentRecall(c *corpus.Corpus, topN int) (*ContentRecall, error) {
	space, err := vectorize.BuildFromRecipes(c.Recipes())
	if err != nil {
		return nil, err
	}
	return &ContentRecall{Space: space, Corpus: c, TopN: topN}, nil
}

func (r *ContentRecall) Name() string        { return "recall.content" }
func (r *ContentRecall) Kind() pipeline.Kind { return pipeline.KindRecall }

// Process 实现 Node 接口，直接调用 Recall
func (r *ContentRecall) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	return r.Recall(ctx, rctx)
}

// Recall 实现 Source 接口
func (r *ContentRecall) Recall(
	ctx context.Context,
	rctx *core.RecommendContext,
) ([]*core.Item, error) {
	if r.Space == nil || r.Corpus == nil || rctx == nil {
		return nil, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topN := r.TopN
	if topN <= 0 {
		topN = 10
	}

	scores := r.Rank(r.Space.Transform(rctx.Query), topN)
	out := make([]*core.Item, 0, len(scores))
	for _, s := range scores {
		recipe := r.Corpus.At(s.Index)
		if recipe == nil {
			continue
		}
		it := core.NewRecipeItem(recipe)
		it.Score = s.Score
		it.PutLabel(core.LabelRecallSource, utils.NewLabel(core.SourceContentBased, "recall"))
		out = append(out, it)
	}
	return out, nil
}

// Rank 计算查询向量与全部语料的余弦相似度，返回非零分数中的前 topN 个。
// topN <= 0 时不截断。
func (r *ContentRecall) Rank(q vectorize.Vector, topN int) []Scored {
	if q.IsZero() {
		return nil
	}

	scores := make([]Scored, 0)
	for i := 0; i < r.Space.Len(); i++ {
		if score := vectorize.Cosine(q, r.Space.Document(i)); score > 0 {
			scores = append(scores, Scored{Index: i, Score: score})
		}
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})
	if topN > 0 && len(scores) > topN {
		scores = scores[:topN]
	}
	return scores
}
