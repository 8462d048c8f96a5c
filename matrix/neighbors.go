package matrix

import (
	"sort"

	"github.com/rushteam/ecochef/vectorize"
)

// Neighbor 是一个相似用户及其与目标用户的余弦相似度。
type Neighbor struct {
	UserID     string
	Similarity float64
}

// Neighbors 返回与 userID 最相似的至多 k 个用户（不含自己）。
// 按相似度降序稳定排序，相同相似度保持行顺序；不设相似度下限。
// 用户不在矩阵中时返回 (nil, false)，属于冷启动而非错误。
func Neighbors(m *PreferenceMatrix, userID string, k int) ([]Neighbor, bool) {
	if m == nil {
		return nil, false
	}
	target, ok := m.Row(userID)
	if !ok {
		return nil, false
	}
	if k <= 0 {
		return nil, true
	}

	out := make([]Neighbor, 0, len(m.users)-1)
	for i, u := range m.users {
		if u == userID {
			continue
		}
		out = append(out, Neighbor{
			UserID:     u,
			Similarity: vectorize.CosineDense(target, m.cells[i]),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Similarity > out[j].Similarity
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, true
}
