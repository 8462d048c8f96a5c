package vectorize

import "math"

// Vector 是稀疏向量，Indices 严格递增，与 Values 一一对应。
type Vector struct {
	Indices []int
	Values  []float64
}

// IsZero 判断是否为零向量。
func (v Vector) IsZero() bool {
	for _, x := range v.Values {
		if x != 0 {
			return false
		}
	}
	return true
}

// Norm 返回 L2 范数。
func (v Vector) Norm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dense 展开为长度为 dim 的稠密向量。
func (v Vector) Dense(dim int) []float64 {
	out := make([]float64, dim)
	for i, idx := range v.Indices {
		if idx < dim {
			out[idx] = v.Values[i]
		}
	}
	return out
}

// Dot 计算两个稀疏向量的内积（按下标归并）。
func Dot(a, b Vector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(a.Indices) && j < len(b.Indices) {
		switch {
		case a.Indices[i] == b.Indices[j]:
			sum += a.Values[i] * b.Values[j]
			i++
			j++
		case a.Indices[i] < b.Indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

// Cosine 计算余弦相似度，任一向量为零向量时返回 0。
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// CosineDense 计算稠密向量的余弦相似度，长度不一致或任一为零向量时返回 0。
func CosineDense(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
