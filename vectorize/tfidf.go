// Package vectorize 把食材文本映射到基于语料库构建的 TF-IDF 向量空间。
//
// 空间在进程启动时由全量语料构建一次，之后只读共享，不再重新拟合：
//   - 分词：转小写，取连续 2 个及以上的字母/数字/下划线
//   - TF：原始词频
//   - IDF：ln((1+n)/(1+df)) + 1（平滑）
//   - 向量做 L2 归一化
package vectorize

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/rushteam/ecochef/core"
)

var (
	// ErrEmptyCorpus 语料为空时构建失败（启动时致命）
	ErrEmptyCorpus = core.NewDomainError(core.ModuleVectorize, core.ErrorCodeInvalidInput, "vectorize: empty corpus")

	// ErrEmptyVocabulary 语料中没有任何可用词项
	ErrEmptyVocabulary = core.NewDomainError(core.ModuleVectorize, core.ErrorCodeInvalidInput, "vectorize: empty vocabulary")
)

var tokenRegex = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Space 是不可变的向量空间：词表（词项 -> 维度下标）与每个词项的 IDF。
type Space struct {
	vocabulary map[string]int
	terms      []string
	idf        []float64
	docs       []Vector
}

// Build 从语料文档构建向量空间。给定相同顺序的语料，结果确定。
func Build(docs []string) (*Space, error) {
	if len(docs) == 0 {
		return nil, ErrEmptyCorpus
	}

	tokenized := make([][]string, len(docs))
	df := make(map[string]int)
	for i, doc := range docs {
		tokens := Tokenize(doc)
		tokenized[i] = tokens
		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	// 词表按字典序分配维度，保证与文档遍历顺序无关
	terms := make([]string, 0, len(df))
	for term := range df {
		terms = append(terms, term)
	}
	sort.Strings(terms)

	s := &Space{
		vocabulary: make(map[string]int, len(terms)),
		terms:      terms,
		idf:        make([]float64, len(terms)),
		docs:       make([]Vector, len(docs)),
	}
	n := float64(len(docs))
	for i, term := range terms {
		s.vocabulary[term] = i
		s.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	for i, tokens := range tokenized {
		s.docs[i] = s.vectorize(tokens)
	}
	return s, nil
}

// BuildFromRecipes 以每个菜谱的食材列表（空格拼接）作为文档构建空间。
func BuildFromRecipes(recipes []core.Recipe) (*Space, error) {
	if len(recipes) == 0 {
		return nil, ErrEmptyCorpus
	}
	docs := make([]string, len(recipes))
	for i := range recipes {
		docs[i] = strings.Join(recipes[i].Ingredients, " ")
	}
	return Build(docs)
}

// Transform 把任意文本映射到空间中。词表外的词项权重为 0。
func (s *Space) Transform(text string) Vector {
	return s.vectorize(Tokenize(text))
}

// Document 返回第 i 个语料文档的向量（构建时预计算）。
func (s *Space) Document(i int) Vector {
	if i < 0 || i >= len(s.docs) {
		return Vector{}
	}
	return s.docs[i]
}

// Len 返回语料文档数。
func (s *Space) Len() int { return len(s.docs) }

// Dim 返回空间维度（词表大小）。
func (s *Space) Dim() int { return len(s.terms) }

// Index 返回词项的维度下标。
func (s *Space) Index(term string) (int, bool) {
	idx, ok := s.vocabulary[term]
	return idx, ok
}

// IDF 返回词项的 IDF 权重，词表外返回 0。
func (s *Space) IDF(term string) float64 {
	if idx, ok := s.vocabulary[term]; ok {
		return s.idf[idx]
	}
	return 0
}

func (s *Space) vectorize(tokens []string) Vector {
	counts := make(map[int]float64)
	for _, tok := range tokens {
		if idx, ok := s.vocabulary[tok]; ok {
			counts[idx]++
		}
	}
	if len(counts) == 0 {
		return Vector{}
	}

	v := Vector{
		Indices: make([]int, 0, len(counts)),
		Values:  make([]float64, 0, len(counts)),
	}
	for idx := range counts {
		v.Indices = append(v.Indices, idx)
	}
	sort.Ints(v.Indices)

	var norm float64
	for _, idx := range v.Indices {
		w := counts[idx] * s.idf[idx]
		v.Values = append(v.Values, w)
		norm += w * w
	}
	norm = math.Sqrt(norm)
	for i := range v.Values {
		v.Values[i] /= norm
	}
	return v
}

// Tokenize 折叠空白、转小写后切分词项。
func Tokenize(text string) []string {
	normalized := strings.ToLower(strings.Join(strings.Fields(text), " "))
	return tokenRegex.FindAllString(normalized, -1)
}

// IsEmptyCorpus 判断错误是否为空语料/空词表。
func IsEmptyCorpus(err error) bool {
	return errors.Is(err, ErrEmptyCorpus) || errors.Is(err, ErrEmptyVocabulary)
}
