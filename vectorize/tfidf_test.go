package vectorize

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rushteam/ecochef/core"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "Tomato, Onion  garlic", want: []string{"tomato", "onion", "garlic"}},
		{in: "  olive_oil\tx 2 eggs ", want: []string{"olive_oil", "eggs"}},
		{in: "a b c", want: nil},
		{in: "", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Tokenize(tt.in))
		})
	}
}

func TestBuild_IDF(t *testing.T) {
	s, err := Build([]string{"tomato basil", "tomato cheese"})
	require.NoError(t, err)

	assert.Equal(t, 3, s.Dim())
	assert.Equal(t, 2, s.Len())
	assert.InDelta(t, 1.0, s.IDF("tomato"), 1e-12)
	assert.InDelta(t, math.Log(1.5)+1, s.IDF("basil"), 1e-12)
	assert.Zero(t, s.IDF("rice"))

	// 字典序分配维度
	idx, ok := s.Index("basil")
	require.True(t, ok)
	assert.Equal(t, 0, idx)
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil)
	require.ErrorIs(t, err, ErrEmptyCorpus)
	require.True(t, core.IsInvalidInput(err))

	_, err = Build([]string{"a", "!!"})
	require.ErrorIs(t, err, ErrEmptyVocabulary)
	require.True(t, IsEmptyCorpus(err))

	_, err = BuildFromRecipes(nil)
	require.True(t, IsEmptyCorpus(err))
}

func TestTransform_Deterministic(t *testing.T) {
	s, err := Build([]string{"tomato onion garlic", "flour sugar butter", "tomato basil"})
	require.NoError(t, err)

	a := s.Transform("garlic  TOMATO")
	b := s.Transform("garlic tomato")
	assert.Equal(t, a, b)
	assert.InDelta(t, 1.0, a.Norm(), 1e-12)
}

func TestTransform_OutOfVocabulary(t *testing.T) {
	s, err := Build([]string{"tomato onion", "flour sugar"})
	require.NoError(t, err)

	v := s.Transform("saffron quinoa")
	assert.True(t, v.IsZero())
	assert.Zero(t, Cosine(v, s.Document(0)))

	// 词表外的词项不影响词表内词项的权重
	assert.Equal(t, s.Transform("tomato"), s.Transform("tomato saffron"))
}

func TestCosine(t *testing.T) {
	s, err := Build([]string{"tomato onion garlic", "flour sugar butter", "tomato basil"})
	require.NoError(t, err)

	q := s.Transform("tomato onion garlic")
	assert.InDelta(t, 1.0, Cosine(q, s.Document(0)), 1e-12)
	assert.Zero(t, Cosine(q, s.Document(1)))

	partial := Cosine(q, s.Document(2))
	assert.Greater(t, partial, 0.0)
	assert.Less(t, partial, 1.0)

	assert.Equal(t, Vector{}, s.Document(99))
}

func TestCosineDense(t *testing.T) {
	assert.InDelta(t, 1.0, CosineDense([]float64{1, 2}, []float64{2, 4}), 1e-12)
	assert.InDelta(t, -1.0, CosineDense([]float64{1, 0}, []float64{-1, 0}), 1e-12)
	assert.Zero(t, CosineDense([]float64{0, 0}, []float64{1, 1}))
	assert.Zero(t, CosineDense([]float64{1}, []float64{1, 1}))
}
