package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeLabel(t *testing.T) {
	tests := []struct {
		name     string
		existing Label
		incoming Label
		want     Label
	}{
		{
			name:     "empty existing",
			existing: Label{},
			incoming: NewLabel("Content-Based", "recall"),
			want:     NewLabel("Content-Based", "recall"),
		},
		{
			name:     "empty incoming",
			existing: NewLabel("true", "filter.dietary"),
			incoming: Label{},
			want:     NewLabel("true", "filter.dietary"),
		},
		{
			name:     "accumulate",
			existing: NewLabel("Content-Based", "recall"),
			incoming: NewLabel("Collaborative", "merge"),
			want:     NewLabel("Content-Based|Collaborative", "recall,merge"),
		},
		{
			name:     "missing source",
			existing: NewLabel("a", ""),
			incoming: NewLabel("b", "merge"),
			want:     NewLabel("a|b", "merge"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeLabel(tt.existing, tt.incoming))
		})
	}
}
