package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewRating(t *testing.T) {
	tests := []struct {
		name    string
		value   int
		wantErr bool
	}{
		{name: "lower bound", value: 1},
		{name: "upper bound", value: 5},
		{name: "zero", value: 0, wantErr: true},
		{name: "six", value: 6, wantErr: true},
		{name: "negative", value: -3, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, err := NewRating("u1", "Pasta", tt.value)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, IsInvalidInput(err))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.value, r.Value)
		})
	}
}

func TestNewRating_RequiresKey(t *testing.T) {
	_, err := NewRating("", "Pasta", 3)
	require.True(t, IsInvalidInput(err))

	_, err = NewRating("u1", "", 3)
	require.True(t, IsInvalidInput(err))
}

func TestNewPreference(t *testing.T) {
	p, err := NewPreference("u1", "Soup", false)
	require.NoError(t, err)
	require.False(t, p.Liked)

	_, err = NewPreference("u1", "", true)
	require.True(t, IsInvalidInput(err))
}

func TestParseRating(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "4", want: 4},
		{in: " 5 ", want: 5},
		{in: "0", wantErr: true},
		{in: "6", wantErr: true},
		{in: "4.5", wantErr: true},
		{in: "five", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRating(tt.in)
			if tt.wantErr {
				require.True(t, IsInvalidInput(err), "err = %v", err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestDomainError_Wrapped(t *testing.T) {
	base := errors.New("connection refused")
	err := fmt.Errorf("list ratings: %w", NewStoreUnavailable("redis", base))

	require.True(t, IsUnavailable(err))
	require.False(t, IsNotFound(err))
	require.ErrorIs(t, err, base)
	require.Equal(t, ModuleStore, GetDomainError(err).Module)
	require.False(t, IsDomainError(base))
}
