package conv

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigGet(t *testing.T) {
	cfg := map[string]any{"tag": "vegan", "invert": true, "n": 3}

	require.Equal(t, "vegan", ConfigGet(cfg, "tag", ""))
	require.True(t, ConfigGet(cfg, "invert", false))
	require.Equal(t, "x", ConfigGet(cfg, "missing", "x"))
	// 类型不符回落到默认值
	require.Equal(t, "d", ConfigGet(cfg, "n", "d"))
	require.Equal(t, 7, ConfigGet[int](nil, "n", 7))
}

func TestConfigGetInt64(t *testing.T) {
	cfg := map[string]any{"a": 5, "b": 2.0, "c": int64(9), "d": "3"}

	require.EqualValues(t, 5, ConfigGetInt64(cfg, "a", 0))
	require.EqualValues(t, 2, ConfigGetInt64(cfg, "b", 0))
	require.EqualValues(t, 9, ConfigGetInt64(cfg, "c", 0))
	require.EqualValues(t, 1, ConfigGetInt64(cfg, "d", 1))
	require.EqualValues(t, 4, ConfigGetInt64(nil, "a", 4))
}

func TestSliceAnyToMap(t *testing.T) {
	v := []any{map[string]any{"type": "dietary"}, "skip", map[string]any{"type": "expr"}}
	got := SliceAnyToMap(v)
	require.Len(t, got, 2)
	require.Equal(t, "expr", got[1]["type"])

	require.Nil(t, SliceAnyToMap("nope"))
}

func TestRequireString(t *testing.T) {
	s, err := RequireString(map[string]any{"expr": "true"}, "expr")
	require.NoError(t, err)
	require.Equal(t, "true", s)

	_, err = RequireString(map[string]any{"expr": ""}, "expr")
	require.EqualError(t, err, "expr is required")
}
