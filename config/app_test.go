package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rushteam/ecochef/core"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ecochef.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, BackendBadger, cfg.Store.Backend)
	require.Equal(t, "recipes.csv", cfg.Corpus.Path)

	var rc core.RecommendConfig = cfg.Recommend
	require.Equal(t, 10, rc.DefaultContentTopN())
	require.Equal(t, 2, rc.DefaultNeighbors())
	require.Equal(t, 4.0, rc.DefaultRatingThreshold())
	require.Equal(t, 10, rc.DefaultCollaborativeLimit())
	require.Equal(t, 3, rc.DefaultContentSlots())
	require.Equal(t, 2, rc.DefaultCollaborativeSlots())
	require.Equal(t, 5, rc.DefaultMaxResults())
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
corpus:
  path: data/recipes.json
store:
  backend: memory
  breaker_enabled: true
  breaker:
    timeout: 10s
recommend:
  content_top_n: 20
  max_results: 8
  dedup: true
log:
  level: debug
  format: console
`)
	t.Setenv("ECOCHEF_RECOMMEND_NEIGHBORS", "3")
	t.Setenv("ECOCHEF_STORE_BACKEND", "redis")
	t.Setenv("ECOCHEF_STORE_REDIS_ADDR", "redis:6380")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "data/recipes.json", cfg.Corpus.Path)
	require.Equal(t, BackendRedis, cfg.Store.Backend)
	require.Equal(t, "redis:6380", cfg.Store.Redis.Addr)
	require.True(t, cfg.Store.BreakerEnabled)
	require.Equal(t, 10*time.Second, cfg.Store.Breaker.Timeout)
	require.Equal(t, "debug", cfg.Log.Level)

	require.Equal(t, 20, cfg.Recommend.DefaultContentTopN())
	require.Equal(t, 3, cfg.Recommend.DefaultNeighbors())
	require.Equal(t, 8, cfg.Recommend.DefaultMaxResults())
	require.True(t, cfg.Recommend.Dedup)
}

func TestLoad_EnvNames(t *testing.T) {
	path := writeConfig(t, `
corpus:
  path: data/recipes.csv
store:
  backend: badger
  badger:
    path: /var/lib/ecochef
`)
	t.Setenv("PATH", "/usr/local/bin:/usr/bin")
	t.Setenv("LEVEL", "trace")
	t.Setenv("FORMAT", "console")
	t.Setenv("BACKEND", "redis")
	t.Setenv("ADDR", "elsewhere:1")
	t.Setenv("NEIGHBORS", "9")
	t.Setenv("ECOCHEF_RECOMMEND_CONTENT_TOP_N", "15")
	t.Setenv("ECOCHEF_RECOMMEND_RATING_THRESHOLD", "3.5")
	t.Setenv("ECOCHEF_STORE_KEY_PREFIX", "staging")
	t.Setenv("ECOCHEF_STORE_BREAKER_CONSECUTIVE_FAILURES", "7")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "data/recipes.csv", cfg.Corpus.Path)
	require.Equal(t, "/var/lib/ecochef", cfg.Store.Badger.Path)
	require.Equal(t, BackendBadger, cfg.Store.Backend)
	require.Equal(t, "localhost:6379", cfg.Store.Redis.Addr)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	require.Equal(t, 2, cfg.Recommend.Neighbors)

	require.Equal(t, 15, cfg.Recommend.ContentTopN)
	require.Equal(t, 3.5, cfg.Recommend.RatingThreshold)
	require.Equal(t, "staging", cfg.Store.KeyPrefix)
	require.Equal(t, uint32(7), cfg.Store.Breaker.ConsecutiveFailures)

	t.Setenv("ECOCHEF_CORPUS_PATH", "other.json")
	t.Setenv("ECOCHEF_LOG_LEVEL", "warn")
	t.Setenv("ECOCHEF_STORE_BADGER_IN_MEMORY", "true")
	cfg, err = Load(path)
	require.NoError(t, err)
	require.Equal(t, "other.json", cfg.Corpus.Path)
	require.Equal(t, "warn", cfg.Log.Level)
	require.True(t, cfg.Store.Badger.InMemory)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "unknown backend", body: "store:\n  backend: mongo\n"},
		{name: "bad log level", body: "log:\n  level: loud\n"},
		{name: "negative slots", body: "recommend:\n  content_slots: -1\n"},
		{name: "zero slots", body: "recommend:\n  collaborative_slots: 0\n"},
		{name: "threshold out of range", body: "recommend:\n  rating_threshold: 6\n"},
		{name: "threshold zero", body: "recommend:\n  rating_threshold: 0\n"},
		{name: "zero threshold from env", body: "", env: map[string]string{"ECOCHEF_RECOMMEND_RATING_THRESHOLD": "0"}},
		{name: "empty corpus", body: "corpus:\n  path: \"\"\n"},
		{name: "redis without addr", body: "store:\n  backend: redis\n  redis:\n    addr: \"\"\n"},
		{name: "badger without path", body: "store:\n  badger:\n    path: \"\"\n"},
		{name: "bad env", body: "", env: map[string]string{"ECOCHEF_RECOMMEND_MAX_RESULTS": "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			require.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.ErrorContains(t, err, "read config")
}
