package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/pkg/logs"
	"github.com/rushteam/ecochef/store"
)

// EnvPrefix 是环境变量前缀，例如 ECOCHEF_STORE_BACKEND=redis。
const EnvPrefix = "ECOCHEF"

// 存储后端。
const (
	BackendMemory = "memory"
	BackendBadger = "badger"
	BackendRedis  = "redis"
)

// App 是应用配置。加载顺序：默认值 -> YAML 文件 -> .env / 环境变量，最后校验。
//
// 环境变量名由字段路径推导，全部带 ECOCHEF_ 前缀，例如 ECOCHEF_CORPUS_PATH、
// ECOCHEF_STORE_REDIS_ADDR、ECOCHEF_RECOMMEND_CONTENT_TOP_N。不带前缀的同名变量（PATH 等）不会被读取。
type App struct {
	Corpus    CorpusConfig    `yaml:"corpus"`
	Store     StoreConfig     `yaml:"store"`
	Recommend RecommendConfig `yaml:"recommend"`
	Log       logs.Config     `yaml:"log"`

	// Pipeline 内容分支后处理链的配置文件（可选），见 pipeline.Config
	Pipeline string `yaml:"pipeline"`
}

// CorpusConfig 是语料库配置。
type CorpusConfig struct {
	// Path 语料文件（.csv / .json）
	Path string `yaml:"path" validate:"required"`
}

// StoreConfig 是偏好/评分存储配置。
type StoreConfig struct {
	Backend   string `yaml:"backend" validate:"oneof=memory badger redis"`
	KeyPrefix string `yaml:"key_prefix" split_words:"true"`

	Badger store.BadgerConfig `yaml:"badger"`
	Redis  store.RedisConfig  `yaml:"redis"`

	// BreakerEnabled 为所选后端（任意一种）包上熔断
	BreakerEnabled bool                `yaml:"breaker_enabled" split_words:"true"`
	Breaker        store.BreakerConfig `yaml:"breaker"`
}

// RecommendConfig 是推荐参数，实现 core.RecommendConfig。
// Default() 给出全部默认值；显式配置的值必须为正数。
type RecommendConfig struct {
	ContentTopN        int     `yaml:"content_top_n" split_words:"true" validate:"gt=0"`
	Neighbors          int     `yaml:"neighbors" validate:"gt=0"`
	RatingThreshold    float64 `yaml:"rating_threshold" split_words:"true" validate:"gt=0,lte=5"`
	CollaborativeLimit int     `yaml:"collaborative_limit" split_words:"true" validate:"gt=0"`
	ContentSlots       int     `yaml:"content_slots" split_words:"true" validate:"gt=0"`
	CollaborativeSlots int     `yaml:"collaborative_slots" split_words:"true" validate:"gt=0"`
	MaxResults         int     `yaml:"max_results" split_words:"true" validate:"gt=0"`

	// Dedup 合并时按标题跨来源去重，默认关闭
	Dedup bool `yaml:"dedup"`
}

var defaults = &core.DefaultRecommendConfig{}

func (c RecommendConfig) DefaultContentTopN() int {
	return positiveOr(c.ContentTopN, defaults.DefaultContentTopN())
}

func (c RecommendConfig) DefaultNeighbors() int {
	return positiveOr(c.Neighbors, defaults.DefaultNeighbors())
}

func (c RecommendConfig) DefaultRatingThreshold() float64 {
	if c.RatingThreshold > 0 {
		return c.RatingThreshold
	}
	return defaults.DefaultRatingThreshold()
}

func (c RecommendConfig) DefaultCollaborativeLimit() int {
	return positiveOr(c.CollaborativeLimit, defaults.DefaultCollaborativeLimit())
}

func (c RecommendConfig) DefaultContentSlots() int {
	return positiveOr(c.ContentSlots, defaults.DefaultContentSlots())
}

func (c RecommendConfig) DefaultCollaborativeSlots() int {
	return positiveOr(c.CollaborativeSlots, defaults.DefaultCollaborativeSlots())
}

func (c RecommendConfig) DefaultMaxResults() int {
	return positiveOr(c.MaxResults, defaults.DefaultMaxResults())
}

var _ core.RecommendConfig = RecommendConfig{}

func positiveOr(v, def int) int {
	if v > 0 {
		return v
	}
	return def
}

// Default 返回默认配置：本地 badger 存储与 json 日志，推荐参数取 core.DefaultRecommendConfig。
func Default() App {
	return App{
		Corpus: CorpusConfig{Path: "recipes.csv"},
		Store: StoreConfig{
			Backend:   BackendBadger,
			KeyPrefix: "ecochef",
			Badger:    store.BadgerConfig{Path: ".ecochef"},
			Redis:     store.RedisConfig{Addr: "localhost:6379"},
		},
		Recommend: RecommendConfig{
			ContentTopN:        defaults.DefaultContentTopN(),
			Neighbors:          defaults.DefaultNeighbors(),
			RatingThreshold:    defaults.DefaultRatingThreshold(),
			CollaborativeLimit: defaults.DefaultCollaborativeLimit(),
			ContentSlots:       defaults.DefaultContentSlots(),
			CollaborativeSlots: defaults.DefaultCollaborativeSlots(),
			MaxResults:         defaults.DefaultMaxResults(),
		},
		Log: logs.Config{Level: "info", Format: "json"},
	}
}

// Load 加载配置。path 为空时跳过 YAML；当前目录下的 .env 存在时先加载。
func Load(path string) (*App, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
	}
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("process env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate 校验配置。
func (c *App) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	switch c.Store.Backend {
	case BackendRedis:
		if c.Store.Redis.Addr == "" {
			return errors.New("invalid config: store.redis.addr is required for redis backend")
		}
	case BackendBadger:
		if c.Store.Badger.Path == "" && !c.Store.Badger.InMemory {
			return errors.New("invalid config: store.badger.path is required for badger backend")
		}
	}
	return nil
}
