package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/rushteam/ecochef/core"
)

// Hash 字段的 key 布局："{key}\x00{field}"。
// Hash key 本身不能包含 \x00，field 可以。

// BadgerConfig 是嵌入式存储配置。
type BadgerConfig struct {
	// Path 数据目录，InMemory 为 true 时忽略
	Path string `yaml:"path"`

	// InMemory 纯内存模式，测试用
	InMemory bool `yaml:"in_memory" split_words:"true"`
}

// BadgerStore 是基于 badger/v4 的嵌入式持久化 KeyValueStore。
// 单机 CLI 默认使用，进程重启后偏好与评分仍然保留。
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore 打开（或创建）badger 数据库。
func OpenBadgerStore(cfg BadgerConfig) (*BadgerStore, error) {
	opts := badger.DefaultOptions(cfg.Path).WithLogger(nil)
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, core.NewStoreUnavailable("badger", err)
	}
	return &BadgerStore{db: db}, nil
}

// NewBadgerStore 基于已打开的 DB 创建，生命周期由调用方管理时使用。
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

func (b *BadgerStore) Name() string { return "badger" }

func (b *BadgerStore) HSet(ctx context.Context, key, field string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	err := b.db.Update(func(txn *badger.Txn) error {
		return txn.Set(hashField(key, field), copyBytes(value))
	})
	return wrapBadger(err)
}

// HGetAll 通过前缀扫描枚举整个 Hash。
func (b *BadgerStore) HGetAll(ctx context.Context, key string) (map[string][]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	prefix := hashPrefix(key)
	result := make(map[string][]byte)
	err := b.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			val, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			result[string(item.Key()[len(prefix):])] = val
		}
		return nil
	})
	if err != nil {
		return nil, wrapBadger(err)
	}
	return result, nil
}

func (b *BadgerStore) Close() error {
	return b.db.Close()
}

func hashPrefix(key string) []byte {
	return []byte(key + "\x00")
}

func hashField(key, field string) []byte {
	return []byte(key + "\x00" + field)
}

func wrapBadger(err error) error {
	if err == nil {
		return nil
	}
	return core.NewStoreUnavailable("badger", err)
}

var _ core.KeyValueStore = (*BadgerStore)(nil)
