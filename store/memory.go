package store

import (
	"context"
	"sync"

	"github.com/rushteam/ecochef/core"
)

// MemoryStore 是内存实现的 KeyValueStore，用于测试/开发/原型，进程重启后数据丢失。
// 读写都复制字节切片，调用方可以安全地修改返回值。
type MemoryStore struct {
	mu     sync.RWMutex
	hashes map[string]map[string][]byte // hash key -> field -> value
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{hashes: make(map[string]map[string][]byte)}
}

func (m *MemoryStore) Name() string { return "memory" }

func (m *MemoryStore) HSet(_ context.Context, key, field string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	h, ok := m.hashes[key]
	if !ok {
		h = make(map[string][]byte)
		m.hashes[key] = h
	}
	h[field] = copyBytes(value)
	return nil
}

func (m *MemoryStore) HGetAll(_ context.Context, key string) (map[string][]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	h := m.hashes[key]
	result := make(map[string][]byte, len(h))
	for f, v := range h {
		result[f] = copyBytes(v)
	}
	return result, nil
}

func (m *MemoryStore) Close() error {
	return nil
}

var _ core.KeyValueStore = (*MemoryStore)(nil)
