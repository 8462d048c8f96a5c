// Package store 提供 core.KeyValueStore 的实现：
//   - MemoryStore：进程内存，测试/开发用
//   - BadgerStore：嵌入式持久化（badger/v4），单机 CLI 默认后端
//   - RedisStore：生产环境共享存储
//   - BreakerStore：为任意后端加上熔断，后端持续失败时快速返回 UNAVAILABLE
//
// 接口定义在 core 包，此包只包含实现。
//
// 示例：
//
//	var kv core.KeyValueStore = store.NewMemoryStore()
//	kv = store.NewBreakerStore(kv, store.BreakerConfig{}, logger)
package store

func copyBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
