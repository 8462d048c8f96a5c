package core

import "context"

// Store 是存储的领域接口。
//
// 设计原则：
//   - 定义在领域层（core），由基础设施层（store）实现
//   - 遵循依赖倒置原则：领域层定义接口，基础设施层实现接口
//   - 避免循环依赖：领域层不依赖基础设施层
//
// 实现：
//   - store.MemoryStore 实现此接口
//   - store.RedisStore 实现此接口
//   - store.BadgerStore 实现此接口
type Store interface {
	// Name 返回存储后端名称（用于日志/监控）
	Name() string

	// Close 关闭连接/释放资源
	Close() error
}

// KeyValueStore 是以哈希表（Hash）为单位的存储接口。
//
// 偏好与评分都以 Hash 存储：一个 Hash 对应一类记录，field 为 (user, recipe) 组合键，
// HSet 天然是 upsert 语义，HGetAll 提供全量枚举（矩阵按请求全量构建）。
type KeyValueStore interface {
	Store

	// HSet 写入 Hash 字段（upsert）
	HSet(ctx context.Context, key, field string, value []byte) error

	// HGetAll 读取整个 Hash（全量枚举）；Hash 不存在时返回空 map
	HGetAll(ctx context.Context, key string) (map[string][]byte, error)
}

// NewStoreUnavailable 把后端错误包装为 UNAVAILABLE 领域错误。
func NewStoreUnavailable(backend string, err error) *DomainError {
	return WrapDomainError(ModuleStore, ErrorCodeUnavailable, "store: "+backend+" unavailable", err)
}
