package recall

import (
	"context"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rushteam/ecochef/core"
)

// StoreInteractionAdapter 是基于 core.KeyValueStore 的偏好/评分存储适配器。
// 同时实现 core.PreferenceStore 与 core.RatingStore，后端可以是 Memory / Badger / Redis。
//
// 存储布局（Hash）：
//   - 偏好：{KeyPrefix}:preferences，field = {userID}\x00{title}，value = JSON(core.Preference)
//   - 评分：{KeyPrefix}:ratings，    field = {userID}\x00{title}，value = JSON(core.Rating)
//
// HSet 天然是 upsert 语义：同一 (user, title) 后写覆盖先写。
type StoreInteractionAdapter struct {
	store core.KeyValueStore

	// KeyPrefix 是存储 key 的前缀，默认 "ecochef"
	KeyPrefix string
}

// NewStoreInteractionAdapter 创建适配器。
func NewStoreInteractionAdapter(s core.KeyValueStore, keyPrefix string) *StoreInteractionAdapter {
	if keyPrefix == "" {
		keyPrefix = "ecochef"
	}
	return &StoreInteractionAdapter{
		store:     s,
		KeyPrefix: keyPrefix,
	}
}

func (a *StoreInteractionAdapter) Name() string {
	return "store_interaction_adapter"
}

func (a *StoreInteractionAdapter) preferencesKey() string { return a.KeyPrefix + ":preferences" }
func (a *StoreInteractionAdapter) ratingsKey() string     { return a.KeyPrefix + ":ratings" }

func interactionField(userID, title string) string {
	return userID + "\x00" + title
}

func (a *StoreInteractionAdapter) UpsertPreference(ctx context.Context, p core.Preference) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	if err := a.store.HSet(ctx, a.preferencesKey(), interactionField(p.UserID, p.RecipeTitle), data); err != nil {
		return asUnavailable(a.store.Name(), err)
	}
	return nil
}

// ListPreferences 全量枚举偏好，按 (user, title) 排序保证结果稳定。
func (a *StoreInteractionAdapter) ListPreferences(ctx context.Context) ([]core.Preference, error) {
	return listRecords[core.Preference](ctx, a.store, a.preferencesKey())
}

func (a *StoreInteractionAdapter) UpsertRating(ctx context.Context, r core.Rating) error {
	data, err := json.Marshal(r)
	if err != nil {
		return err
	}
	if err := a.store.HSet(ctx, a.ratingsKey(), interactionField(r.UserID, r.RecipeTitle), data); err != nil {
		return asUnavailable(a.store.Name(), err)
	}
	return nil
}

// ListRatings 全量枚举评分，按 (user, title) 排序保证结果稳定。
func (a *StoreInteractionAdapter) ListRatings(ctx context.Context) ([]core.Rating, error) {
	return listRecords[core.Rating](ctx, a.store, a.ratingsKey())
}

func listRecords[T any](ctx context.Context, s core.KeyValueStore, key string) ([]T, error) {
	raw, err := s.HGetAll(ctx, key)
	if err != nil {
		return nil, asUnavailable(s.Name(), err)
	}

	fields := make([]string, 0, len(raw))
	for f := range raw {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]T, 0, len(fields))
	for _, f := range fields {
		var rec T
		if err := json.Unmarshal(raw[f], &rec); err != nil {
			return nil, core.WrapDomainError(core.ModuleStore, core.ErrorCodeInternalError,
				"store: corrupt record "+strings.ReplaceAll(f, "\x00", "/")+" in "+key, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// SeedInteractions 辅助函数：批量写入偏好与评分，用于测试与数据导入。
func SeedInteractions(ctx context.Context, a *StoreInteractionAdapter, prefs []core.Preference, ratings []core.Rating) error {
	for _, p := range prefs {
		if err := a.UpsertPreference(ctx, p); err != nil {
			return err
		}
	}
	for _, r := range ratings {
		if err := a.UpsertRating(ctx, r); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ core.PreferenceStore = (*StoreInteractionAdapter)(nil)
	_ core.RatingStore     = (*StoreInteractionAdapter)(nil)
)
