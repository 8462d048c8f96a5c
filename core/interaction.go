package core

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 评分取值范围。
const (
	MinRating = 1
	MaxRating = 5
)

var validate = validator.New()

// Preference 是用户对菜谱的喜欢/不喜欢记录。
// 键为 (UserID, RecipeTitle)，写入语义为 upsert（同键后写覆盖先写）。
type Preference struct {
	UserID      string `json:"user_id" validate:"required"`
	RecipeTitle string `json:"recipe_title" validate:"required"`
	Liked       bool   `json:"liked"`
}

// Rating 是用户对菜谱的评分记录，Value ∈ [1,5]。
// 键为 (UserID, RecipeTitle)，写入语义为 upsert。
type Rating struct {
	UserID      string `json:"user_id" validate:"required"`
	RecipeTitle string `json:"recipe_title" validate:"required"`
	Value       int    `json:"rating" validate:"min=1,max=5"`
}

// NewPreference 构造并校验 Preference。
func NewPreference(userID, recipeTitle string, liked bool) (Preference, error) {
	p := Preference{UserID: userID, RecipeTitle: recipeTitle, Liked: liked}
	if err := validate.Struct(p); err != nil {
		return Preference{}, WrapDomainError(ModuleEngine, ErrorCodeInvalidInput, "invalid preference", err)
	}
	return p, nil
}

// NewRating 构造并校验 Rating，评分不在 [1,5] 时返回 INVALID_INPUT。
func NewRating(userID, recipeTitle string, value int) (Rating, error) {
	r := Rating{UserID: userID, RecipeTitle: recipeTitle, Value: value}
	if err := r.Validate(); err != nil {
		return Rating{}, err
	}
	return r, nil
}

// Validate 校验评分记录。
func (r Rating) Validate() error {
	if err := validate.Struct(r); err != nil {
		return WrapDomainError(ModuleEngine, ErrorCodeInvalidInput,
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating), err)
	}
	return nil
}

// ParseRating 将外部输入（如 CLI 参数）解析为整数评分；非整数或越界都返回 INVALID_INPUT。
func ParseRating(s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, WrapDomainError(ModuleEngine, ErrorCodeInvalidInput, "rating must be an integer", err)
	}
	if v < MinRating || v > MaxRating {
		return 0, NewDomainError(ModuleEngine, ErrorCodeInvalidInput,
			fmt.Sprintf("rating must be between %d and %d", MinRating, MaxRating))
	}
	return v, nil
}

// PreferenceStore 是偏好存储的领域接口：支持 upsert 与全量枚举。
type PreferenceStore interface {
	UpsertPreference(ctx context.Context, p Preference) error
	ListPreferences(ctx context.Context) ([]Preference, error)
}

// RatingStore 是评分存储的领域接口：支持 upsert 与全量枚举。
// 实现方不需要再次校验取值范围，校验在写入之前完成。
type RatingStore interface {
	UpsertRating(ctx context.Context, r Rating) error
	ListRatings(ctx context.Context) ([]Rating, error)
}
