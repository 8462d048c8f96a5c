package corpus

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/rushteam/ecochef/core"
)

// CSV 列名，与清洗后的数据集一致。
const (
	ColumnTitle        = "Title"
	ColumnIngredients  = "Ingredients"
	ColumnInstructions = "Instructions"
	ColumnDietaryTags  = "Dietary_Tags"
	ColumnImageURL     = "Image_URL"
)

// Load 按扩展名从文件加载语料库：.csv 或 .json。
// 文件不可读返回 UNAVAILABLE，格式错误返回 INVALID_INPUT。
func Load(path string) (*Corpus, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, core.WrapDomainError(core.ModuleCorpus, core.ErrorCodeUnavailable, "corpus: open "+path, err)
	}
	defer f.Close()

	var recipes []core.Recipe
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".csv":
		recipes, err = ReadCSV(f)
	case ".json":
		recipes, err = ReadJSON(f)
	default:
		return nil, core.NewDomainError(core.ModuleCorpus, core.ErrorCodeNotSupported, "corpus: unsupported file type "+ext)
	}
	if err != nil {
		return nil, err
	}
	return New(recipes), nil
}

// ReadCSV 读取带表头的 CSV。Title 与 Ingredients 列必须存在，其余列可缺省。
// Ingredients / Dietary_Tags 为列表字面量；缺失的标签视为无标签。
func ReadCSV(r io.Reader) ([]core.Recipe, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, invalidInput("read csv header", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))] = i
	}
	for _, required := range []string{ColumnTitle, ColumnIngredients} {
		if _, ok := cols[strings.ToLower(required)]; !ok {
			return nil, core.NewDomainError(core.ModuleCorpus, core.ErrorCodeInvalidInput, "corpus: missing column "+required)
		}
	}
	field := func(row []string, name string) string {
		i, ok := cols[strings.ToLower(name)]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var recipes []core.Recipe
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, invalidInput(fmt.Sprintf("read csv line %d", line), err)
		}

		ingredients, err := ParseList(field(row, ColumnIngredients))
		if err != nil {
			return nil, invalidInput(fmt.Sprintf("line %d %s", line, ColumnIngredients), err)
		}
		if len(ingredients) == 0 {
			continue
		}
		tags, err := ParseList(field(row, ColumnDietaryTags))
		if err != nil {
			return nil, invalidInput(fmt.Sprintf("line %d %s", line, ColumnDietaryTags), err)
		}

		recipes = append(recipes, core.Recipe{
			Title:        field(row, ColumnTitle),
			Ingredients:  ingredients,
			Instructions: field(row, ColumnInstructions),
			DietaryTags:  tags,
			ImageURL:     field(row, ColumnImageURL),
		})
	}
	return recipes, nil
}

// ReadJSON 读取菜谱数组（字段名同 core.Recipe 的 json tag）。
func ReadJSON(r io.Reader) ([]core.Recipe, error) {
	var recipes []core.Recipe
	if err := json.NewDecoder(r).Decode(&recipes); err != nil {
		return nil, invalidInput("decode json", err)
	}
	return recipes, nil
}

func invalidInput(msg string, err error) error {
	return core.WrapDomainError(core.ModuleCorpus, core.ErrorCodeInvalidInput, "corpus: "+msg, err)
}
