package recall

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/rushteam/ecochef/core"
	"github.com/rushteam/ecochef/pipeline"
	"github.com/rushteam/ecochef/pkg/utils"
	"github.com/rushteam/ecochef/rerank"
)

// Hybrid 是一个 Recall Node：并发执行内容分支与协同分支，再按固定策略合并。
//
// 合并策略：
//   - 先取内容结果前 ContentSlots 条（默认 3），再取协同结果前 CollaborativeSlots 条（默认 2）
//   - 截断到 MaxResults（默认 5）
//   - 一方不足时不用另一方补位；默认不跨来源去重（Dedup 为 true 时按标题去重）
//
// 错误处理：内容分支失败则整个请求失败；协同分支失败只降级为空列表，
// 并通过 OnCollaborativeError 通知调用方（日志/指标）。
type Hybrid struct {
	Content       Source
	Collaborative Source

	ContentSlots       int
	CollaborativeSlots int
	MaxResults         int

	Dedup bool

	// OnCollaborativeError 协同分支失败时回调（可选）
	OnCollaborativeError func(err error)
}

func (n *Hybrid) Name() string        { return "recall.hybrid" }
func (n *Hybrid) Kind() pipeline.Kind { return pipeline.KindRecall }

func (n *Hybrid) Process(
	ctx context.Context,
	rctx *core.RecommendContext,
	_ []*core.Item,
) ([]*core.Item, error) {
	var content, collaborative []*core.Item

	// 两个分支各自写各自的变量，没有共享的可变状态
	eg, egCtx := errgroup.WithContext(ctx)
	if n.Content != nil {
		eg.Go(func() error {
			items, err := n.Content.Recall(egCtx, rctx)
			if err != nil {
				return err
			}
			content = items
			return nil
		})
	}
	if n.Collaborative != nil {
		eg.Go(func() error {
			items, err := n.Collaborative.Recall(egCtx, rctx)
			if err != nil {
				if n.OnCollaborativeError != nil {
					n.OnCollaborativeError(err)
				}
				return nil
			}
			collaborative = items
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	merged := MergeHybrid(content, collaborative,
		orDefault(n.ContentSlots, 3), orDefault(n.CollaborativeSlots, 2), orDefault(n.MaxResults, 5))
	if n.Dedup {
		return (&rerank.Dedup{}).Process(ctx, rctx, merged)
	}
	return merged, nil
}

// MergeHybrid 取 content 前 contentSlots 条与 collaborative 前 collaborativeSlots 条，
// 依次拼接后截断到 maxResults。每条结果都会被复制并重新标记来源，不修改输入。
func MergeHybrid(content, collaborative []*core.Item, contentSlots, collaborativeSlots, maxResults int) []*core.Item {
	out := make([]*core.Item, 0, contentSlots+collaborativeSlots)
	out = appendTagged(out, content, contentSlots, core.SourceContentBased)
	out = appendTagged(out, collaborative, collaborativeSlots, core.SourceCollaborative)

	truncated, _ := (&rerank.TopNNode{N: maxResults}).Process(context.Background(), nil, out)
	return truncated
}

func appendTagged(out, items []*core.Item, slots int, source string) []*core.Item {
	taken := 0
	for _, it := range items {
		if taken >= slots {
			break
		}
		if it == nil {
			continue
		}
		c := it.Clone()
		c.SetLabel(core.LabelRecallSource, utils.NewLabel(source, "merge"))
		out = append(out, c)
		taken++
	}
	return out
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
