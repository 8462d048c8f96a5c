package pipeline

import (
	"context"
	"fmt"

	"github.com/rushteam/ecochef/core"
)

// Pipeline 把一条推荐分支拆成可组合的 Node 链，上一个 Node 的输出作为下一个的输入。
type Pipeline struct {
	Nodes []Node
}

// Append 在链尾追加 Node，返回自身便于链式组装。
func (p *Pipeline) Append(nodes ...Node) *Pipeline {
	p.Nodes = append(p.Nodes, nodes...)
	return p
}

func (p *Pipeline) Run(
	ctx context.Context,
	rctx *core.RecommendContext,
	items []*core.Item,
) ([]*core.Item, error) {
	cur := items
	for _, node := range p.Nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		next, err := node.Process(ctx, rctx, cur)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", node.Name(), err)
		}
		cur = next
	}
	return cur, nil
}
