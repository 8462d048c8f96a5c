package core

// RecommendConfig 是推荐相关的配置接口，用于提供默认值。
type RecommendConfig interface {
	// DefaultContentTopN 内容召回在饮食过滤之前截取的 TopN
	DefaultContentTopN() int

	// DefaultNeighbors 协同过滤考虑的相似用户数 k
	DefaultNeighbors() int

	// DefaultRatingThreshold 邻居评分达到该值才作为候选
	DefaultRatingThreshold() float64

	// DefaultCollaborativeLimit 协同过滤输出上限
	DefaultCollaborativeLimit() int

	// DefaultContentSlots 合并时内容结果占位数
	DefaultContentSlots() int

	// DefaultCollaborativeSlots 合并时协同结果占位数
	DefaultCollaborativeSlots() int

	// DefaultMaxResults 最终结果上限
	DefaultMaxResults() int
}

// DefaultRecommendConfig 是默认的推荐配置实现。
type DefaultRecommendConfig struct{}

func (c *DefaultRecommendConfig) DefaultContentTopN() int {
	return 10
}

func (c *DefaultRecommendConfig) DefaultNeighbors() int {
	return 2
}

func (c *DefaultRecommendConfig) DefaultRatingThreshold() float64 {
	return 4
}

func (c *DefaultRecommendConfig) DefaultCollaborativeLimit() int {
	return 10
}

func (c *DefaultRecommendConfig) DefaultContentSlots() int {
	return 3
}

func (c *DefaultRecommendConfig) DefaultCollaborativeSlots() int {
	return 2
}

func (c *DefaultRecommendConfig) DefaultMaxResults() int {
	return 5
}
