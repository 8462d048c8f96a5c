package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// 写入结果。
const (
	resultOK       = "ok"
	resultInvalid  = "invalid"
	resultNotFound = "not_found"
	resultError    = "error"
)

// Metrics 是引擎的 Prometheus 指标，注册在调用方提供的 Registerer 上。
type Metrics struct {
	// Recommendations 按来源统计返回的推荐条数
	Recommendations *prometheus.CounterVec

	// Duration 单次推荐耗时
	Duration prometheus.Histogram

	// CollaborativeDegraded 协同分支失败并降级为空的次数
	CollaborativeDegraded prometheus.Counter

	// Writes 按类型（like / feedback）与结果统计写入
	Writes *prometheus.CounterVec
}

// NewMetrics 在 reg 上注册指标；reg 为 nil 时使用独立的 Registry。
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	f := promauto.With(reg)
	return &Metrics{
		Recommendations: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecochef_recommendations_total",
				Help: "Total number of recommended recipes by source",
			},
			[]string{"source"},
		),
		Duration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "ecochef_recommend_duration_seconds",
			Help:    "Duration of recommend calls in seconds",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}),
		CollaborativeDegraded: f.NewCounter(prometheus.CounterOpts{
			Name: "ecochef_collaborative_degraded_total",
			Help: "Total number of requests where the collaborative branch failed and was dropped",
		}),
		Writes: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ecochef_writes_total",
				Help: "Total number of preference and rating writes by outcome",
			},
			[]string{"kind", "result"},
		),
	}
}

func (m *Metrics) recordWrite(kind string, err error) {
	m.Writes.WithLabelValues(kind, writeResult(err)).Inc()
}
