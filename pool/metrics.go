package pool

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

// StatsSource 是可以被 Collector 采集的 pool
type StatsSource interface {
	Name() string
	Stats() Stats
}

// Collector 将一组 pool 的统计信息导出为 Prometheus 指标，label "pool" 为 pool 名称
type Collector struct {
	mu      sync.RWMutex
	sources map[string]StatsSource

	allocs   *prometheus.Desc
	bytes    *prometheus.Desc
	failures *prometheus.Desc
	large    *prometheus.Desc
	blocks   *prometheus.Desc
	resets   *prometheus.Desc
}

var _ prometheus.Collector = (*Collector)(nil)

// NewCollector 创建 Collector，namespace 为指标名前缀
func NewCollector(namespace string) *Collector {
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "pool", name), help, []string{"pool"}, nil)
	}
	return &Collector{
		sources:  make(map[string]StatsSource),
		allocs:   desc("allocations_total", "Number of successful pool allocations."),
		bytes:    desc("allocated_bytes_total", "Bytes handed out by pool allocations."),
		failures: desc("allocation_failures_total", "Number of failed pool allocations."),
		large:    desc("large_allocations_total", "Number of allocations served outside pool blocks."),
		blocks:   desc("blocks", "Number of blocks currently held by the pool."),
		resets:   desc("resets_total", "Number of pool resets."),
	}
}

// Register 添加一个 pool，同名 pool 会被替换
func (c *Collector) Register(s StatsSource) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sources[s.Name()] = s
}

// Unregister 移除指定名称的 pool
func (c *Collector) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.sources, name)
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.allocs
	ch <- c.bytes
	ch <- c.failures
	ch <- c.large
	ch <- c.blocks
	ch <- c.resets
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for name, s := range c.sources {
		st := s.Stats()
		ch <- prometheus.MustNewConstMetric(c.allocs, prometheus.CounterValue, float64(st.Allocs), name)
		ch <- prometheus.MustNewConstMetric(c.bytes, prometheus.CounterValue, float64(st.Bytes), name)
		ch <- prometheus.MustNewConstMetric(c.failures, prometheus.CounterValue, float64(st.Failures), name)
		ch <- prometheus.MustNewConstMetric(c.large, prometheus.CounterValue, float64(st.Large), name)
		ch <- prometheus.MustNewConstMetric(c.blocks, prometheus.GaugeValue, float64(st.Blocks), name)
		ch <- prometheus.MustNewConstMetric(c.resets, prometheus.CounterValue, float64(st.Resets), name)
	}
}
