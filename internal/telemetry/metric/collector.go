package metric

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/kernbench-go/internal/infra/buildinfo"
)

// Collector reports a constant build_info series labelled with the binary
// version and the host the measurements come from.
type Collector struct {
	desc *prometheus.Desc
	info buildinfo.Info
}

// NewCollector creates a build info collector.
func NewCollector() *Collector {
	return &Collector{
		desc: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "build_info"),
			"Build and host information, value is always 1",
			[]string{"version", "commit", "go_version", "os", "arch", "num_cpu"},
			nil,
		),
		info: buildinfo.Get(),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.desc
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(c.desc, prometheus.GaugeValue, 1,
		c.info.Version,
		c.info.Commit,
		c.info.GoVersion,
		c.info.OS,
		c.info.Arch,
		strconv.Itoa(c.info.NumCPU),
	)
}
