package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// WriteToTextfile writes the collector's registry to path in the Prometheus
// text exposition format. The file is written atomically so a concurrent
// node_exporter scrape never sees a partial file.
func (c *Collector) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %q: %w", path, err)
	}
	return nil
}
