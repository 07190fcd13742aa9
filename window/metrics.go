package window

import (
	"fmt"
	"time"

	"github.com/slint-ui/slint-sub001/graphics"
	"github.com/slint-ui/slint-sub001/renderer"
)

// metricsCollector summarizes rendering activity once per second while
// its window is shown. It reads the renderer's counters on the UI
// thread after each paint.
type metricsCollector struct {
	metrics *renderer.Metrics
	active  bool

	periodStart time.Time
	baseFrames  uint64
	baseLayers  uint64
	summary     string
}

func newMetricsCollector(m *renderer.Metrics) *metricsCollector {
	return &metricsCollector{metrics: m}
}

func (c *metricsCollector) start(now time.Time) {
	if c.active {
		return
	}
	c.active = true
	c.periodStart = now
	c.baseFrames, c.baseLayers = c.metrics.Snapshot()
	c.summary = ""
}

func (c *metricsCollector) stop() {
	c.active = false
}

// frameDone records a completed paint. Once a second it logs a summary
// line and refreshes the overlay text.
func (c *metricsCollector) frameDone(now time.Time) {
	if !c.active {
		return
	}
	elapsed := now.Sub(c.periodStart)
	if elapsed < time.Second {
		return
	}
	frames, layers := c.metrics.Snapshot()
	df := frames - c.baseFrames
	dl := layers - c.baseLayers
	fps := float64(df) / elapsed.Seconds()
	c.summary = fmt.Sprintf("%.1f fps, %d layers", fps, dl)
	graphics.Logger().Debug("render stats",
		"fps", fps, "frames", df, "layers", dl)
	c.periodStart = now
	c.baseFrames, c.baseLayers = frames, layers
}

// overlayText returns the last summary line, empty before the first
// full second.
func (c *metricsCollector) overlayText() string {
	if !c.active {
		return ""
	}
	return c.summary
}
