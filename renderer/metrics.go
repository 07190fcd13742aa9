package renderer

// Metrics counts rendering work per window. The counters are owned by
// the UI thread; readers on the same thread see consistent values.
type Metrics struct {
	frames uint64
	layers uint64
}

// NewMetrics creates a zeroed metrics recorder.
func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) frameRendered() {
	if m != nil {
		m.frames++
	}
}

func (m *Metrics) layerCreated() {
	if m != nil {
		m.layers++
	}
}

// Snapshot returns the total number of frames rendered and offscreen
// layers created so far.
func (m *Metrics) Snapshot() (frames, layers uint64) {
	if m == nil {
		return 0, 0
	}
	return m.frames, m.layers
}
