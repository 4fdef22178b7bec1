package hardware

import "sync"

// NopIO records output values without touching hardware. It is used when
// GPIO indicators are disabled.
type NopIO struct {
	mu       sync.Mutex
	outputs  map[string]bool
	cleanups int
}

func NewNopIO() *NopIO {
	return &NopIO{outputs: make(map[string]bool)}
}

func (n *NopIO) Initialize() error { return nil }

// Cleanup drives every output low.
func (n *NopIO) Cleanup() {
	n.mu.Lock()
	defer n.mu.Unlock()
	for channel := range n.outputs {
		n.outputs[channel] = false
	}
	n.cleanups++
}

// Cleanups reports how many times Cleanup has run.
func (n *NopIO) Cleanups() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cleanups
}

func (n *NopIO) WriteDigitalOutput(channel string, value bool) error {
	n.mu.Lock()
	n.outputs[channel] = value
	n.mu.Unlock()
	return nil
}

// Output returns the last value written to channel.
func (n *NopIO) Output(channel string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.outputs[channel]
}
