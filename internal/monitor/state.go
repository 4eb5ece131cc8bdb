package monitor

// ItemState is the last observed listing identity for one monitored GPU.
// Pending means an identity change was seen but not yet confirmed
// purchasable. Invariant: Pending implies LastKnownSKU != "".
type ItemState struct {
	LastKnownSKU string
	Pending      bool
}

// Tracker owns per-GPU state for the process lifetime. It is only touched
// from the sequential poll loop, so it carries no locking.
type Tracker struct {
	states map[string]*ItemState
}

// NewTracker creates one empty entry per monitored GPU.
func NewTracker(gpus []string) *Tracker {
	states := make(map[string]*ItemState, len(gpus))
	for _, gpu := range gpus {
		states[gpu] = &ItemState{}
	}
	return &Tracker{states: states}
}

// State returns a copy of the GPU's state; unknown GPUs read as the zero state.
func (t *Tracker) State(gpu string) ItemState {
	if st, ok := t.states[gpu]; ok {
		return *st
	}
	return ItemState{}
}

// RecordSKU stores a newly observed identity and marks it pending.
func (t *Tracker) RecordSKU(gpu, sku string) {
	st, ok := t.states[gpu]
	if !ok {
		st = &ItemState{}
		t.states[gpu] = st
	}
	st.LastKnownSKU = sku
	st.Pending = true
}

// ClearPending marks the GPU's current identity as resolved.
func (t *Tracker) ClearPending(gpu string) {
	if st, ok := t.states[gpu]; ok {
		st.Pending = false
	}
}
