package ratelimit

import "time"

// Pacer makes the poll loop sleep one full interval between cycles. The
// interval is measured from the Wait call, not from a free-running clock,
// so a cycle slower than the interval still gets a full sleep before the
// next fetch starts.
type Pacer struct {
	interval time.Duration
	timer    *time.Timer
}

func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks for the configured interval.
func (p *Pacer) Wait() {
	if p.timer == nil {
		p.timer = time.NewTimer(p.interval)
	} else {
		p.timer.Reset(p.interval)
	}
	<-p.timer.C
}

func (p *Pacer) Stop() {
	if p.timer != nil {
		p.timer.Stop()
	}
}
