package monitor

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/yourneighborhoodchef/gpuwatch/internal/client"
)

const downBody = "<p>Alert: The API is down. Please check the API status and connectivity.</p>"

// Loop drives the monitor: fetch, decide, wait, forever. Fetch failures
// are counted; reaching the threshold fires one outage notification and
// re-arms the counter. There is no stop channel; shutdown is process
// termination.
type Loop struct {
	fetcher     Fetcher
	engine      *Engine
	notifier    Notifier
	pacer       Pacer
	maxFailures int
	downSubject string
	log         zerolog.Logger

	// failures stays within [0, maxFailures].
	failures int
}

func NewLoop(fetcher Fetcher, engine *Engine, notifier Notifier, pacer Pacer, maxFailures int, downSubject string, log zerolog.Logger) *Loop {
	return &Loop{
		fetcher:     fetcher,
		engine:      engine,
		notifier:    notifier,
		pacer:       pacer,
		maxFailures: maxFailures,
		downSubject: downSubject,
		log:         log,
	}
}

func (l *Loop) Run() {
	l.log.Info().Msg("starting api monitoring")
	for {
		l.cycle()
		l.pacer.Wait()
	}
}

// cycle runs one fetch-and-decide pass. A panic anywhere in the pass is
// logged and contained so the monitor keeps running.
func (l *Loop) cycle() {
	defer func() {
		if r := recover(); r != nil {
			l.log.Error().Interface("panic", r).Msg("poll cycle panicked")
		}
	}()

	snap, err := l.fetcher.Fetch()
	switch {
	case errors.Is(err, client.ErrMalformedResponse):
		// Junk data is not an outage signal; leave the counter alone.
		l.log.Warn().Err(err).Msg("no actionable data this cycle")
	case err != nil:
		l.failures++
		l.log.Warn().Err(err).Int("consecutive_failures", l.failures).Msg("search api fetch failed")
		if l.failures >= l.maxFailures {
			if nerr := l.notifier.Notify(l.downSubject, downBody); nerr != nil {
				l.log.Error().Err(nerr).Msg("outage notification delivery failed")
			}
			l.failures = 0
		}
	default:
		l.failures = 0
		l.engine.Decide(snap)
	}
}
