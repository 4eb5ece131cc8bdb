package monitor

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yourneighborhoodchef/gpuwatch/internal/client"
)

// Engine runs one decision pass per snapshot: filter records to the
// monitored set, detect SKU identity transitions, cross-check pending
// listings against the inventory API and fire at most one purchase
// notification per cycle.
type Engine struct {
	manufacturer string
	watched      map[string]struct{}
	tracker      *Tracker
	prober       Prober
	notifier     Notifier
	subjects     Subjects
	log          zerolog.Logger
}

func NewEngine(manufacturer string, gpus []string, subjects Subjects, tracker *Tracker, prober Prober, notifier Notifier, log zerolog.Logger) *Engine {
	watched := make(map[string]struct{}, len(gpus))
	for _, gpu := range gpus {
		watched[gpu] = struct{}{}
	}
	return &Engine{
		manufacturer: manufacturer,
		watched:      watched,
		tracker:      tracker,
		prober:       prober,
		notifier:     notifier,
		subjects:     subjects,
		log:          log,
	}
}

// Decide scans the snapshot in order. Once a purchase notification is
// dispatched the rest of the snapshot is skipped; other matches wait for a
// later cycle (one purchase email per cycle, deliberate).
func (e *Engine) Decide(snap *client.Snapshot) {
	for _, p := range snap.Products {
		if p.Manufacturer != e.manufacturer {
			continue
		}
		if _, ok := e.watched[p.GPU]; !ok {
			continue
		}

		e.log.Debug().
			Str("product", p.DisplayName).
			Str("gpu", p.GPU).
			Str("sku", p.ProductSKU).
			Bool("available", p.ProductAvailable).
			Msg("checking product")

		st := e.tracker.State(p.GPU)
		if p.ProductSKU != st.LastKnownSKU {
			if st.LastKnownSKU == "" {
				e.log.Info().Str("gpu", p.GPU).Str("sku", p.ProductSKU).Msg("first listing observed, baseline set")
				e.notify(e.subjects.Baseline, baselineBody(p))
			} else {
				e.log.Info().Str("gpu", p.GPU).Str("old_sku", st.LastKnownSKU).Str("new_sku", p.ProductSKU).Msg("new listing detected")
				e.notify(e.subjects.Listing, listingBody(st.LastKnownSKU, p))
			}
			e.tracker.RecordSKU(p.GPU, p.ProductSKU)
		} else if !st.Pending {
			// Same listing, nothing unresolved. Next record.
			continue
		}

		// Pending is true here: set just now or carried over from an
		// earlier cycle that never confirmed purchasability.
		active, err := e.prober.Active(p.ProductSKU)
		if err != nil {
			e.log.Warn().Err(err).Str("sku", p.ProductSKU).Msg("inventory probe failed, will retry next cycle")
			continue
		}
		if !active {
			e.log.Debug().Str("sku", p.ProductSKU).Msg("inventory inactive, still pending")
			continue
		}

		link, ok := firstAvailableLink(p.Retailers)
		if !ok {
			e.log.Info().Str("gpu", p.GPU).Str("sku", p.ProductSKU).Msg("inventory active but no retailer offer yet, still pending")
			continue
		}

		e.log.Info().Str("gpu", p.GPU).Str("sku", p.ProductSKU).Str("link", link).Msg("product available")
		e.notify(e.subjects.Product, purchaseBody(link))
		e.tracker.ClearPending(p.GPU)
		return
	}

	e.log.Debug().Msg("no purchase-ready products this cycle")
}

// notify logs a failed delivery and moves on; alerting is best-effort and
// never blocks the state transition that triggered it.
func (e *Engine) notify(subject, body string) {
	if err := e.notifier.Notify(subject, body); err != nil {
		e.log.Error().Err(err).Str("subject", subject).Msg("notification delivery failed")
	}
}

func firstAvailableLink(retailers []client.Retailer) (string, bool) {
	for _, r := range retailers {
		if r.IsAvailable && r.PurchaseLink != "" {
			return r.PurchaseLink, true
		}
	}
	return "", false
}

func baselineBody(p client.Product) string {
	return fmt.Sprintf("<p>Now tracking %s (%s). Current listing SKU: %s.</p>",
		p.DisplayName, p.GPU, p.ProductSKU)
}

func listingBody(prev string, p client.Product) string {
	return fmt.Sprintf("<p>New listing for %s (%s): SKU changed from %s to %s.</p>",
		p.DisplayName, p.GPU, prev, p.ProductSKU)
}

func purchaseBody(link string) string {
	return fmt.Sprintf("<p>Product in stock! Link: <a href='%s'>Click here</a></p>", link)
}
