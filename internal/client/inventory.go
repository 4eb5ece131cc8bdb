package client

import (
	"encoding/json"
	"fmt"

	http "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
)

type inventoryEntry struct {
	// IsActive arrives as the strings "true"/"false".
	IsActive string `json:"is_active"`
}

// Prober checks the per-SKU inventory endpoint. Any failure is reported as
// an error; the decision engine treats errored probes as "not active".
type Prober struct {
	client doer
	urlFor func(sku string) string
	header http.Header
	log    zerolog.Logger
}

func NewProber(client doer, urlFor func(sku string) string, header http.Header, log zerolog.Logger) *Prober {
	return &Prober{client: client, urlFor: urlFor, header: header, log: log}
}

// Active reports whether the inventory API marks the SKU as active.
func (p *Prober) Active(sku string) (bool, error) {
	body, err := get(p.client, p.urlFor(sku), p.header)
	if err != nil {
		return false, err
	}

	var entries []inventoryEntry
	if err := json.Unmarshal(body, &entries); err != nil {
		p.log.Debug().Str("sample", sample(body)).Msg("inventory response did not decode")
		return false, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(entries) == 0 {
		return false, fmt.Errorf("%w: empty inventory list", ErrMalformedResponse)
	}

	return entries[0].IsActive == "true", nil
}
