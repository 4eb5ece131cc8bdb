package client

import (
	"encoding/json"
	"fmt"
	"io"

	http "github.com/bogdanfinn/fhttp"
	"github.com/rs/zerolog"
)

// Retailer is one purchase offer attached to a product listing.
type Retailer struct {
	RetailerName string `json:"retailerName"`
	IsAvailable  bool   `json:"isAvailable"`
	PurchaseLink string `json:"purchaseLink"`
}

// Product is one listing from the search API. ProductSKU is an opaque
// identity token; a change means a new or replaced listing.
type Product struct {
	DisplayName      string     `json:"displayName"`
	GPU              string     `json:"gpu"`
	Manufacturer     string     `json:"manufacturer"`
	ProductSKU       string     `json:"productSKU"`
	ProductAvailable bool       `json:"productAvailable"`
	Retailers        []Retailer `json:"retailers"`
}

// Snapshot is the parsed result of one search-API call, discarded after
// each poll cycle.
type Snapshot struct {
	Products []Product
}

type searchResponse struct {
	SearchedProducts struct {
		ProductDetails []Product `json:"productDetails"`
	} `json:"searchedProducts"`
}

// doer is the slice of tls_client.HttpClient the fetch paths need.
type doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Searcher performs one GET against the search endpoint per call.
type Searcher struct {
	client doer
	url    string
	header http.Header
	log    zerolog.Logger
}

func NewSearcher(client doer, url string, header http.Header, log zerolog.Logger) *Searcher {
	return &Searcher{client: client, url: url, header: header, log: log}
}

// Fetch returns the current product snapshot. Errors wrap ErrTransport or
// ErrMalformedResponse so the caller can tell an outage from junk data.
func (s *Searcher) Fetch() (*Snapshot, error) {
	body, err := get(s.client, s.url, s.header)
	if err != nil {
		return nil, err
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		s.log.Debug().Str("sample", sample(body)).Msg("search response did not decode")
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	products := sr.SearchedProducts.ProductDetails
	if len(products) == 0 {
		return nil, fmt.Errorf("%w: no product details", ErrMalformedResponse)
	}

	s.log.Debug().Int("products", len(products)).Msg("search api fetch ok")
	return &Snapshot{Products: products}, nil
}

func get(client doer, url string, header http.Header) ([]byte, error) {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	req.Header = header

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: status %d", ErrTransport, resp.StatusCode)
	}
	return body, nil
}

func sample(body []byte) string {
	const max = 200
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
