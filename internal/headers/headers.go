package headers

import (
	http "github.com/bogdanfinn/fhttp"

	"github.com/yourneighborhoodchef/gpuwatch/internal/config"
)

// Build converts the configured static headers into a request header set.
// The configured order is preserved on the wire via HeaderOrderKey.
func Build(hs config.Headers) http.Header {
	h := http.Header{}
	order := make([]string, 0, len(hs))
	for _, kv := range hs {
		h.Set(kv.Key, kv.Value)
		order = append(order, kv.Key)
	}
	h[http.HeaderOrderKey] = order
	return h
}
