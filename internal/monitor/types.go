package monitor

import "github.com/yourneighborhoodchef/gpuwatch/internal/client"

// Fetcher returns one fresh product snapshot per call.
type Fetcher interface {
	Fetch() (*client.Snapshot, error)
}

// Prober reports whether the inventory API marks a SKU as active.
type Prober interface {
	Active(sku string) (bool, error)
}

// Notifier delivers one alert. Callers log errors and never retry.
type Notifier interface {
	Notify(subject, htmlBody string) error
}

// Pacer blocks until the next poll cycle may start.
type Pacer interface {
	Wait()
}

// Subjects holds the configured subject line for each alert kind.
type Subjects struct {
	Baseline string
	Listing  string
	Product  string
	Down     string
}
