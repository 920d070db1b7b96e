// Package icoprobe checks the conventional /favicon.ico location
// directly.
package icoprobe

import (
	"context"

	"github.com/caasmo/iconfind/favicon"
	"github.com/caasmo/iconfind/fetch"
)

// Strategy implements favicon.Strategy by probing
// scheme://server/favicon.ico. The page path plays no role; the probe
// always targets the server root. Retry and timeout policy belongs to
// the Prober passed at construction, never to ambient state.
type Strategy struct {
	prober fetch.Prober
}

// New creates the strategy.
func New(prober fetch.Prober) *Strategy {
	return &Strategy{prober: prober}
}

// Locate probes the conventional location and returns it when the
// probe succeeds.
func (s *Strategy) Locate(ctx context.Context, page favicon.Page) (string, error) {
	target := page.Root() + "/favicon.ico"
	if s.prober.Probe(ctx, target) {
		return target, nil
	}
	return "", nil
}
