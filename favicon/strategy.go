package favicon

import "context"

// Strategy is one technique for discovering a favicon URL from a
// page's URL components.
//
// Locate returns the absolute favicon URL it discovered, or the empty
// string when the technique found nothing ("not found" is not an
// error). A non-nil error reports a genuine fault (network failure,
// bad document); the Resolver absorbs it and moves on to the next
// strategy, so implementations never abort a batch.
//
// Implementations must be stateless and safe for concurrent use.
type Strategy interface {
	Locate(ctx context.Context, page Page) (string, error)
}
