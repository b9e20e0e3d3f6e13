package waitlist

import "context"

// Sink recibe las altas: tabla waitlist o un form relay externo.
type Sink interface {
	Add(ctx context.Context, e Entry) error
}
