package tree

import (
	"io"
	"log/slog"
)

// DefaultMarker is repeated once per depth level in PrintableTree.
const DefaultMarker = "-"

type options struct {
	strict bool
	marker string
	log    *slog.Logger
}

// Option configures an Index.
type Option func(*options)

// WithStrict makes Load fail with UnresolvedParentError when a declared parent
// name matches no earlier record. Without it such records load as orphans at
// depth 0.
func WithStrict(strict bool) Option {
	return func(o *options) { o.strict = strict }
}

// WithMarker sets the indent marker used by PrintableTree. An empty marker
// keeps DefaultMarker.
func WithMarker(marker string) Option {
	return func(o *options) {
		if marker != "" {
			o.marker = marker
		}
	}
}

// WithLogger sets the logger used while loading.
func WithLogger(log *slog.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func defaultOptions() options {
	return options{
		marker: DefaultMarker,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}
