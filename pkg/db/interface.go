package db

import (
	"context"

	"blog-summariser/pkg/domain"
)

// RawSession is a per-request handle on a raw text store.
// Close must be called on every path once the session is open.
type RawSession interface {
	SaveRaw(ctx context.Context, raw *domain.RawText) error
	Close(ctx context.Context) error
}
