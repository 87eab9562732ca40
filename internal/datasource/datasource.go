// Package datasource abstracts where pipeline inputs are read from.
package datasource

import (
	"context"
	"io"
)

// Source is a readable input. Name identifies it in logs and errors.
type Source interface {
	Open(ctx context.Context) (io.ReadCloser, error)
	Name() string
}
