package interfaces

import (
	"context"
	"io"
)

// Uploader stores a file and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
}
