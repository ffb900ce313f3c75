package repositories

import (
	"context"
	"io"

	"github.com/johnquangdev/meeting-summarizer/internal/domain/entities"
)

// AudioRepository stores uploaded audio files by name
type AudioRepository interface {
	Save(ctx context.Context, name string, r io.Reader, size int64, contentType string) error
	// FindByPrefix returns the first object, in lexical order, whose name
	// starts with prefix. It returns (nil, nil) when nothing matches.
	FindByPrefix(ctx context.Context, prefix string) (*entities.AudioObject, error)
	// Open returns entities.ErrSourceNotFound when the object does not exist
	Open(ctx context.Context, name string) (io.ReadCloser, error)
	// Delete removes an object; a missing object is not an error
	Delete(ctx context.Context, name string) error
}
