package loader

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/afs/storage"
	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/resume"
	"github.com/spigell/resume-analyzer/internal/utils"
)

// Storage lists and downloads objects. afs.Service satisfies it for local
// paths and, with afsc registered, for gs:// and s3:// locations.
type Storage interface {
	List(ctx context.Context, URL string, options ...storage.Option) ([]storage.Object, error)
	Download(ctx context.Context, object storage.Object, options ...storage.Option) ([]byte, error)
}

// Stats counts what happened to the listed files.
type Stats struct {
	Listed      int
	Unsupported int
	Unreadable  int
	Loaded      int
}

// Loader turns the files of one location into documents.
type Loader struct {
	fs       Storage
	decoders map[string]Decoder
	logger   *zap.Logger
}

func New(fs Storage, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Loader{fs: fs, decoders: Decoders, logger: logger}
}

// Load reads the files directly under location in listing order. Files with an
// unsupported suffix and files that yield no text are skipped and counted.
func (l *Loader) Load(ctx context.Context, location string) ([]resume.Document, Stats, error) {
	var stats Stats

	if strings.TrimSpace(location) == "" {
		return nil, stats, fmt.Errorf("source location is required")
	}

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	norm, err := utils.NormalizeLocation(location)
	if err != nil {
		return nil, stats, err
	}

	objects, err := l.fs.List(ctx, norm)
	if err != nil {
		return nil, stats, fmt.Errorf("list %s: %w", location, err)
	}

	docs := make([]resume.Document, 0, len(objects))
	for _, object := range objects {
		if object.IsDir() {
			continue
		}
		stats.Listed++

		name := object.Name()
		decode, ok := l.decoderFor(name)
		if !ok {
			stats.Unsupported++
			l.logger.Info("skipping unsupported file", zap.String("document", name))
			continue
		}

		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		l.logger.Info("processing document", zap.String("document", name))

		text, err := l.read(ctx, object, decode)
		if err != nil {
			stats.Unreadable++
			l.logger.Warn("skipping unreadable file", zap.String("document", name), zap.Error(err))
			continue
		}

		if strings.TrimSpace(text) == "" {
			stats.Unreadable++
			l.logger.Warn("skipping file without text", zap.String("document", name))
			continue
		}

		docs = append(docs, resume.Document{Filename: name, Text: text})
		stats.Loaded++
	}

	return docs, stats, nil
}

func (l *Loader) decoderFor(name string) (Decoder, bool) {
	for suffix, decode := range l.decoders {
		if strings.HasSuffix(name, suffix) {
			return decode, true
		}
	}
	return nil, false
}

func (l *Loader) read(ctx context.Context, object storage.Object, decode Decoder) (string, error) {
	data, err := l.fs.Download(ctx, object)
	if err != nil {
		return "", fmt.Errorf("download: %w", err)
	}

	return decode(data)
}
