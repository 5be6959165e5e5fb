package pipeline

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spigell/resume-analyzer/internal/keywords"
	"github.com/spigell/resume-analyzer/internal/logger"
	"github.com/spigell/resume-analyzer/internal/ner"
	"github.com/spigell/resume-analyzer/internal/resume"
	"github.com/spigell/resume-analyzer/internal/table"
)

// Builder turns documents into records and records into a table.
type Builder struct {
	steps   []Step
	deps    Deps
	workers int
}

type Option func(*Builder)

func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.deps.Logger = l
		}
	}
}

// WithWorkers sets how many documents are extracted at once. Values below 2
// keep processing sequential.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// New returns a Builder scoring documents against the two keyword sets. A nil
// recognizer leaves every name Unknown.
func New(recognizer ner.Recognizer, genAI, aiML keywords.Set, opts ...Option) *Builder {
	b := &Builder{
		steps:   DefaultSteps(genAI, aiML),
		deps:    Deps{Recognizer: recognizer, Logger: zap.NewNop()},
		workers: 1,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

func (b *Builder) Steps() []Step {
	return b.steps
}

// Build runs every step against the text of doc. Blank text yields a record
// holding only sentinel values.
func (b *Builder) Build(ctx context.Context, doc resume.Document) resume.Record {
	deps := b.deps
	deps.Logger = logger.WithDocument(b.deps.Logger, doc.Filename)

	var rec resume.Record
	for _, step := range b.steps {
		step.Apply(ctx, deps, doc.Text, &rec)
	}

	deps.Logger.Debug("document extracted",
		zap.String("name", rec.Name),
		zap.String("email", rec.Email),
		zap.Int("gen_ai_score", rec.GenAI.Score),
		zap.Int("ai_ml_score", rec.AIML.Score),
	)

	return rec
}

// Run builds a record for every document and appends them to a new table in
// input order, so sequence numbers follow docs even when workers run
// concurrently. It fails only when ctx is done.
func (b *Builder) Run(ctx context.Context, docs []resume.Document) (*table.Table, error) {
	records, err := b.buildAll(ctx, docs)
	if err != nil {
		return nil, err
	}

	tbl := table.New()
	for i, rec := range records {
		seq := tbl.Append(rec)
		b.deps.Logger.Info("resume analysed",
			zap.Int("seq", seq),
			zap.String(logger.FieldDocument, docs[i].Filename),
			zap.String("name", rec.Name),
			zap.Int("gen_ai_score", rec.GenAI.Score),
			zap.Int("ai_ml_score", rec.AIML.Score),
		)
	}

	return tbl, nil
}

func (b *Builder) buildAll(ctx context.Context, docs []resume.Document) ([]resume.Record, error) {
	records := make([]resume.Record, len(docs))

	if b.workers <= 1 {
		for i, doc := range docs {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			records[i] = b.Build(ctx, doc)
		}
		return records, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, doc := range docs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			records[i] = b.Build(gctx, doc)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return records, nil
}
