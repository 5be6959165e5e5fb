package pipeline

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/spigell/resume-analyzer/internal/extract"
	"github.com/spigell/resume-analyzer/internal/keywords"
	"github.com/spigell/resume-analyzer/internal/ner"
	"github.com/spigell/resume-analyzer/internal/resume"
)

// Step fills one part of a record from the document text. Every step reads
// the same text and never looks at what other steps wrote.
type Step interface {
	Name() string
	Apply(ctx context.Context, deps Deps, text string, rec *resume.Record)
}

// Deps aggregates dependencies shared across all steps.
type Deps struct {
	Recognizer ner.Recognizer
	Logger     *zap.Logger
}

// Status describes a step for debug output.
type Status struct {
	Name    string
	Details map[string]string
}

type statusProvider interface {
	Status() Status
}

// Describe returns status entries for the provided steps.
func Describe(steps []Step) []Status {
	statuses := make([]Status, 0, len(steps))
	for _, step := range steps {
		if reporter, ok := step.(statusProvider); ok {
			statuses = append(statuses, reporter.Status())
			continue
		}
		statuses = append(statuses, Status{Name: step.Name()})
	}
	return statuses
}

// DefaultSteps returns the steps producing every record field, in column order.
func DefaultSteps(genAI, aiML keywords.Set) []Step {
	return []Step{
		&nameStep{},
		newFieldStep(extract.Experience, func(r *resume.Record, v string) { r.Experience = v }),
		newFieldStep(extract.Email, func(r *resume.Record, v string) { r.Email = v }),
		newFieldStep(extract.Phone, func(r *resume.Record, v string) { r.Phone = v }),
		newFieldStep(extract.Education, func(r *resume.Record, v string) { r.Education = v }),
		newFieldStep(extract.Discipline, func(r *resume.Record, v string) { r.Discipline = v }),
		newFieldStep(extract.PassingYear, func(r *resume.Record, v string) { r.PassingYear = v }),
		newFieldStep(extract.Skills, func(r *resume.Record, v string) { r.Skills = v }),
		newFieldStep(extract.CGPA, func(r *resume.Record, v string) { r.CGPA = v }),
		newFieldStep(extract.Extracurricular, func(r *resume.Record, v string) { r.Extracurricular = v }),
		newKeywordStep(genAI, func(r *resume.Record, res keywords.Result) { r.GenAI = res }),
		newKeywordStep(aiML, func(r *resume.Record, res keywords.Result) { r.AIML = res }),
	}
}

type fieldStep struct {
	field  extract.Field
	assign func(*resume.Record, string)
}

func newFieldStep(field extract.Field, assign func(*resume.Record, string)) Step {
	return &fieldStep{field: field, assign: assign}
}

func (s *fieldStep) Name() string { return s.field.Name }

func (s *fieldStep) Apply(_ context.Context, _ Deps, text string, rec *resume.Record) {
	s.assign(rec, s.field.Extract(text))
}

func (s *fieldStep) Status() Status {
	names := make([]string, 0, len(s.field.Strategies))
	for _, strategy := range s.field.Strategies {
		names = append(names, strategy.Name)
	}
	return Status{
		Name: s.Name(),
		Details: map[string]string{
			"strategies": strings.Join(names, ","),
			"sentinel":   s.field.Sentinel,
		},
	}
}

type nameStep struct{}

func (s *nameStep) Name() string { return "name" }

func (s *nameStep) Apply(ctx context.Context, deps Deps, text string, rec *resume.Record) {
	name, err := ner.FirstPerson(ctx, deps.Recognizer, text)
	if err != nil && deps.Logger != nil {
		deps.Logger.Warn("name recognition failed", zap.Error(err))
	}
	rec.Name = name
}

func (s *nameStep) Status() Status {
	return Status{Name: s.Name(), Details: map[string]string{"sentinel": ner.Unknown}}
}

type keywordStep struct {
	set    keywords.Set
	assign func(*resume.Record, keywords.Result)
}

func newKeywordStep(set keywords.Set, assign func(*resume.Record, keywords.Result)) Step {
	return &keywordStep{set: set, assign: assign}
}

func (s *keywordStep) Name() string { return "keywords_" + s.set.Name }

func (s *keywordStep) Apply(_ context.Context, _ Deps, text string, rec *resume.Record) {
	s.assign(rec, s.set.Score(text))
}

func (s *keywordStep) Status() Status {
	return Status{
		Name: s.Name(),
		Details: map[string]string{
			"keywords": strconv.Itoa(len(s.set.Keywords)),
		},
	}
}
