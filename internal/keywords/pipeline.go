package keywords

import (
	"errors"
	"fmt"

	"kwtaxonomy/internal/models"
	"kwtaxonomy/internal/validation"
)

// ErrInvalidRecord is wrapped by every InvalidRecordError.
var ErrInvalidRecord = errors.New("invalid keyword record")

// InvalidRecordError reports the first record that failed validation.
type InvalidRecordError struct {
	Index int
	ID    *int64
	Err   error
}

func (e *InvalidRecordError) Error() string {
	if e.ID != nil {
		return fmt.Sprintf("%v at index %d (id %d): %v", ErrInvalidRecord, e.Index, *e.ID, e.Err)
	}
	return fmt.Sprintf("%v at index %d: %v", ErrInvalidRecord, e.Index, e.Err)
}

// Unwrap exposes both ErrInvalidRecord and the validation cause to errors.Is.
func (e *InvalidRecordError) Unwrap() []error {
	return []error{ErrInvalidRecord, e.Err}
}

// Validate checks every record and returns an *InvalidRecordError for the first
// one that violates a precondition.
func Validate(records []models.KeywordRecord) error {
	for i, r := range records {
		if err := validation.ValidateRecord(r); err != nil {
			return &InvalidRecordError{Index: i, ID: r.ID, Err: err}
		}
	}
	return nil
}

// Result is the output of one pipeline run.
type Result struct {
	Groups      []models.Group `json:"groups"`
	Summary     models.Summary `json:"summary"`
	InputCount  int            `json:"input_count"`
	UniqueCount int            `json:"unique_count"`
}

// Pipeline validates, deduplicates, classifies and aggregates keyword records.
type Pipeline struct {
	classifier *Classifier
}

// NewPipeline builds a pipeline over the given lexicons.
func NewPipeline(lex Lexicons) *Pipeline {
	return &Pipeline{classifier: NewClassifier(lex)}
}

// Classifier returns the pipeline's classifier.
func (p *Pipeline) Classifier() *Classifier {
	return p.classifier
}

// Run processes one batch of records. The whole batch is rejected if any
// record violates a precondition; otherwise it cannot fail.
func (p *Pipeline) Run(records []models.KeywordRecord) (*Result, error) {
	if err := Validate(records); err != nil {
		return nil, err
	}

	unique := Deduplicate(records)
	groups := Aggregate(p.classifier.Group(unique))

	return &Result{
		Groups:      groups,
		Summary:     Summarize(groups),
		InputCount:  len(records),
		UniqueCount: len(unique),
	}, nil
}
