package tooltip

import (
	"context"

	"github.com/oncokb/kbtip/internal/levels"
	"github.com/oncokb/kbtip/internal/reference"
)

// ContentResult is resolved tooltip content and the CSS classes to apply
// with it.
type ContentResult struct {
	HTML    string `json:"content"`
	Classes string `json:"classes"`
}

// Strategy produces content for one Kind.
type Strategy interface {
	Kind() Kind
	Mode() Mode
	// Placeholder is the content shown before BuildContent completes.
	Placeholder(p Params) string
	BuildContent(ctx context.Context, p Params) (ContentResult, error)
}

// PublicationSource fetches publication metadata.
type PublicationSource interface {
	PublicationRecords(ctx context.Context, ids []reference.PublicationID) ([]reference.PublicationRecord, error)
}

type staticStrategy struct{}

func (staticStrategy) Kind() Kind                  { return KindDefault }
func (staticStrategy) Mode() Mode                  { return ModeStatic }
func (staticStrategy) Placeholder(p Params) string { return p.Content }

func (staticStrategy) BuildContent(_ context.Context, p Params) (ContentResult, error) {
	return ContentResult{HTML: p.Content, Classes: ClassesEvidence}, nil
}

// levelStrategy looks up an injected, read-only description table.
type levelStrategy struct {
	table       levels.Descriptions
	placeholder string
}

func (s levelStrategy) Kind() Kind                { return KindGeneLevel }
func (s levelStrategy) Mode() Mode                { return ModeSync }
func (s levelStrategy) Placeholder(Params) string { return s.placeholder }

func (s levelStrategy) BuildContent(_ context.Context, p Params) (ContentResult, error) {
	return ContentResult{HTML: s.table.Lookup(p.Level), Classes: ClassesLevel}, nil
}

type evidenceStrategy struct {
	source      PublicationSource
	placeholder string
}

func (s evidenceStrategy) Kind() Kind                { return KindGeneEvidence }
func (s evidenceStrategy) Mode() Mode                { return ModeAsync }
func (s evidenceStrategy) Placeholder(Params) string { return s.placeholder }

func (s evidenceStrategy) BuildContent(ctx context.Context, p Params) (ContentResult, error) {
	ids := p.PublicationIDs
	if ids == nil {
		ids = []reference.PublicationID{}
	}

	records, err := s.source.PublicationRecords(ctx, ids)
	if err != nil {
		return ContentResult{}, err
	}

	html, err := RenderEvidence(records, p.Abstracts)
	if err != nil {
		return ContentResult{}, err
	}
	return ContentResult{HTML: html, Classes: ClassesEvidence}, nil
}
