package tooltip

import (
	"encoding/json"

	"github.com/oncokb/kbtip/internal/reference"
)

// Params are the per-tooltip inputs, fixed for the tooltip's lifetime.
type Params struct {
	Kind Kind
	// Content is the static content used by KindDefault.
	Content string
	// Level is the level code shown by KindGeneLevel.
	Level string
	// Abstracts is nil when the caller supplied no abstract list.
	Abstracts      []reference.AbstractSummary
	PublicationIDs []reference.PublicationID
	My, At         string
}

// RawParams is the loosely typed form the front-end sends. Abstracts and
// publication ids are shape-checked when converted to Params.
type RawParams struct {
	Type      string          `json:"type"`
	Content   string          `json:"content,omitempty"`
	Number    looseString     `json:"number,omitempty"`
	My        string          `json:"my,omitempty"`
	At        string          `json:"at,omitempty"`
	Abstracts json.RawMessage `json:"abstracts,omitempty"`
	PMIDs     json.RawMessage `json:"pmids,omitempty"`
}

// Params converts raw inputs. A non-array pmids value becomes an empty list
// and a non-array abstracts value drops the abstracts section.
func (r RawParams) Params() Params {
	abstracts, _ := reference.NormalizeAbstracts(r.Abstracts)
	return Params{
		Kind:           ParseKind(r.Type),
		Content:        r.Content,
		Level:          string(r.Number),
		Abstracts:      abstracts,
		PublicationIDs: reference.NormalizePublicationIDs(r.PMIDs),
		My:             r.My,
		At:             r.At,
	}
}
