package tooltip

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Kind selects how a tooltip's content is produced.
type Kind int

const (
	// KindDefault shows statically supplied content.
	KindDefault Kind = iota
	// KindGeneEvidence lists fetched publications and local abstracts.
	KindGeneEvidence
	// KindGeneLevel shows the description of an evidence level.
	KindGeneLevel
)

// Tags used by the front-end's qtip-type attribute.
const (
	TagGeneEvidence = "geneEvidence"
	TagGeneLevel    = "geneLevel"
)

// ParseKind maps a type tag to a Kind. Unknown tags (including "") map to
// KindDefault.
func ParseKind(tag string) Kind {
	switch tag {
	case TagGeneEvidence:
		return KindGeneEvidence
	case TagGeneLevel:
		return KindGeneLevel
	default:
		return KindDefault
	}
}

func (k Kind) String() string {
	switch k {
	case KindGeneEvidence:
		return TagGeneEvidence
	case KindGeneLevel:
		return TagGeneLevel
	default:
		return "default"
	}
}

// Mode describes when a strategy's content becomes available.
type Mode int

const (
	// ModeStatic content is final at construction; show does nothing.
	ModeStatic Mode = iota
	// ModeSync content is computed synchronously on show.
	ModeSync
	// ModeAsync content is computed by a background task started on show.
	ModeAsync
)

// looseString decodes a JSON string or number into text, as the front-end's
// attribute values arrive either way.
type looseString string

func (s *looseString) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = looseString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", strings.TrimSpace(string(data)))
	}
	*s = looseString(n.String())
	return nil
}
