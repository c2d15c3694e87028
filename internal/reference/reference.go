// Package reference defines the domain types shown in knowledge-base tooltips:
// locally supplied abstracts and externally fetched publication records.
package reference

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
)

// AbstractSummary is a short, locally supplied summary (typically a
// conference abstract) with an optional external link.
type AbstractSummary struct {
	Abstract string `json:"abstract"`
	Link     string `json:"link,omitempty"`
}

// HasLink reports whether the abstract should be rendered as an anchor.
func (a AbstractSummary) HasLink() bool {
	return a.Link != ""
}

// PublicationID identifies a publication (a PubMed id). Callers may supply it
// as either a JSON string or a JSON number.
type PublicationID string

// UnmarshalJSON accepts both `"123"` and `123`.
func (p *PublicationID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*p = PublicationID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("publication id must be a string or number: %w", err)
	}
	*p = PublicationID(n.String())
	return nil
}

// String returns the identifier as text.
func (p PublicationID) String() string {
	return string(p)
}

// PublicationRecord is bibliographic metadata for one publication.
// Authors is nil when the upstream record carries no author data.
type PublicationRecord struct {
	UID     string   `json:"uid"`
	Title   string   `json:"title"`
	Authors []Author `json:"authors,omitempty"`
	Source  string   `json:"source"`
	PubDate string   `json:"pubdate"`
}

// HasAuthors reports whether at least one author is known.
func (r PublicationRecord) HasAuthors() bool {
	return len(r.Authors) > 0
}

// FirstAuthor returns the first listed author's name, or "" if none.
func (r PublicationRecord) FirstAuthor() string {
	if !r.HasAuthors() {
		return ""
	}
	return r.Authors[0].Name
}

var yearPattern = regexp.MustCompile(`\b(\d{4})\b`)

// Year extracts the publication year from PubDate. Upstream dates come in
// several shapes ("2020 May 1", "2020-05-01", "2020 Spring"); the first
// four-digit run is taken. Returns 0 if none is found.
func (r PublicationRecord) Year() int {
	m := yearPattern.FindStringSubmatch(r.PubDate)
	if m == nil {
		return 0
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return y
}
