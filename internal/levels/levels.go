// Package levels holds the descriptive text for evidence levels. The table is
// loaded once at startup and is read-only afterwards; consumers receive it by
// injection rather than from global state.
package levels

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"gopkg.in/yaml.v3"
)

// Descriptions maps a normalized (upper-case) level code to an HTML
// description. The zero value is an empty table.
type Descriptions struct {
	byCode map[string]string
}

// New builds a table from code -> HTML pairs. Codes are normalized to upper
// case; later duplicates after normalization win.
func New(entries map[string]string) Descriptions {
	byCode := make(map[string]string, len(entries))
	for code, html := range entries {
		byCode[Normalize(code)] = html
	}
	return Descriptions{byCode: byCode}
}

// Normalize returns the lookup key for a level code ("2a" -> "2A").
func Normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Lookup returns the description for code, or "" if none is known.
func (d Descriptions) Lookup(code string) string {
	return d.byCode[Normalize(code)]
}

// Has reports whether code has a description.
func (d Descriptions) Has(code string) bool {
	_, ok := d.byCode[Normalize(code)]
	return ok
}

// Codes returns the known level codes in sorted order.
func (d Descriptions) Codes() []string {
	codes := make([]string, 0, len(d.byCode))
	for c := range d.byCode {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}

// Len returns the number of known levels.
func (d Descriptions) Len() int {
	return len(d.byCode)
}

// Merge returns a new table holding d's entries overlaid by other's.
func (d Descriptions) Merge(other Descriptions) Descriptions {
	merged := make(map[string]string, len(d.byCode)+len(other.byCode))
	for c, h := range d.byCode {
		merged[c] = h
	}
	for c, h := range other.byCode {
		merged[c] = h
	}
	return Descriptions{byCode: merged}
}

// Load reads a YAML file of the form
//
//	"1": "<b>FDA-recognized</b> biomarker ..."
//	"2A": "Standard care biomarker ..."
func Load(path string) (Descriptions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Descriptions{}, fmt.Errorf("reading level descriptions: %w", err)
	}

	var entries map[string]string
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return Descriptions{}, fmt.Errorf("parsing level descriptions: %w", err)
	}

	return New(entries), nil
}

// PlainText strips markup from a description for terminal output.
func PlainText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return html
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
