package tooltip

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/oncokb/kbtip/internal/reference"
)

// PubMedURL is the article page template; %s is the publication id.
const PubMedURL = "https://www.ncbi.nlm.nih.gov/pubmed/%s"

const evidenceTemplate = `<ul class="list-group">
{{- range .Publications}}<li class="list-group-item" style="width: 100%"><a href="{{.URL}}" target="_blank"><b>{{.Title}}</b></a>
{{- if .Citation}}<br/><span>{{.Citation}}</span>{{end}}</li>
{{- end}}
{{- range .Abstracts}}<li class="list-group-item" style="width: 100%">
{{- if .Link}}<a href="{{.Link}}" target="_blank"><b>{{.Abstract}}</b></a>{{else}}<b>{{.Abstract}}</b>{{end}}</li>
{{- end -}}
</ul>`

// compiledEvidence is parsed at init time to fail fast on template errors.
var compiledEvidence = template.Must(template.New("evidence").Parse(evidenceTemplate))

type publicationItem struct {
	URL      string
	Title    string
	Citation string
}

type evidenceData struct {
	Publications []publicationItem
	Abstracts    []reference.AbstractSummary
}

// citation formats "First A et al. Source. Year". It returns "" when the
// record has no authors.
func citation(r reference.PublicationRecord) string {
	if !r.HasAuthors() {
		return ""
	}
	s := fmt.Sprintf("%s et al. %s.", r.FirstAuthor(), r.Source)
	if y := r.Year(); y > 0 {
		s += fmt.Sprintf(" %d", y)
	}
	return s
}

// RenderEvidence builds the gene-evidence list: one item per publication
// record, then one per local abstract. All text is HTML-escaped.
func RenderEvidence(records []reference.PublicationRecord, abstracts []reference.AbstractSummary) (string, error) {
	data := evidenceData{
		Publications: make([]publicationItem, 0, len(records)),
		Abstracts:    abstracts,
	}
	for _, r := range records {
		data.Publications = append(data.Publications, publicationItem{
			URL:      fmt.Sprintf(PubMedURL, r.UID),
			Title:    r.Title,
			Citation: citation(r),
		})
	}

	var buf bytes.Buffer
	if err := compiledEvidence.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering evidence: %w", err)
	}
	return buf.String(), nil
}
