package api

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/oncokb/kbtip/internal/reference"
)

// Endpoint names one of the configured upstream base URLs.
type Endpoint string

const (
	EndpointPublic  Endpoint = "public"
	EndpointLegacy  Endpoint = "legacy"
	EndpointStudies Endpoint = "studies"
	EndpointEUtils  Endpoint = "eutils"
)

// Endpoints holds the base URL for every upstream.
type Endpoints struct {
	Public      string
	Legacy      string
	StudiesBase string
	EUtils      string
}

// Request is a fully built upstream call. Every request is a body-less GET.
type Request struct {
	Method   string
	Endpoint Endpoint
	URL      string
}

// NumbersScope selects a summary count family.
type NumbersScope string

const (
	NumbersMain   NumbersScope = "main"
	NumbersGenes  NumbersScope = "genes"
	NumbersGene   NumbersScope = "gene"
	NumbersLevels NumbersScope = "levels"
)

// Evidence types accepted by the evidences search.
const (
	EvidenceGeneSummary    = "GENE_SUMMARY"
	EvidenceGeneBackground = "GENE_BACKGROUND"
)

// param is one query parameter. Order is preserved on encoding.
type param struct {
	key, value string
}

// buildURL joins base with percent-encoded path segments and an ordered,
// percent-encoded query. A trailing "" segment produces a trailing slash.
func buildURL(base string, segments []string, query ...param) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimRight(base, "/"))
	for _, s := range segments {
		sb.WriteByte('/')
		sb.WriteString(url.PathEscape(s))
	}
	for i, p := range query {
		if i == 0 {
			sb.WriteByte('?')
		} else {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(p.key))
		sb.WriteByte('=')
		sb.WriteString(p.value)
	}
	return sb.String()
}

// escapedList percent-encodes each item and joins them with commas.
func escapedList(items []string) string {
	escaped := make([]string, len(items))
	for i, it := range items {
		escaped[i] = url.QueryEscape(it)
	}
	return strings.Join(escaped, ",")
}

func get(endpoint Endpoint, u string) *Request {
	return &Request{Method: http.MethodGet, Endpoint: endpoint, URL: u}
}

// Numbers builds a summary-count request. It returns nil for an unknown
// scope. symbol is used only by the gene scope.
func (e Endpoints) Numbers(scope NumbersScope, symbol string) *Request {
	switch scope {
	case NumbersMain, NumbersGenes, NumbersLevels:
		return get(EndpointPublic, buildURL(e.Public, []string{"numbers", string(scope), ""}))
	case NumbersGene:
		return get(EndpointPublic, buildURL(e.Public, []string{"numbers", "gene", symbol}))
	default:
		return nil
	}
}

// SearchGene builds a gene search request.
func (e Endpoints) SearchGene(query string, exactMatch bool) *Request {
	exact := "false"
	if exactMatch {
		exact = "true"
	}
	return get(EndpointPublic, buildURL(e.Public, []string{"search", "gene"},
		param{"query", url.QueryEscape(query)},
		param{"exactMatch", exact},
	))
}

// Genes builds the full gene list request.
func (e Endpoints) Genes() *Request {
	return get(EndpointPublic, buildURL(e.Public, []string{"genes", ""}))
}

// Evidences builds an evidence search for one gene and evidence type.
func (e Endpoints) Evidences(symbol, evidenceType string) *Request {
	return get(EndpointPublic, buildURL(e.Public, []string{"search", "evidences"},
		param{"hugoSymbol", url.QueryEscape(symbol)},
		param{"type", url.QueryEscape(evidenceType)},
	))
}

// GeneSummary builds the gene summary evidence request.
func (e Endpoints) GeneSummary(symbol string) *Request {
	return e.Evidences(symbol, EvidenceGeneSummary)
}

// GeneBackground builds the gene background evidence request.
func (e Endpoints) GeneBackground(symbol string) *Request {
	return e.Evidences(symbol, EvidenceGeneBackground)
}

// ClinicalVariants builds the clinically actionable variants request.
func (e Endpoints) ClinicalVariants(symbol string) *Request {
	return get(EndpointPublic, buildURL(e.Public, []string{"search", "variants", "clinical"},
		param{"hugoSymbol", url.QueryEscape(symbol)},
	))
}

// BiologicalVariants builds the biological variants request.
func (e Endpoints) BiologicalVariants(symbol string) *Request {
	return get(EndpointPublic, buildURL(e.Public, []string{"search", "variants", "biological"},
		param{"hugoSymbol", url.QueryEscape(symbol)},
	))
}

// PortalAlterationSampleCount builds the sample count request. An empty
// symbol requests counts for all genes.
func (e Endpoints) PortalAlterationSampleCount(symbol string) *Request {
	if symbol == "" {
		return get(EndpointLegacy, buildURL(e.Legacy, []string{"portalAlterationSampleCount"}))
	}
	return get(EndpointLegacy, buildURL(e.Legacy, []string{"portalAlterationSampleCount"},
		param{"hugoSymbol", url.QueryEscape(symbol)},
	))
}

// MutationMapperData builds the mutation-mapper payload request.
func (e Endpoints) MutationMapperData(symbol string) *Request {
	return get(EndpointLegacy, buildURL(e.Legacy, []string{"mutationMapperData"},
		param{"hugoSymbol", url.QueryEscape(symbol)},
	))
}

// Studies builds a study lookup for one or more study ids.
func (e Endpoints) Studies(studyIDs []string) *Request {
	return get(EndpointStudies, buildURL(e.StudiesBase, nil,
		param{"study_ids", escapedList(studyIDs)},
	))
}

// PubMedArticles builds a batch publication-metadata lookup.
func (e Endpoints) PubMedArticles(ids []reference.PublicationID) *Request {
	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = id.String()
	}
	return get(EndpointEUtils, buildURL(e.EUtils, []string{"esummary.fcgi"},
		param{"db", "pubmed"},
		param{"retmode", "json"},
		param{"id", escapedList(raw)},
	))
}

// TreatmentsByLevel builds the treatments-by-level request. It returns nil
// when level is unspecified.
func (e Endpoints) TreatmentsByLevel(level string) *Request {
	if level == "" {
		return nil
	}
	return get(EndpointLegacy, buildURL(e.Legacy, []string{"evidence.json"},
		param{"levels", url.QueryEscape(level)},
	))
}
