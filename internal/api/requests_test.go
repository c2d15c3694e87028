package api

import (
	"net/http"
	"testing"

	"github.com/oncokb/kbtip/internal/reference"
)

var testEndpoints = Endpoints{
	Public:      "https://kb.example/api/v1/",
	Legacy:      "https://kb.example/legacy-api/",
	StudiesBase: "http://portal.example/api-legacy/studies",
	EUtils:      "https://eutils.example/entrez/eutils/",
}

func TestEndpoints_URLs(t *testing.T) {
	e := testEndpoints

	tests := []struct {
		name         string
		req          *Request
		wantEndpoint Endpoint
		wantURL      string
	}{
		{"numbers main", e.Numbers(NumbersMain, ""), EndpointPublic, "https://kb.example/api/v1/numbers/main/"},
		{"numbers genes", e.Numbers(NumbersGenes, ""), EndpointPublic, "https://kb.example/api/v1/numbers/genes/"},
		{"numbers levels", e.Numbers(NumbersLevels, ""), EndpointPublic, "https://kb.example/api/v1/numbers/levels/"},
		{"numbers gene", e.Numbers(NumbersGene, "BRAF"), EndpointPublic, "https://kb.example/api/v1/numbers/gene/BRAF"},
		{"search gene default", e.SearchGene("BRAF", false), EndpointPublic, "https://kb.example/api/v1/search/gene?query=BRAF&exactMatch=false"},
		{"search gene exact", e.SearchGene("BRAF", true), EndpointPublic, "https://kb.example/api/v1/search/gene?query=BRAF&exactMatch=true"},
		{"genes", e.Genes(), EndpointPublic, "https://kb.example/api/v1/genes/"},
		{"gene summary", e.GeneSummary("EGFR"), EndpointPublic, "https://kb.example/api/v1/search/evidences?hugoSymbol=EGFR&type=GENE_SUMMARY"},
		{"gene background", e.GeneBackground("EGFR"), EndpointPublic, "https://kb.example/api/v1/search/evidences?hugoSymbol=EGFR&type=GENE_BACKGROUND"},
		{"clinical variants", e.ClinicalVariants("KIT"), EndpointPublic, "https://kb.example/api/v1/search/variants/clinical?hugoSymbol=KIT"},
		{"biological variants", e.BiologicalVariants("KIT"), EndpointPublic, "https://kb.example/api/v1/search/variants/biological?hugoSymbol=KIT"},
		{"sample count all", e.PortalAlterationSampleCount(""), EndpointLegacy, "https://kb.example/legacy-api/portalAlterationSampleCount"},
		{"sample count gene", e.PortalAlterationSampleCount("TP53"), EndpointLegacy, "https://kb.example/legacy-api/portalAlterationSampleCount?hugoSymbol=TP53"},
		{"mutation mapper", e.MutationMapperData("TP53"), EndpointLegacy, "https://kb.example/legacy-api/mutationMapperData?hugoSymbol=TP53"},
		{"studies", e.Studies([]string{"msk_impact_2017", "luad_tcga"}), EndpointStudies, "http://portal.example/api-legacy/studies?study_ids=msk_impact_2017,luad_tcga"},
		{"pubmed", e.PubMedArticles([]reference.PublicationID{"123", "456"}), EndpointEUtils, "https://eutils.example/entrez/eutils/esummary.fcgi?db=pubmed&retmode=json&id=123,456"},
		{"pubmed empty", e.PubMedArticles(nil), EndpointEUtils, "https://eutils.example/entrez/eutils/esummary.fcgi?db=pubmed&retmode=json&id="},
		{"treatments", e.TreatmentsByLevel("3"), EndpointLegacy, "https://kb.example/legacy-api/evidence.json?levels=3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.req == nil {
				t.Fatal("request is nil")
			}
			if tt.req.Method != http.MethodGet {
				t.Errorf("Method = %s, want GET", tt.req.Method)
			}
			if tt.req.Endpoint != tt.wantEndpoint {
				t.Errorf("Endpoint = %s, want %s", tt.req.Endpoint, tt.wantEndpoint)
			}
			if tt.req.URL != tt.wantURL {
				t.Errorf("URL = %s, want %s", tt.req.URL, tt.wantURL)
			}
		})
	}
}

func TestEndpoints_NilRequests(t *testing.T) {
	e := testEndpoints
	if req := e.TreatmentsByLevel(""); req != nil {
		t.Errorf("TreatmentsByLevel(\"\") = %+v, want nil", req)
	}
	if req := e.Numbers("bogus", ""); req != nil {
		t.Errorf("Numbers(bogus) = %+v, want nil", req)
	}
}

func TestEndpoints_Escaping(t *testing.T) {
	e := testEndpoints

	tests := []struct {
		name    string
		req     *Request
		wantURL string
	}{
		{
			name:    "query injection",
			req:     e.SearchGene("BRAF&exactMatch=true", false),
			wantURL: "https://kb.example/api/v1/search/gene?query=BRAF%26exactMatch%3Dtrue&exactMatch=false",
		},
		{
			name:    "path traversal",
			req:     e.Numbers(NumbersGene, "../admin"),
			wantURL: "https://kb.example/api/v1/numbers/gene/..%2Fadmin",
		},
		{
			name:    "space in symbol",
			req:     e.GeneSummary("NKX2 1"),
			wantURL: "https://kb.example/api/v1/search/evidences?hugoSymbol=NKX2+1&type=GENE_SUMMARY",
		},
		{
			name:    "comma inside study id",
			req:     e.Studies([]string{"a,b"}),
			wantURL: "http://portal.example/api-legacy/studies?study_ids=a%2Cb",
		},
		{
			name:    "level with plus",
			req:     e.TreatmentsByLevel("R1+2"),
			wantURL: "https://kb.example/legacy-api/evidence.json?levels=R1%2B2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.req.URL != tt.wantURL {
				t.Errorf("URL = %s, want %s", tt.req.URL, tt.wantURL)
			}
		})
	}
}

func TestBuildURL_BaseWithoutTrailingSlash(t *testing.T) {
	got := buildURL("https://kb.example/api", []string{"genes", ""})
	if got != "https://kb.example/api/genes/" {
		t.Errorf("buildURL() = %s", got)
	}
}
