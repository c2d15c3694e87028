package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/oncokb/kbtip/internal/api"
	"github.com/oncokb/kbtip/internal/reference"
)

// refCall performs one reference-client operation for a request. A nil
// response means the request was not specific enough to send.
type refCall func(ctx context.Context, r *http.Request) (*api.Response, error)

// proxy writes the upstream body and status of call.
func (s *Server) proxy(call refCall) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := call(r.Context(), r)
		if err != nil {
			writeError(w, err)
			return
		}
		if resp == nil {
			writeError(w, withStatus(errUnspecified, http.StatusBadRequest))
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		_, _ = w.Write(resp.Data)
	}
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

// listParam splits a comma-separated query parameter, dropping blanks.
func listParam(r *http.Request, key string) []string {
	var out []string
	for _, v := range strings.Split(r.URL.Query().Get(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func (s *Server) numbers(ctx context.Context, r *http.Request) (*api.Response, error) {
	scope := api.NumbersScope(urlParam(r, "scope"))
	if scope == api.NumbersGene {
		return nil, nil
	}
	return s.client.Numbers(ctx, scope, "")
}

func (s *Server) geneNumbers(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.Numbers(ctx, api.NumbersGene, urlParam(r, "symbol"))
}

func (s *Server) searchGene(ctx context.Context, r *http.Request) (*api.Response, error) {
	q := r.URL.Query()
	exact, _ := strconv.ParseBool(q.Get("exactMatch"))
	return s.client.SearchGene(ctx, q.Get("query"), exact)
}

func (s *Server) genes(ctx context.Context, _ *http.Request) (*api.Response, error) {
	return s.client.Genes(ctx)
}

func (s *Server) geneSummary(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.GeneSummary(ctx, urlParam(r, "symbol"))
}

func (s *Server) geneBackground(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.GeneBackground(ctx, urlParam(r, "symbol"))
}

func (s *Server) clinicalVariants(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.ClinicalVariants(ctx, urlParam(r, "symbol"))
}

func (s *Server) biologicalVariants(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.BiologicalVariants(ctx, urlParam(r, "symbol"))
}

func (s *Server) mutationMapperData(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.MutationMapperData(ctx, urlParam(r, "symbol"))
}

func (s *Server) sampleCount(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.PortalAlterationSampleCount(ctx, r.URL.Query().Get("hugoSymbol"))
}

func (s *Server) studies(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.Studies(ctx, listParam(r, "ids"))
}

func (s *Server) articles(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.PubMedArticles(ctx, publicationIDs(r))
}

func (s *Server) treatments(ctx context.Context, r *http.Request) (*api.Response, error) {
	return s.client.TreatmentsByLevel(ctx, r.URL.Query().Get("level"))
}

// publications returns decoded publication records in request order.
func (s *Server) publications(r *http.Request) (any, error) {
	return s.client.PublicationRecords(r.Context(), publicationIDs(r))
}

func publicationIDs(r *http.Request) []reference.PublicationID {
	raw := listParam(r, "ids")
	ids := make([]reference.PublicationID, 0, len(raw))
	for _, id := range raw {
		ids = append(ids, reference.PublicationID(id))
	}
	return ids
}
