package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/oncokb/kbtip/internal/levels"
	"github.com/oncokb/kbtip/internal/tooltip"
)

// tooltipResponse carries the widget configuration and its final content.
// Error is set when the content fell back to the error state.
type tooltipResponse struct {
	Options tooltip.Options `json:"options"`
	Content string          `json:"content"`
	Classes string          `json:"classes"`
	Error   string          `json:"error,omitempty"`
}

// resolveTooltip resolves a tooltip within the request. A client disconnect
// cancels any publication fetch.
func (s *Server) resolveTooltip(r *http.Request) (any, error) {
	var raw tooltip.RawParams
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return nil, withStatus(fmt.Errorf("%w: decoding tooltip params: %v", errBadRequest, err), http.StatusBadRequest)
	}

	p := raw.Params()
	res, err := s.resolver.Render(r.Context(), p)

	out := tooltipResponse{
		Options: s.resolver.Options(p),
		Content: res.HTML,
		Classes: res.Classes,
	}
	if err != nil {
		s.logger.Warn("tooltip content failed", zap.Stringer("kind", p.Kind), zap.Error(err))
		out.Error = err.Error()
	}
	return out, nil
}

type levelEntry struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

func (s *Server) listLevels(_ *http.Request) (any, error) {
	codes := s.levels.Codes()
	out := make([]levelEntry, 0, len(codes))
	for _, code := range codes {
		out = append(out, levelEntry{Code: code, Description: s.levels.Lookup(code)})
	}
	return out, nil
}

func (s *Server) getLevel(r *http.Request) (any, error) {
	code := levels.Normalize(urlParam(r, "code"))
	if !s.levels.Has(code) {
		return nil, withStatus(fmt.Errorf("%w: level %q", errNotFound, code), http.StatusNotFound)
	}
	return levelEntry{Code: code, Description: s.levels.Lookup(code)}, nil
}
