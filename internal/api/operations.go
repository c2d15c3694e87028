package api

import (
	"context"
)

// Numbers fetches summary counts. It returns (nil, nil) without issuing a
// request when scope is unknown.
func (c *Client) Numbers(ctx context.Context, scope NumbersScope, symbol string) (*Response, error) {
	req := c.endpoints.Numbers(scope, symbol)
	if req == nil {
		return nil, nil
	}
	return c.Do(ctx, req)
}

// SearchGene searches genes by symbol or alias.
func (c *Client) SearchGene(ctx context.Context, query string, exactMatch bool) (*Response, error) {
	return c.Do(ctx, c.endpoints.SearchGene(query, exactMatch))
}

// Genes fetches the full gene list.
func (c *Client) Genes(ctx context.Context) (*Response, error) {
	return c.Do(ctx, c.endpoints.Genes())
}

// GeneSummary fetches the summary evidence for a gene.
func (c *Client) GeneSummary(ctx context.Context, symbol string) (*Response, error) {
	return c.Do(ctx, c.endpoints.GeneSummary(symbol))
}

// GeneBackground fetches the background evidence for a gene.
func (c *Client) GeneBackground(ctx context.Context, symbol string) (*Response, error) {
	return c.Do(ctx, c.endpoints.GeneBackground(symbol))
}

// ClinicalVariants fetches clinically actionable variants for a gene.
func (c *Client) ClinicalVariants(ctx context.Context, symbol string) (*Response, error) {
	return c.Do(ctx, c.endpoints.ClinicalVariants(symbol))
}

// BiologicalVariants fetches biological variants for a gene.
func (c *Client) BiologicalVariants(ctx context.Context, symbol string) (*Response, error) {
	return c.Do(ctx, c.endpoints.BiologicalVariants(symbol))
}

// PortalAlterationSampleCount fetches sample counts, for one gene or all.
func (c *Client) PortalAlterationSampleCount(ctx context.Context, symbol string) (*Response, error) {
	return c.Do(ctx, c.endpoints.PortalAlterationSampleCount(symbol))
}

// MutationMapperData fetches the mutation-mapper payload for a gene.
func (c *Client) MutationMapperData(ctx context.Context, symbol string) (*Response, error) {
	return c.Do(ctx, c.endpoints.MutationMapperData(symbol))
}

// Studies looks up studies by id.
func (c *Client) Studies(ctx context.Context, studyIDs []string) (*Response, error) {
	return c.Do(ctx, c.endpoints.Studies(studyIDs))
}

// TreatmentsByLevel fetches treatments at an evidence level. It returns
// (nil, nil) without issuing a request when level is unspecified.
func (c *Client) TreatmentsByLevel(ctx context.Context, level string) (*Response, error) {
	req := c.endpoints.TreatmentsByLevel(level)
	if req == nil {
		return nil, nil
	}
	return c.Do(ctx, req)
}
