package api

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/oncokb/kbtip/internal/reference"
)

// PubMedArticles fetches the raw esummary envelope for ids.
func (c *Client) PubMedArticles(ctx context.Context, ids []reference.PublicationID) (*Response, error) {
	return c.Do(ctx, c.endpoints.PubMedArticles(ids))
}

// PublicationRecords fetches and decodes publication metadata for ids, in
// upstream order. An empty id list returns no records without a request.
//
// Concurrent calls for the same id list share one upstream request; a caller
// whose ctx ends stops waiting without cancelling the shared request.
func (c *Client) PublicationRecords(ctx context.Context, ids []reference.PublicationID) ([]reference.PublicationRecord, error) {
	if len(ids) == 0 {
		return []reference.PublicationRecord{}, nil
	}

	req := c.endpoints.PubMedArticles(ids)
	shared := context.WithoutCancel(ctx)
	ch := c.inflight.DoChan(req.URL, func() (any, error) {
		resp, err := c.Do(shared, req)
		if err != nil {
			return nil, err
		}
		return DecodePublicationRecords(resp.Data)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		records := res.Val.([]reference.PublicationRecord)
		// Callers sharing a flight must not alias one slice.
		out := make([]reference.PublicationRecord, len(records))
		copy(out, records)
		return out, nil
	}
}

// esummaryRecord is one entry of the esummary result map.
type esummaryRecord struct {
	reference.PublicationRecord
	Error string `json:"error,omitempty"`
}

// DecodePublicationRecords decodes an E-utilities esummary JSON body of the
// form {"result": {"uids": [...], "<uid>": {...}, ...}}. A body without a
// result section yields no records. Records the upstream flags with an error
// (unknown ids) are skipped.
func DecodePublicationRecords(data []byte) ([]reference.PublicationRecord, error) {
	var envelope struct {
		Result map[string]json.RawMessage `json:"result"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("%w: parsing esummary: %v", ErrInvalidResponse, err)
	}

	records := []reference.PublicationRecord{}
	if envelope.Result == nil {
		return records, nil
	}

	var uids []string
	if raw, ok := envelope.Result["uids"]; ok {
		if err := json.Unmarshal(raw, &uids); err != nil {
			return nil, fmt.Errorf("%w: parsing esummary uids: %v", ErrInvalidResponse, err)
		}
	}

	for _, uid := range uids {
		raw, ok := envelope.Result[uid]
		if !ok {
			continue
		}
		var rec esummaryRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("%w: parsing esummary record %s: %v", ErrInvalidResponse, uid, err)
		}
		if rec.Error != "" {
			continue
		}
		if rec.UID == "" {
			rec.UID = uid
		}
		records = append(records, rec.PublicationRecord)
	}

	return records, nil
}
