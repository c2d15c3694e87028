package reference

import (
	"bytes"
	"encoding/json"
)

// isJSONArray reports whether raw holds a JSON array.
func isJSONArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// NormalizePublicationIDs decodes a caller-supplied id list. Anything that is
// not a JSON array, or that fails to decode as one, yields an empty list.
// Elements that are neither strings nor numbers are skipped.
func NormalizePublicationIDs(raw json.RawMessage) []PublicationID {
	ids := []PublicationID{}
	if !isJSONArray(raw) {
		return ids
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return ids
	}
	for _, e := range elems {
		var id PublicationID
		if err := json.Unmarshal(e, &id); err != nil {
			continue
		}
		if id == "" {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// NormalizeAbstracts decodes a caller-supplied abstract list. The second
// return value is false when raw is not array-like, in which case the
// abstracts section must be omitted entirely. Non-object elements are skipped.
func NormalizeAbstracts(raw json.RawMessage) ([]AbstractSummary, bool) {
	if !isJSONArray(raw) {
		return nil, false
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(raw, &elems); err != nil {
		return nil, false
	}

	abstracts := make([]AbstractSummary, 0, len(elems))
	for _, e := range elems {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(e, &obj); err != nil || obj == nil {
			continue
		}
		var a AbstractSummary
		_ = json.Unmarshal(obj["abstract"], &a.Abstract)
		// A non-string link is treated as absent.
		_ = json.Unmarshal(obj["link"], &a.Link)
		abstracts = append(abstracts, a)
	}
	return abstracts, true
}
