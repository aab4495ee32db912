// SPDX-FileCopyrightText: 2025 The Fontgrab Authors
// SPDX-License-Identifier: EUPL-1.2

package catalog

import (
	"encoding/json"

	"github.com/fontgrab/fontgrab/internal/domain"
)

// collectionKeys are the wrapper fields a listing response may use for
// its entry collection, in precedence order. A new catalog shape means
// adding a key here, nothing else.
var collectionKeys = []string{"fonts", "data", "items", "results"}

// catalogEntry is one listing entry. The name is taken from the first
// non-empty field in the order slug, name, id.
type catalogEntry struct {
	Slug string          `json:"slug"`
	Name string          `json:"name"`
	ID   json.RawMessage `json:"id"`
}

func (e catalogEntry) identifier() domain.Identifier {
	for _, candidate := range []string{e.Slug, e.Name, e.idString()} {
		if candidate != "" {
			return domain.NormalizeIdentifier(candidate)
		}
	}

	return ""
}

// idString renders the id field, which catalogs serve as either a
// string or a number.
func (e catalogEntry) idString() string {
	if len(e.ID) == 0 {
		return ""
	}

	var s string
	if err := json.Unmarshal(e.ID, &s); err == nil {
		return s
	}

	var n json.Number
	if err := json.Unmarshal(e.ID, &n); err == nil {
		return n.String()
	}

	return ""
}

// parseListing extracts identifiers from a listing body. Accepted
// shapes, tried deterministically: a JSON object holding the entry
// collection under one of collectionKeys, or a bare JSON array. Each
// entry is either an object with a name-bearing field or a plain
// string. Returns nil when the body matches no accepted shape.
func parseListing(body []byte) []domain.Identifier {
	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(body, &wrapper); err == nil {
		for _, key := range collectionKeys {
			raw, ok := wrapper[key]
			if !ok {
				continue
			}

			if ids := parseEntries(raw); len(ids) > 0 {
				return ids
			}
		}

		return nil
	}

	return parseEntries(body)
}

// parseEntries decodes a JSON array of entries into identifiers.
func parseEntries(raw []byte) []domain.Identifier {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}

	ids := make([]domain.Identifier, 0, len(items))

	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if id := domain.NormalizeIdentifier(s); id.IsValid() {
				ids = append(ids, id)
			}

			continue
		}

		var entry catalogEntry
		if err := json.Unmarshal(item, &entry); err != nil {
			continue
		}

		if id := entry.identifier(); id.IsValid() {
			ids = append(ids, id)
		}
	}

	return ids
}
