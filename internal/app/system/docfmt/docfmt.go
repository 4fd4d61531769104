// Package docfmt converts raw store documents into JSON-safe API shapes:
// ObjectIDs become hex strings, BSON timestamps become RFC 3339 UTC strings,
// nested documents and arrays are walked recursively, and the _id key is
// renamed to id. Values the walker does not recognize pass through
// unchanged, so a well-formed document never fails to format.
package docfmt

import (
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Document formats one store document. nil in, nil out. The result contains
// only plain Go values (string, bool, float64/ints, []any, map[string]any),
// and formatting an already-formatted document is a no-op.
func Document(doc bson.M) map[string]any {
	if doc == nil {
		return nil
	}

	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = Value(v)
	}

	if id, ok := out["_id"]; ok {
		out["id"] = id
		delete(out, "_id")
	}
	return out
}

// Documents formats a slice of store documents element-wise.
func Documents(docs []bson.M) []map[string]any {
	out := make([]map[string]any, len(docs))
	for i, d := range docs {
		out[i] = Document(d)
	}
	return out
}

// Value formats a single field value.
func Value(v any) any {
	switch t := v.(type) {
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case time.Time:
		return t.UTC().Format(time.RFC3339)
	case bson.M:
		return Document(t)
	case map[string]any:
		return Document(bson.M(t))
	case bson.D:
		return Document(t.Map())
	case primitive.A:
		return formatSlice(t)
	case []any:
		return formatSlice(t)
	case []bson.M:
		out := make([]any, len(t))
		for i, d := range t {
			out[i] = Document(d)
		}
		return out
	default:
		// Scalars and anything unrecognized pass through unchanged.
		return v
	}
}

func formatSlice(s []any) []any {
	out := make([]any, len(s))
	for i, v := range s {
		out[i] = Value(v)
	}
	return out
}
