// Package fieldpick resolves legacy/new field-name fallback chains against a
// formatted document. The directory migrated several attributes to new field
// names (company -> company_name, business_description ->
// company_description) without rewriting old records, so reads consult an
// ordered candidate list. Keeping the chains in one helper keeps the
// migration policy visible instead of scattered per endpoint.
package fieldpick

// First returns the first non-empty string value among the named fields.
func First(doc map[string]any, fields ...string) string {
	for _, f := range fields {
		if s, ok := doc[f].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

// Bool returns the first present boolean among the named fields.
func Bool(doc map[string]any, fields ...string) bool {
	for _, f := range fields {
		if b, ok := doc[f].(bool); ok {
			return b
		}
	}
	return false
}

// Strings returns the first present string-slice among the named fields,
// accepting both []string and the []any shape the document formatter emits.
func Strings(doc map[string]any, fields ...string) []string {
	for _, f := range fields {
		switch t := doc[f].(type) {
		case []string:
			return t
		case []any:
			out := make([]string, 0, len(t))
			for _, v := range t {
				if s, ok := v.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}
