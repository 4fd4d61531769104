// internal/app/system/search/search.go
package search

import (
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Substring returns a case-insensitive substring-match predicate for one
// field. The needle is escaped so regex metacharacters match literally.
func Substring(needle string) primitive.Regex {
	return primitive.Regex{Pattern: quote(needle), Options: "i"}
}

// AnyField builds the OR clause for a free-text query across fields.
// Returns nil when q is blank so callers can skip the clause entirely.
func AnyField(q string, fields ...string) bson.A {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	or := make(bson.A, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: Substring(q)})
	}
	return or
}

// quote escapes regex metacharacters.
func quote(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\.+*?()|[]{}^$`, r) {
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
