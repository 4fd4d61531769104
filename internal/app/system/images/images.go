// Package images resolves stored image references to fully-qualified URLs.
// Stored values are either empty, root-relative paths like /uploads/x.jpg,
// or already-absolute URLs; only the relative form needs the portal origin
// prefixed. Pure string transform, no existence check.
package images

import "strings"

// Resolver maps stored image references to public URLs.
type Resolver struct {
	// BaseURL is the portal origin that serves uploaded images,
	// e.g. "https://myococ.connexus.team". No trailing slash.
	BaseURL string
}

// New returns a Resolver for the given portal origin. A trailing slash on
// base is dropped so joining stays predictable.
func New(base string) Resolver {
	return Resolver{BaseURL: strings.TrimRight(base, "/")}
}

// Resolve returns the public URL for a stored image reference.
func (rv Resolver) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return ref
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	return rv.BaseURL + ref
}

// ResolveAll resolves a slice of references element-wise.
func (rv Resolver) ResolveAll(refs []string) []string {
	out := make([]string, len(refs))
	for i, ref := range refs {
		out[i] = rv.Resolve(ref)
	}
	return out
}
