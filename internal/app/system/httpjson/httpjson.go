// Package httpjson provides the JSON request/response conventions shared by
// every API endpoint: a plain-object success envelope, an {error: message}
// failure envelope, and body decoding that accepts either a JSON document or
// a classic form post.
package httpjson

import (
	"encoding/json"
	"net/http"
	"strings"
)

// Respond writes v as application/json with the given status.
func Respond(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// OK writes v with status 200.
func OK(w http.ResponseWriter, v any) {
	Respond(w, http.StatusOK, v)
}

// Error writes {"error": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	Respond(w, status, map[string]string{"error": message})
}

// MethodNotAllowed is the shared 405 handler for the router.
func MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	Error(w, http.StatusMethodNotAllowed, "Method not allowed")
}

// Body returns the request body as a flat field map. JSON bodies are decoded
// as-is; anything else falls back to form fields (including the non-file
// fields of a multipart post). Write endpoints accept both because the
// portal's forms submit natively while newer clients send JSON.
func Body(r *http.Request) map[string]any {
	ct := r.Header.Get("Content-Type")
	if strings.Contains(ct, "application/json") {
		var m map[string]any
		if err := json.NewDecoder(r.Body).Decode(&m); err == nil && m != nil {
			return m
		}
		return map[string]any{}
	}

	if strings.Contains(ct, "multipart/form-data") {
		// 32 MB in-memory cap; larger file parts spill to disk.
		_ = r.ParseMultipartForm(32 << 20)
	} else {
		_ = r.ParseForm()
	}

	m := make(map[string]any, len(r.PostForm))
	for k, vs := range r.PostForm {
		if len(vs) == 1 {
			m[k] = vs[0]
			continue
		}
		anyVals := make([]any, len(vs))
		for i, v := range vs {
			anyVals[i] = v
		}
		m[k] = anyVals
	}
	return m
}

// Str returns the trimmed string value of the first present key.
// Used for the legacy/new parameter-name pairs the portal forms send
// (first_name vs first-name, businessEmail vs email, ...).
func Str(m map[string]any, keys ...string) string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

// Bool reports whether the first present key holds a truthy value.
// Form posts send "1"/"true"/"on"; JSON sends real booleans.
func Bool(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case bool:
			return t
		case string:
			s := strings.ToLower(strings.TrimSpace(t))
			return s != "" && s != "0" && s != "false" && s != "off"
		case float64:
			return t != 0
		}
	}
	return false
}

// Strings returns the value of the first present key as a string slice,
// accepting either a single string or an array.
func Strings(m map[string]any, keys ...string) []string {
	for _, k := range keys {
		v, ok := m[k]
		if !ok {
			continue
		}
		switch t := v.(type) {
		case string:
			if strings.TrimSpace(t) == "" {
				return nil
			}
			return []string{t}
		case []any:
			out := make([]string, 0, len(t))
			for _, e := range t {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}

// Map returns the value of the first present key as a nested object.
func Map(m map[string]any, keys ...string) map[string]any {
	for _, k := range keys {
		if v, ok := m[k].(map[string]any); ok {
			return v
		}
	}
	return nil
}
