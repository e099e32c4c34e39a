package validators

import (
	"net/http"
	"strings"
)

// FormOrQueryValue extracts a field from the query string first, then from a
// urlencoded or multipart body. Unparseable bodies are treated as absent
// rather than rejected, so clients sending the field in the query string are
// never blocked by a junk body.
func FormOrQueryValue(r *http.Request, key string) string {
	if v := strings.TrimSpace(r.URL.Query().Get(key)); v != "" {
		return v
	}

	ct := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(ct, "multipart/form-data"):
		_ = r.ParseMultipartForm(1 << 20)
	default:
		_ = r.ParseForm()
	}
	if r.PostForm != nil {
		return strings.TrimSpace(r.PostForm.Get(key))
	}
	return ""
}
