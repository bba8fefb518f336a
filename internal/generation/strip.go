package generation

import "strings"

// StripCodeFence removes Markdown code-fence artifacts from a model
// response. Providers are instructed to answer with bare HTML, but some
// responses still arrive wrapped in ``` markers with an optional "html"
// language tag.
func StripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.Trim(s, "`")
	s = strings.TrimPrefix(s, "html")
	return strings.TrimSpace(s)
}
