package mask

const (
	// Redaction is appended to the first character of short values
	Redaction = "***"
	// Separator joins the head and tail of long values
	Separator = "..."

	// ShortLimit is the longest value that is reduced to its first character
	ShortLimit = 8

	keep = 4
)

// Value masks a secret for display. Values of up to 8 characters keep only
// their first character; longer values keep the first and last 4.
func Value(s string) string {
	r := []rune(s)
	if len(r) <= ShortLimit {
		if len(r) == 0 {
			return Redaction
		}
		return string(r[:1]) + Redaction
	}
	return string(r[:keep]) + Separator + string(r[len(r)-keep:])
}

// Optional masks a value that may be absent. An absent value stays absent.
func Optional(s string, ok bool) (string, bool) {
	if !ok {
		return "", false
	}
	return Value(s), true
}

// Display renders an optional value in masked form, or None when absent
func Display(s string, ok bool) string {
	masked, ok := Optional(s, ok)
	if !ok {
		return "None"
	}
	return masked
}
