package web

import "strings"

// OriginAllowed reports whether origin appears in allowed, a comma-separated list.
// A "*" entry allows any origin.
func OriginAllowed(allowed, origin string) bool {
	if origin == "" {
		return false
	}
	for entry := range strings.SplitSeq(allowed, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "*" || strings.EqualFold(entry, origin) {
			return true
		}
	}
	return false
}
