package mask

// Secret collapses the middle of a credential so diagnostic output never
// carries the full value. Short secrets are hidden entirely.
func Secret(value string) string {
	const reveal = 4
	if value == "" {
		return ""
	}
	if len(value) <= reveal*3 {
		return "***"
	}
	return value[:reveal] + "..." + value[len(value)-reveal:]
}
