package subtitle

// Resolve returns a copy of entries with end times filled in. Each entry ends
// where the next one starts, even if that is earlier than its own start; the
// last entry is shown for FallbackDuration.
func Resolve(entries []Entry) []Entry {
	resolved := make([]Entry, len(entries))
	copy(resolved, entries)

	for i := range resolved {
		var end uint32
		if i+1 < len(resolved) {
			end = resolved[i+1].StartMS
		} else {
			end = resolved[i].StartMS + FallbackDuration
		}
		resolved[i].EndMS = &end
	}

	return resolved
}
