package tunnel

import "strings"

// FilterByName retains records whose name contains keyword as a
// case-insensitive substring, preserving order. An empty keyword keeps
// everything; records with an empty name never survive a non-empty keyword.
func FilterByName(records []Record, keyword string) []Record {
	if keyword == "" {
		return records
	}
	keyword = strings.ToLower(keyword)
	var out []Record
	for _, rec := range records {
		if rec.Name == "" {
			continue
		}
		if strings.Contains(strings.ToLower(rec.Name), keyword) {
			out = append(out, rec)
		}
	}
	return out
}
