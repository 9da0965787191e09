package tunnel

// UnnamedLabel is the fixed group key for records with an empty name.
const UnnamedLabel = "(unnamed)"

// Group is the set of records sharing one tunnel name, in original row order.
type Group struct {
	Name    string
	Records []Record
}

// GroupByName buckets records by their literal name. Group order is the
// first-seen order of distinct names; record order within a group is the
// original row order. Empty names fall under UnnamedLabel.
func GroupByName(records []Record) []Group {
	index := map[string]int{}
	var groups []Group
	for _, rec := range records {
		name := rec.Name
		if name == "" {
			name = UnnamedLabel
		}
		i, seen := index[name]
		if !seen {
			i = len(groups)
			index[name] = i
			groups = append(groups, Group{Name: name})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}
	return groups
}
