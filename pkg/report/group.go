package report

import "mercator-hq/parallax/pkg/interpret"

// Group is the results of one observer, in entity order.
type Group struct {
	Observer string
	Results  []interpret.Result
}

// GroupResults splits results into consecutive runs sharing an observer
// name. An observer that reappears after another one starts a new group.
func GroupResults(results []interpret.Result) []Group {
	var groups []Group
	for _, r := range results {
		if n := len(groups); n > 0 && groups[n-1].Observer == r.ObserverName {
			groups[n-1].Results = append(groups[n-1].Results, r)
			continue
		}
		groups = append(groups, Group{
			Observer: r.ObserverName,
			Results:  []interpret.Result{r},
		})
	}
	return groups
}
