package interactive

import "strings"

// Route says how a question batch should be answered: by the regular
// retrieval flow or by one of the side-channel lookups.
type Route int

const (
	RouteNone Route = iota
	RouteFlightNumber
	RouteSecretToken
)

// RouteFor scans the batch for side-channel triggers. The flight trigger
// outranks the token trigger when both appear, and one triggering question
// routes the entire batch.
func RouteFor(questions []string) Route {
	if hasTrigger(questions, "flight number") {
		return RouteFlightNumber
	}
	if hasTrigger(questions, "secret token") {
		return RouteSecretToken
	}
	return RouteNone
}

func hasTrigger(questions []string, trigger string) bool {
	for _, q := range questions {
		if strings.Contains(strings.ToLower(q), trigger) {
			return true
		}
	}
	return false
}
