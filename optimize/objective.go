package optimize

import "fmt"

// Objective is the closed set of optimization strategies. Keeping it a
// typed enum means a request for anything unimplemented fails loudly
// instead of silently running the default strategy.
type Objective int

const (
	ObjectiveMinCost Objective = iota // Place the load in the cheapest hours
	objectiveCount                    // Number of objectives
)

func (o Objective) String() string {
	switch o {
	case ObjectiveMinCost:
		return "min_cost"
	default:
		return "unknown"
	}
}

func (o Objective) IsValid() bool {
	return o >= ObjectiveMinCost && o < objectiveCount
}

func ParseObjective(str string) (Objective, error) {
	switch str {
	case "min_cost":
		return ObjectiveMinCost, nil
	default:
		return Objective(-1), fmt.Errorf("%w: %q", ErrUnsupportedObjective, str)
	}
}
