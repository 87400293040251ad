package interpret

import "fmt"

// Result is what one observer perceives of one entity.
//
// Perceived is false exactly when Label is empty.
type Result struct {
	ObserverName string `json:"observer"`
	EntityID     int    `json:"entity_id"`
	Label        string `json:"label,omitempty"`
	Perceived    bool   `json:"perceived"`
}

func (r Result) String() string {
	if !r.Perceived {
		return fmt.Sprintf("observer %s does not perceive entity %d", r.ObserverName, r.EntityID)
	}
	return fmt.Sprintf("observer %s sees entity %d as: %s", r.ObserverName, r.EntityID, r.Label)
}
