package models

import "fmt"

// Contest is a contest instance in the `contests` collection. The term
// field (e.g. "2024-2") is what users filter and select on; it is
// human-meaningful but not guaranteed unique.
type Contest struct {
	ID          string   `bson:"_id" json:"id"`
	Term        string   `bson:"term" json:"term"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Staff       []string `bson:"staff" json:"staff"` // staff user display names
	Phase       Phase    `bson:"phase" json:"phase"`
}

func (c Contest) Validate() error {
	if c.ID == "" {
		return fmt.Errorf("missing contest id")
	}
	if c.Term == "" {
		return fmt.Errorf("contest %s: missing term", c.ID)
	}
	if !c.Phase.Valid() {
		return fmt.Errorf("contest %q: unknown phase %q", c.Term, c.Phase)
	}
	return nil
}
