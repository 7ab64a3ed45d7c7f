package models

import "fmt"

// Project is a contest entry stored in the `projects` collection. The
// leader and member entries are denormalized copies of user display
// names, taken at creation time; they are not rewritten when a user
// later renames themselves. That drift is accepted, the audit worker
// only reports it.
type Project struct {
	ID          string   `bson:"_id" json:"id"`
	Name        string   `bson:"name" json:"name"` // unique within the collection
	Term        string   `bson:"term" json:"term"` // owning contest term, by value
	TeamName    string   `bson:"teamName" json:"teamName"`
	LeaderName  string   `bson:"leaderName" json:"leaderName"`
	Members     []string `bson:"members" json:"members"`
	Phase       Phase    `bson:"phase" json:"phase"`
	Language    string   `bson:"language,omitempty" json:"language,omitempty"`
	Description string   `bson:"description,omitempty" json:"description,omitempty"`
	Mentor      string   `bson:"mentor,omitempty" json:"mentor,omitempty"`
	Note        string   `bson:"note,omitempty" json:"note,omitempty"`
}

// Validate checks the shape of a project document read from the store.
func (p Project) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("missing project id")
	}
	if p.Name == "" {
		return fmt.Errorf("project %s: missing name", p.ID)
	}
	if p.Term == "" {
		return fmt.Errorf("project %q: missing term", p.Name)
	}
	if p.LeaderName == "" {
		return fmt.Errorf("project %q: missing leader name", p.Name)
	}
	if !p.Phase.Valid() {
		return fmt.Errorf("project %q: unknown phase %q", p.Name, p.Phase)
	}
	return nil
}
