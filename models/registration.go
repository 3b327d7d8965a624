package models

const (
	RegistrationIndividual = "individual"
	RegistrationTeam       = "team"
)

type Registration struct {
	RegistrationID   string        `bson:"registration_id" json:"registration_id"`
	EventID          string        `bson:"event_id" json:"event_id"`
	RegistrationType string        `bson:"registration_type" json:"registration_type"`
	CreatedAt        string        `bson:"created_at" json:"created_at"`
	Teammates        []interface{} `bson:"teammates,omitempty" json:"teammates,omitempty"`
}

// Participants is the head count behind a registration: the registrant plus any
// teammates for team entries, otherwise one.
func (r Registration) Participants() int {
	if r.RegistrationType == RegistrationTeam {
		return 1 + len(r.Teammates)
	}
	return 1
}
