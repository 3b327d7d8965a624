package models

// Event is a single campus event. Timestamps are kept as the strings the upstream
// platform stored; they are parsed lazily and may be empty or malformed.
type Event struct {
	EventID           string   `bson:"event_id" json:"event_id"`
	Title             string   `bson:"title" json:"title"`
	OrganizingDept    string   `bson:"organizing_dept" json:"organizing_dept"`
	EventDate         string   `bson:"event_date" json:"event_date"`
	CreatedBy         string   `bson:"created_by" json:"created_by"`
	CreatedAt         string   `bson:"created_at" json:"created_at"`
	RegistrationFee   *float64 `bson:"registration_fee,omitempty" json:"registration_fee"`
	RegistrationCount *int     `bson:"registration_count,omitempty" json:"registration_count,omitempty"`
}

// Fee returns the registration fee, treating a missing fee as free.
func (e Event) Fee() float64 {
	if e.RegistrationFee == nil {
		return 0
	}
	return *e.RegistrationFee
}

// Registrations returns the aggregate registration count, 0 when absent.
func (e Event) Registrations() int {
	if e.RegistrationCount == nil {
		return 0
	}
	return *e.RegistrationCount
}

// Fest groups several events under one banner.
type Fest struct {
	FestID            string `bson:"fest_id" json:"fest_id"`
	FestTitle         string `bson:"fest_title" json:"fest_title"`
	OrganizingDept    string `bson:"organizing_dept" json:"organizing_dept"`
	OpeningDate       string `bson:"opening_date" json:"opening_date"`
	CreatedBy         string `bson:"created_by" json:"created_by"`
	CreatedAt         string `bson:"created_at" json:"created_at"`
	RegistrationCount *int   `bson:"registration_count,omitempty" json:"registration_count,omitempty"`
}

// Registrations returns the aggregate registration count, 0 when absent.
func (f Fest) Registrations() int {
	if f.RegistrationCount == nil {
		return 0
	}
	return *f.RegistrationCount
}
