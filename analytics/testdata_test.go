package analytics

import (
	"campusevents/models"
)

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

func event(id, title, dept, createdAt string) models.Event {
	return models.Event{
		EventID:        id,
		Title:          title,
		OrganizingDept: dept,
		CreatedBy:      "organiser@campus.edu",
		CreatedAt:      createdAt,
	}
}

func registration(id, eventID, createdAt string) models.Registration {
	return models.Registration{
		RegistrationID:   id,
		EventID:          eventID,
		RegistrationType: models.RegistrationIndividual,
		CreatedAt:        createdAt,
	}
}
