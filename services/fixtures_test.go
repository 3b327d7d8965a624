package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusevents/analytics"
	"campusevents/database"
	"campusevents/models"
)

var testNow = time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)

func intPtr(v int) *int            { return &v }
func floatPtr(v float64) *float64  { return &v }
func fixedClock() func() time.Time { return func() time.Time { return testNow } }

// fakeSource serves a mutable in-memory snapshot and counts loads
type fakeSource struct {
	mu       sync.Mutex
	snapshot analytics.Collections
	err      error
	loads    int
}

func (f *fakeSource) Load(_ context.Context) (*analytics.Collections, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.err != nil {
		return nil, f.err
	}
	c := f.snapshot
	return &c, nil
}

func campusSnapshot() analytics.Collections {
	return analytics.Collections{
		Users: []models.User{
			{ID: "u1", Name: "Asha", Email: "asha@campus.edu", CreatedAt: "2024-03-01T09:00:00Z"},
			{ID: "u2", Name: "Ravi", Email: "ravi@campus.edu", IsOrganiser: true, CreatedAt: "2024-03-02T09:00:00Z"},
		},
		Events: []models.Event{
			{
				EventID:           "e1",
				Title:             "Hackathon",
				OrganizingDept:    "Computer Science",
				EventDate:         "2024-04-01",
				CreatedBy:         "ravi@campus.edu",
				CreatedAt:         "2024-03-10T10:00:00Z",
				RegistrationFee:   floatPtr(100),
				RegistrationCount: intPtr(3),
			},
			{
				EventID:           "e2",
				Title:             "Quiz Night",
				OrganizingDept:    "Mathematics",
				EventDate:         "2024-03-15",
				CreatedBy:         "ravi@campus.edu",
				CreatedAt:         "2024-03-12T10:00:00Z",
				RegistrationCount: intPtr(1),
			},
		},
		Fests: []models.Fest{
			{FestID: "f1", FestTitle: "Spring Fest", CreatedAt: "2024-03-05T10:00:00Z", RegistrationCount: intPtr(40)},
		},
		Registrations: []models.Registration{
			{RegistrationID: "r1", EventID: "e1", RegistrationType: models.RegistrationIndividual, CreatedAt: "2024-03-11T10:00:00Z"},
			{RegistrationID: "r2", EventID: "e1", RegistrationType: models.RegistrationTeam, CreatedAt: "2024-03-15T10:00:00Z", Teammates: []interface{}{"a", "b"}},
			{RegistrationID: "r3", EventID: "e2", RegistrationType: models.RegistrationIndividual, CreatedAt: "2024-03-13T10:00:00Z"},
		},
	}
}

func newTestAnalyticsService(source SnapshotSource, cache *ResultCache) *AnalyticsService {
	svc := NewAnalyticsService(source, cache, nil, analytics.Params{DateRange: analytics.Range30Days, TopN: analytics.DefaultTopN})
	svc.SetClock(fixedClock())
	return svc
}

// fakeExportRepo keeps export records in memory
type fakeExportRepo struct {
	records   []models.ExportRecord
	insertErr error
}

func (f *fakeExportRepo) Insert(_ context.Context, record *models.ExportRecord) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	record.ID = primitive.NewObjectID()
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeExportRepo) List(_ context.Context, limit int) ([]models.ExportRecord, error) {
	out := make([]models.ExportRecord, 0, limit)
	for i := len(f.records) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.records[i])
	}
	return out, nil
}

func (f *fakeExportRepo) FindByExportID(_ context.Context, exportID string) (*models.ExportRecord, error) {
	for i := range f.records {
		if f.records[i].ExportID == exportID {
			record := f.records[i]
			return &record, nil
		}
	}
	return nil, database.ErrNotFound
}

// fakeAdminRepo keeps admins in memory
type fakeAdminRepo struct {
	admins  []*models.Admin
	touched []primitive.ObjectID
}

func (f *fakeAdminRepo) FindByEmail(_ context.Context, email string) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeAdminRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Admin, error) {
	for _, a := range f.admins {
		if a.ID == id {
			copied := *a
			return &copied, nil
		}
	}
	return nil, database.ErrNotFound
}

func (f *fakeAdminRepo) TouchLastLogin(_ context.Context, id primitive.ObjectID, _ time.Time) error {
	f.touched = append(f.touched, id)
	return nil
}

var errBoom = errors.New("boom")
