package database

import (
	"math"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"campusevents/models"
)

// The platform collections are written by other services and field types drift,
// for example fees stored as strings or timestamps stored as BSON dates. Each field
// is read on its own; a value that cannot be interpreted comes back empty ("" or nil).

func decodeUser(raw bson.Raw) models.User {
	return models.User{
		ID:            stringField(raw, "id"),
		Email:         stringField(raw, "email"),
		Name:          stringField(raw, "name"),
		IsOrganiser:   boolField(raw, "is_organiser"),
		IsSupport:     boolField(raw, "is_support"),
		IsMasterAdmin: boolField(raw, "is_masteradmin"),
		CreatedAt:     timestampField(raw, "created_at"),
	}
}

func decodeEvent(raw bson.Raw) models.Event {
	return models.Event{
		EventID:           stringField(raw, "event_id"),
		Title:             stringField(raw, "title"),
		OrganizingDept:    stringField(raw, "organizing_dept"),
		EventDate:         timestampField(raw, "event_date"),
		CreatedBy:         stringField(raw, "created_by"),
		CreatedAt:         timestampField(raw, "created_at"),
		RegistrationFee:   floatField(raw, "registration_fee"),
		RegistrationCount: intField(raw, "registration_count"),
	}
}

func decodeFest(raw bson.Raw) models.Fest {
	return models.Fest{
		FestID:            stringField(raw, "fest_id"),
		FestTitle:         stringField(raw, "fest_title"),
		OrganizingDept:    stringField(raw, "organizing_dept"),
		OpeningDate:       timestampField(raw, "opening_date"),
		CreatedBy:         stringField(raw, "created_by"),
		CreatedAt:         timestampField(raw, "created_at"),
		RegistrationCount: intField(raw, "registration_count"),
	}
}

func decodeRegistration(raw bson.Raw) models.Registration {
	return models.Registration{
		RegistrationID:   stringField(raw, "registration_id"),
		EventID:          stringField(raw, "event_id"),
		RegistrationType: stringField(raw, "registration_type"),
		CreatedAt:        timestampField(raw, "created_at"),
		Teammates:        arrayField(raw, "teammates"),
	}
}

// stringField reads text, ObjectIDs as hex and integers in decimal.
func stringField(raw bson.Raw, key string) string {
	value := raw.Lookup(key)
	if s, ok := value.StringValueOK(); ok {
		return s
	}
	if id, ok := value.ObjectIDOK(); ok {
		return id.Hex()
	}
	if n, ok := value.Int32OK(); ok {
		return strconv.FormatInt(int64(n), 10)
	}
	if n, ok := value.Int64OK(); ok {
		return strconv.FormatInt(n, 10)
	}
	return ""
}

// timestampField keeps strings as stored and renders BSON dates and timestamps
// as RFC3339 in UTC, so both parse downstream.
func timestampField(raw bson.Raw, key string) string {
	value := raw.Lookup(key)
	if s, ok := value.StringValueOK(); ok {
		return s
	}
	if t, ok := value.TimeOK(); ok {
		return t.UTC().Format(time.RFC3339Nano)
	}
	if sec, _, ok := value.TimestampOK(); ok {
		return time.Unix(int64(sec), 0).UTC().Format(time.RFC3339)
	}
	return ""
}

func floatField(raw bson.Raw, key string) *float64 {
	value := raw.Lookup(key)
	if f, ok := value.DoubleOK(); ok {
		return finite(f)
	}
	if n, ok := value.AsInt64OK(); ok {
		f := float64(n)
		return &f
	}
	if d, ok := value.Decimal128OK(); ok {
		return parseFloat(d.String())
	}
	if s, ok := value.StringValueOK(); ok {
		return parseFloat(s)
	}
	return nil
}

// intField accepts any number or numeric string; fractions are truncated.
func intField(raw bson.Raw, key string) *int {
	f := floatField(raw, key)
	if f == nil {
		return nil
	}
	v := int(*f)
	return &v
}

func boolField(raw bson.Raw, key string) bool {
	b, _ := raw.Lookup(key).BooleanOK()
	return b
}

func arrayField(raw bson.Raw, key string) []interface{} {
	array, ok := raw.Lookup(key).ArrayOK()
	if !ok {
		return nil
	}
	values, err := array.Values()
	if err != nil {
		return nil
	}

	items := make([]interface{}, 0, len(values))
	for _, v := range values {
		var item interface{}
		if err := v.Unmarshal(&item); err != nil {
			item = nil
		}
		items = append(items, item)
	}
	return items
}

func parseFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return finite(f)
}

func finite(f float64) *float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}
