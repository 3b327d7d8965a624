package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ExportRecord tracks a CSV export written to the export storage provider.
type ExportRecord struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	ExportID    string             `bson:"export_id" json:"id"`
	Type        string             `bson:"type" json:"type"`
	Format      string             `bson:"format" json:"format"`
	DateRange   string             `bson:"date_range" json:"date_range"`
	Search      string             `bson:"search" json:"search"`
	Key         string             `bson:"key" json:"key"`
	Provider    string             `bson:"provider" json:"provider"`
	Size        int64              `bson:"size" json:"size"`
	Rows        int                `bson:"rows" json:"rows"`
	CreatedBy   primitive.ObjectID `bson:"created_by" json:"created_by"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	DownloadURL string             `bson:"-" json:"download_url,omitempty"`
}

type ExportRequest struct {
	Type      string `json:"type" validate:"required,oneof=departments events organisers fests timeline registration_types fee_types user_roles"`
	DateRange string `json:"range" validate:"omitempty,date_range"`
	Search    string `json:"search" validate:"max=200"`
	Format    string `json:"format" validate:"omitempty,oneof=csv"`
}
