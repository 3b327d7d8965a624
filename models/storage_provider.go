package models

// StorageProvider describes where export files are written.
type StorageProvider struct {
	Name      string                 `json:"name" validate:"required"`
	Type      string                 `json:"type"` // local, s3, r2, wasabi
	Region    string                 `json:"region"`
	Endpoint  string                 `json:"endpoint"`
	Bucket    string                 `json:"bucket"`
	AccessKey string                 `json:"access_key"`
	SecretKey string                 `json:"-"`
	Settings  map[string]interface{} `json:"settings"`
}
