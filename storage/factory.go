package storage

import (
	"fmt"
	"strings"

	"campusevents/models"
)

// NewStorageClient creates a new storage client based on provider type
func NewStorageClient(provider *models.StorageProvider) (StorageInterface, error) {
	if err := ValidateProvider(provider); err != nil {
		return nil, err
	}

	switch strings.ToLower(provider.Type) {
	case "local":
		return NewLocalClient(provider)
	case "s3":
		return NewS3Client(provider)
	case "wasabi":
		cfg := *provider
		if cfg.Endpoint == "" {
			cfg.Endpoint = wasabiEndpoint(cfg.Region)
		}
		return NewS3Client(&cfg)
	case "r2":
		cfg := *provider
		if cfg.Endpoint == "" {
			accountID, _ := cfg.Settings["account_id"].(string)
			cfg.Endpoint = fmt.Sprintf("https://%s.r2.cloudflarestorage.com", accountID)
		}
		cfg.Region = "auto"
		return NewS3Client(&cfg)
	default:
		return nil, fmt.Errorf("unsupported storage provider type: %s", provider.Type)
	}
}

// ValidateProvider validates storage provider configuration
func ValidateProvider(provider *models.StorageProvider) error {
	if provider == nil {
		return fmt.Errorf("provider is required")
	}
	if provider.Name == "" {
		return fmt.Errorf("provider name is required")
	}

	switch strings.ToLower(provider.Type) {
	case "local":
		return nil
	case "s3":
		return validateS3Provider(provider, "AWS")
	case "wasabi":
		return validateS3Provider(provider, "Wasabi")
	case "r2":
		return validateR2Provider(provider)
	default:
		return fmt.Errorf("unsupported provider type: %s", provider.Type)
	}
}

func validateS3Provider(provider *models.StorageProvider, label string) error {
	if provider.Bucket == "" {
		return fmt.Errorf("bucket name is required")
	}

	if provider.AccessKey == "" || provider.SecretKey == "" {
		return fmt.Errorf("%s access key and secret key are required", label)
	}

	if provider.Region == "" {
		return fmt.Errorf("%s region is required", label)
	}

	return nil
}

func validateR2Provider(provider *models.StorageProvider) error {
	if provider.Bucket == "" {
		return fmt.Errorf("bucket name is required")
	}

	if provider.AccessKey == "" || provider.SecretKey == "" {
		return fmt.Errorf("R2 access key and secret key are required")
	}

	if provider.Endpoint != "" {
		return nil
	}
	accountID, ok := provider.Settings["account_id"].(string)
	if !ok || accountID == "" {
		return fmt.Errorf("R2 account ID or endpoint is required")
	}

	return nil
}

// wasabiEndpoint returns the Wasabi endpoint for a region
func wasabiEndpoint(region string) string {
	if region == "" || region == "us-east-1" {
		return "https://s3.wasabisys.com"
	}
	return fmt.Sprintf("https://s3.%s.wasabisys.com", region)
}
