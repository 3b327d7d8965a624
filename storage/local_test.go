package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusevents/models"
)

func newTestLocalClient(t *testing.T) *LocalClient {
	t.Helper()
	client, err := NewLocalClient(&models.StorageProvider{
		Name:     "Local Exports",
		Type:     "local",
		Settings: map[string]interface{}{"base_path": t.TempDir()},
	})
	require.NoError(t, err)
	return client
}

func TestLocalClientRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newTestLocalClient(t)
	key := "exports/2024/03/report.csv"

	exists, err := client.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, client.Upload(ctx, key, []byte("a,b\n1,2\n"), "text/csv"))

	exists, err = client.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := client.Download(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n1,2\n", string(data))

	require.NoError(t, client.Delete(ctx, key))
	require.NoError(t, client.Delete(ctx, key), "deleting a missing file is not an error")

	_, err = client.Download(ctx, key)
	assert.True(t, IsCode(err, CodeNotFound))
}

func TestLocalClientRejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	client := newTestLocalClient(t)

	tests := []struct {
		name string
		key  string
	}{
		{"empty", ""},
		{"parent", "../outside.csv"},
		{"nested parent", "exports/../../outside.csv"},
		{"absolute", "/etc/passwd"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := client.Upload(ctx, tt.key, []byte("x"), "")
			assert.True(t, IsCode(err, CodeInvalidKey), "got %v", err)
		})
	}
}

func TestLocalClientPresignNotSupported(t *testing.T) {
	client := newTestLocalClient(t)

	_, err := client.GetPresignedURL("exports/a.csv", 0)
	assert.True(t, IsCode(err, CodeNotSupported))
	assert.Equal(t, "local", client.GetProviderInfo().Type)
	assert.NoError(t, client.HealthCheck(context.Background()))
}

func TestValidateProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider *models.StorageProvider
		wantErr  bool
	}{
		{"local", &models.StorageProvider{Name: "l", Type: "local"}, false},
		{"s3 complete", &models.StorageProvider{Name: "s", Type: "s3", Bucket: "b", Region: "us-east-1", AccessKey: "k", SecretKey: "s"}, false},
		{"s3 missing keys", &models.StorageProvider{Name: "s", Type: "s3", Bucket: "b", Region: "us-east-1"}, true},
		{"r2 with account", &models.StorageProvider{Name: "r", Type: "r2", Bucket: "b", AccessKey: "k", SecretKey: "s", Settings: map[string]interface{}{"account_id": "acc"}}, false},
		{"r2 without account", &models.StorageProvider{Name: "r", Type: "r2", Bucket: "b", AccessKey: "k", SecretKey: "s"}, true},
		{"unknown", &models.StorageProvider{Name: "x", Type: "ftp"}, true},
		{"missing name", &models.StorageProvider{Type: "local"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProvider(tt.provider)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWasabiEndpoint(t *testing.T) {
	assert.Equal(t, "https://s3.wasabisys.com", wasabiEndpoint(""))
	assert.Equal(t, "https://s3.eu-central-1.wasabisys.com", wasabiEndpoint("eu-central-1"))
}
