package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func TestClientOptions(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts := clientOptions(DefaultConfig("mongodb://localhost:27017", "campusevents"))

		require.NotNil(t, opts.AppName)
		assert.Equal(t, "campusevents-analytics", *opts.AppName)
		assert.Equal(t, uint64(50), *opts.MaxPoolSize)
		assert.Equal(t, 10*time.Second, *opts.ConnectTimeout)
		require.NotNil(t, opts.ReadPreference)
		assert.Equal(t, readpref.SecondaryPreferredMode, opts.ReadPreference.Mode())
	})

	t.Run("primary reads", func(t *testing.T) {
		cfg := DefaultConfig("mongodb://localhost:27017", "campusevents")
		cfg.SecondaryReads = false

		opts := clientOptions(cfg)
		assert.Nil(t, opts.ReadPreference)
	})
}

func TestIndexPlan(t *testing.T) {
	plan := indexPlan()

	for _, name := range SnapshotCollections {
		t.Run(name, func(t *testing.T) {
			require.NotEmpty(t, plan[name])
			assert.Equal(t, bson.D{{Key: "created_at", Value: -1}}, plan[name][0].Keys)
		})
	}

	require.Len(t, plan[AdminsCollection], 1)
	assert.True(t, *plan[AdminsCollection][0].Options.Unique)
	assert.True(t, *plan[ExportsCollection][0].Options.Unique)
}
