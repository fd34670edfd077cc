package repository

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/BerniceZTT/crm_api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/bsonrw"
)

func TestClientOptionsDecodeDocumentsAsMaps(t *testing.T) {
	opts := clientOptions("mongodb://localhost:27017")
	require.NotNil(t, opts.BSONOptions)
	assert.True(t, opts.BSONOptions.DefaultDocumentM)
}

func TestActivityLogChangesReadBackAsObject(t *testing.T) {
	in := models.ActivityLog{
		ID:     "log-1",
		Action: "PUT /API/DEALS/D1",
		Entity: "deal",
		Changes: map[string]models.FieldChange{
			"value": {Old: 2.0, New: 3.0},
		},
		CreatedAt: time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}
	raw, err := bson.Marshal(in)
	require.NoError(t, err)

	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	require.NoError(t, err)
	dec.DefaultDocumentM()

	var out models.ActivityLog
	require.NoError(t, dec.Decode(&out))

	body, err := json.Marshal(out.Changes)
	require.NoError(t, err)
	assert.JSONEq(t, `{"value":{"old":2,"new":3}}`, string(body))
}

func TestNoChangesMarkerSurvivesDecode(t *testing.T) {
	raw, err := bson.Marshal(models.ActivityLog{ID: "log-2", Changes: models.NoChanges})
	require.NoError(t, err)

	dec, err := bson.NewDecoder(bsonrw.NewBSONDocumentReader(raw))
	require.NoError(t, err)
	dec.DefaultDocumentM()

	var out models.ActivityLog
	require.NoError(t, dec.Decode(&out))
	assert.Equal(t, models.NoChanges, out.Changes)
}
