package routes

import (
	"encoding/json"
	"testing"

	"github.com/BerniceZTT/crm_api/middleware"
	"github.com/BerniceZTT/crm_api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerAuditRecordListsTagNames(t *testing.T) {
	view := &models.CustomerView{
		Customer: models.Customer{ID: "c1", FirstName: "Ada", Status: models.CustomerStatusLEAD, IsActive: true},
		Tags:     []models.Tag{{ID: "t1", Name: "vip"}, {ID: "t2", Name: "emea"}},
	}
	record := auditableCustomer(view)
	assert.Equal(t, []string{"vip", "emea"}, record.Tags)

	raw, err := json.Marshal(record)
	require.NoError(t, err)
	var old map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &old))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"tags":["vip","emea"],"firstName":"Ada"}`), &body))
	assert.Equal(t, models.NoChanges, middleware.Diff(old, body))

	body = nil
	require.NoError(t, json.Unmarshal([]byte(`{"tags":["vip"]}`), &body))
	changes, ok := middleware.Diff(old, body).(map[string]models.FieldChange)
	require.True(t, ok)
	assert.Equal(t, []interface{}{"vip"}, changes["tags"].New)
}

func TestCustomerAuditRecordWithoutTags(t *testing.T) {
	record := auditableCustomer(&models.CustomerView{Customer: models.Customer{ID: "c1"}})
	raw, err := json.Marshal(record)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"tags":[]`)
}
