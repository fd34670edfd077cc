package controllers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/BerniceZTT/crm_api/cache"
	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/worker"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(r http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestPathIDRejectsNonUUID(t *testing.T) {
	r := gin.New()
	r.GET("/things/:id", func(c *gin.Context) {
		id, ok := pathID(c, "id")
		if ok {
			c.String(http.StatusOK, id)
		}
	})

	assert.Equal(t, http.StatusBadRequest, get(r, "/things/42").Code)

	id := models.NewID()
	w := get(r, "/things/"+id)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id, w.Body.String())
}

func TestSplitList(t *testing.T) {
	assert.Nil(t, splitList(""))
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
}

func TestCustomerQueryFilter(t *testing.T) {
	tag := models.NewID()
	lo, hi := 10, 90
	filter, err := customerQuery{Status: models.CustomerStatusLEAD, Tags: tag, MinScore: &lo, MaxScore: &hi}.filter()
	require.NoError(t, err)
	assert.Equal(t, []string{tag}, filter.TagIDs)
	assert.Equal(t, models.CustomerStatusLEAD, filter.Status)

	_, err = customerQuery{Tags: "vip"}.filter()
	assert.Error(t, err)

	_, err = customerQuery{MinScore: &hi, MaxScore: &lo}.filter()
	assert.Error(t, err)
}

func TestCustomerListQueryValidation(t *testing.T) {
	r := gin.New()
	r.GET("/customers", func(c *gin.Context) {
		var q customerQuery
		if bindQuery(c, &q) {
			c.Status(http.StatusNoContent)
		}
	})

	assert.Equal(t, http.StatusNoContent, get(r, "/customers?status=PROSPECT&minScore=5").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/customers?status=UNKNOWN").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/customers?minScore=101").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/customers?assignedUserId=bob").Code)
}

func TestTaskQueryDueDateSelectsOneDay(t *testing.T) {
	filter := taskQuery{DueDate: "2024-03-01", Status: models.TaskStatusPENDING}.filter()
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), filter.Due.From)
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), filter.Due.To)
	assert.Equal(t, models.TaskStatusPENDING, filter.Status)

	assert.True(t, taskQuery{}.filter().Due.From.IsZero())
}

func TestNoteQueryNeedsBothOwnerFields(t *testing.T) {
	r := gin.New()
	r.GET("/notes", func(c *gin.Context) {
		var q noteQuery
		if bindQuery(c, &q) {
			c.Status(http.StatusNoContent)
		}
	})

	assert.Equal(t, http.StatusNoContent, get(r, "/notes").Code)
	assert.Equal(t, http.StatusNoContent, get(r, "/notes?ownerType=deal&ownerId="+models.NewID()).Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/notes?ownerType=deal").Code)
	assert.Equal(t, http.StatusBadRequest, get(r, "/notes?ownerType=customer&ownerId="+models.NewID()).Code)
}

type fakeDatabase struct {
	pingErr   error
	statusErr error
}

func (f fakeDatabase) Ping(context.Context) error { return f.pingErr }

func (f fakeDatabase) DatabaseStatus(context.Context) (map[string]interface{}, error) {
	if f.statusErr != nil {
		return nil, f.statusErr
	}
	return map[string]interface{}{"customers": map[string]interface{}{"count": 3}}, nil
}

type fakeJobs struct{}

func (fakeJobs) Stats() worker.Stats { return worker.Stats{Workers: 2, Processed: 7} }

func healthRouter(db Database) *gin.Engine {
	hc := NewHealthController(db, cache.NewMemory(time.Minute), fakeJobs{})
	r := gin.New()
	r.GET("/health", hc.Health)
	r.GET("/db-status", hc.DatabaseStatus)
	return r
}

func TestHealth(t *testing.T) {
	w := get(healthRouter(fakeDatabase{}), "/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"backend":"memory"`)
	assert.Contains(t, w.Body.String(), `"processed":7`)

	w = get(healthRouter(fakeDatabase{pingErr: errors.New("no primary")}), "/health")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"down"`)
}

func TestDatabaseStatus(t *testing.T) {
	w := get(healthRouter(fakeDatabase{}), "/db-status")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"count":3`)

	w = get(healthRouter(fakeDatabase{statusErr: errors.New("database unreachable")}), "/db-status")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "database unreachable")
}
