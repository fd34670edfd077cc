package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/BerniceZTT/crm_api/models"
	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

var auditedMethods = map[string]bool{
	http.MethodPost:   true,
	http.MethodPut:    true,
	http.MethodDelete: true,
	http.MethodPatch:  true,
}

// Recorder persists an audit row. Record must not block.
type Recorder interface {
	Record(entry models.ActivityLog) bool
}

// AuditDescriptor tells the audit middleware which record a route touches.
type AuditDescriptor struct {
	Entity string
	// ID extracts the record id. Nil means the ":id" route parameter.
	ID func(c *gin.Context, body map[string]interface{}) string
	// Load fetches the record as it was before the handler ran. Nil marks a
	// create: the id is read from the response and the prior state is empty.
	Load func(ctx context.Context, id string) (interface{}, error)
}

// BodyID reads the record id from a request body field.
func BodyID(field string) func(*gin.Context, map[string]interface{}) string {
	return func(_ *gin.Context, body map[string]interface{}) string {
		id, _ := body[field].(string)
		return id
	}
}

// Loader adapts a typed getter to AuditDescriptor.Load.
func Loader[T any](get func(ctx context.Context, id string) (T, error)) func(context.Context, string) (interface{}, error) {
	return func(ctx context.Context, id string) (interface{}, error) {
		return get(ctx, id)
	}
}

// Audit records the field-level changes a mutating request makes. Requests
// against missing records and creates that fail leave no row. Nothing the
// audit does can fail the request itself.
func Audit(rec Recorder, d AuditDescriptor) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !auditedMethods[c.Request.Method] {
			c.Next()
			return
		}

		body := jsonObject(readBody(c))

		var (
			id  string
			old map[string]interface{}
		)
		if d.Load != nil {
			if d.ID != nil {
				id = d.ID(c, body)
			} else {
				id = c.Param("id")
			}
			if id == "" {
				c.Next()
				return
			}
			record, err := d.Load(c.Request.Context(), id)
			if err != nil || record == nil {
				utils.Logger.Debug().Err(err).Str("entity", d.Entity).Str("id", id).Msg("audit skipped, record not loaded")
				c.Next()
				return
			}
			old = toMap(record)
		}

		response := captureBody(c)
		c.Next()

		// a failed create has no id to record against
		if d.Load == nil {
			if c.Writer.Status() >= http.StatusBadRequest {
				return
			}
			id = createdID(response.Bytes())
			old = map[string]interface{}{}
			if id == "" {
				return
			}
		}

		entry := models.ActivityLog{
			Action:    strings.ToUpper(c.Request.Method + " " + c.Request.URL.Path),
			Entity:    d.Entity,
			EntityID:  id,
			Changes:   Diff(old, sanitizeBody(body)),
			UserID:    utils.UserID(c),
			IPAddress: getClientIP(c),
			UserAgent: c.Request.UserAgent(),
			CreatedAt: time.Now(),
		}
		if !rec.Record(entry) {
			utils.Logger.Warn().Str("action", entry.Action).Str("entityId", id).Msg("audit row dropped")
		}
	}
}

// Diff compares every key of body with the same key of old. Keys missing
// from old compare against null. It returns models.NoChanges when nothing differs.
func Diff(old, body map[string]interface{}) interface{} {
	changes := make(map[string]models.FieldChange)
	for key, next := range body {
		prev := old[key]
		if !reflect.DeepEqual(prev, next) {
			changes[key] = models.FieldChange{Old: prev, New: next}
		}
	}
	if len(changes) == 0 {
		return models.NoChanges
	}
	return changes
}

// jsonObject decodes a JSON object body. Anything else yields an empty map.
func jsonObject(raw []byte) map[string]interface{} {
	out := map[string]interface{}{}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &out); err != nil {
			return map[string]interface{}{}
		}
	}
	return out
}

// toMap renders v through its JSON form so it compares with a decoded body.
func toMap(v interface{}) map[string]interface{} {
	raw, err := json.Marshal(v)
	if err != nil {
		return map[string]interface{}{}
	}
	return jsonObject(raw)
}

// createdID finds data.id in a success envelope.
func createdID(response []byte) string {
	var envelope struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(response, &envelope); err != nil {
		return ""
	}
	return envelope.Data.ID
}

func sanitizeBody(body map[string]interface{}) map[string]interface{} {
	clean, _ := sanitizeData(body).(map[string]interface{})
	return clean
}

// sanitizeData masks secrets anywhere in a decoded JSON value.
func sanitizeData(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		sanitized := make(map[string]interface{}, len(v))
		for k, val := range v {
			switch strings.ToLower(k) {
			case "password", "newpassword", "token", "refreshtoken", "authorization", "secret":
				sanitized[k] = "******"
			default:
				sanitized[k] = sanitizeData(val)
			}
		}
		return sanitized
	case []interface{}:
		sanitized := make([]interface{}, len(v))
		for i, val := range v {
			sanitized[i] = sanitizeData(val)
		}
		return sanitized
	}
	return data
}

func getClientIP(c *gin.Context) string {
	if ip := c.GetHeader("X-Real-IP"); ip != "" {
		return ip
	}
	if ip := c.GetHeader("CF-Connecting-IP"); ip != "" {
		return ip
	}
	return c.ClientIP()
}
