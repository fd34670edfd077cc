package middleware

import (
	"bytes"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/BerniceZTT/crm_api/utils"

	"github.com/gin-gonic/gin"
)

// maxLoggedBody caps how much of a request or response body reaches the log.
const maxLoggedBody = 2048

// bodyLogWriter tees the response body into a buffer.
type bodyLogWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyLogWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyLogWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// captureBody swaps c.Writer for a teeing writer and returns its buffer.
func captureBody(c *gin.Context) *bytes.Buffer {
	if blw, ok := c.Writer.(*bodyLogWriter); ok {
		return blw.body
	}
	blw := &bodyLogWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
	c.Writer = blw
	return blw.body
}

// readBody drains the request body and puts it back for the handlers.
func readBody(c *gin.Context) []byte {
	if c.Request.Body == nil {
		return nil
	}
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		utils.Logger.Warn().Err(err).Msg("read request body failed")
	}
	c.Request.Body = io.NopCloser(bytes.NewReader(raw))
	return raw
}

func truncate(b []byte) string {
	if len(b) > maxLoggedBody {
		return string(b[:maxLoggedBody]) + "...(truncated)"
	}
	return string(b)
}

// Logger logs every request and its response.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		headers := make(map[string]string)
		for k, v := range c.Request.Header {
			if len(v) > 0 {
				headers[k] = v[0]
			}
		}

		var requestBody string
		if c.ContentType() == gin.MIMEMultipartPOSTForm {
			requestBody = "(multipart)"
		} else {
			requestBody = truncate(readBody(c))
		}
		body := captureBody(c)

		utils.LogApiRequest(method, path, c.Request.URL.Query(), requestBody, headers)

		c.Next()

		responseBody := "(binary)"
		if ct := c.Writer.Header().Get("Content-Type"); ct == "" || strings.HasPrefix(ct, gin.MIMEJSON) {
			responseBody = truncate(body.Bytes())
		}
		utils.LogApiResponse(method, path, c.Writer.Status(), time.Since(start), responseBody)
	}
}

// Recovery turns a panic into a 500 JSON response.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		utils.Logger.Error().
			Interface("panic", recovered).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("panic recovered")

		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Internal server error",
		})
	})
}
