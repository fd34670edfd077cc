package utils

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the process-wide logger. It is usable before InitLogger runs.
var Logger = zerolog.New(os.Stdout).With().Timestamp().Logger()

// LogOptions controls where log lines go.
type LogOptions struct {
	Level      string
	Console    bool // human readable output on stdout
	File       string
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// InitLogger configures Logger. The returned closer flushes the rotating file, if any.
func InitLogger(opts LogOptions) io.Closer {
	var writers []io.Writer
	if opts.Console {
		writers = append(writers, zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})
	} else {
		writers = append(writers, os.Stdout)
	}

	var file *lumberjack.Logger
	if opts.File != "" {
		file = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSize,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAge,
			Compress:   opts.Compress,
		}
		writers = append(writers, file)
	}

	level, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
	if err != nil || opts.Level == "" {
		level = zerolog.InfoLevel
	}

	Logger = zerolog.New(zerolog.MultiLevelWriter(writers...)).
		With().
		Timestamp().
		Caller().
		Logger().
		Level(level)

	Logger.Info().Str("level", level.String()).Bool("file", file != nil).Msg("logger initialized")

	if file == nil {
		return nopCloser{}
	}
	return file
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// LogApiRequest logs an incoming request with the Authorization header shortened.
func LogApiRequest(method, url string, params, body interface{}, headers map[string]string) {
	if auth := headers["Authorization"]; auth != "" {
		headers["Authorization"] = ShortenSecret(auth)
	}
	if cookie := headers["Cookie"]; cookie != "" {
		headers["Cookie"] = "******"
	}

	Logger.Info().
		Str("method", method).
		Str("url", url).
		Interface("params", params).
		Interface("body", body).
		Interface("headers", headers).
		Msg("api request")
}

// LogApiResponse logs the outcome of a request; 4xx and 5xx go out at error level.
func LogApiResponse(method, url string, statusCode int, responseTime time.Duration, responseBody interface{}) {
	event := Logger.Info()
	if statusCode >= 400 {
		event = Logger.Error()
	}
	if strings.Contains(url, "/export/") {
		responseBody = "<file>"
	}
	event.
		Str("method", method).
		Str("url", url).
		Int("statusCode", statusCode).
		Dur("responseTime", responseTime).
		Interface("body", responseBody).
		Msg("api response")
}

func LogInfo(context map[string]interface{}, message string) {
	Logger.Info().
		Interface("context", context).
		Msg(message)
}

func LogError(err error, context map[string]interface{}, message string) {
	Logger.Error().
		Err(err).
		Interface("context", context).
		Msg(message)
}

// LogDbOperation logs a query at debug level.
func LogDbOperation(operation string, collection string, query interface{}) {
	Logger.Debug().
		Str("operation", operation).
		Str("collection", collection).
		Interface("query", query).
		Msg("db operation")
}

// ShortenSecret keeps the first 15 characters of a credential.
func ShortenSecret(s string) string {
	if len(s) > 15 {
		return s[:15] + "..."
	}
	return s
}
