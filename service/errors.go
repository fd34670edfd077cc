package service

import (
	"errors"
	"math"
	"time"

	"github.com/BerniceZTT/crm_api/repository"
	"github.com/BerniceZTT/crm_api/utils"
)

// now is replaced in tests.
var now = time.Now

// notFound turns a missing document into a 404 for resource.
func notFound(err error, resource string) error {
	if errors.Is(err, repository.ErrNotFound) {
		return utils.CreateNotFoundError(resource)
	}
	return err
}

// conflict turns a unique index violation into a 409 carrying message.
func conflict(err error, message string) error {
	if errors.Is(err, repository.ErrDuplicate) {
		return utils.CreateConflictError(message)
	}
	return err
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
