package service

import (
	"net/http"
	"testing"

	"github.com/BerniceZTT/crm_api/utils"

	"github.com/stretchr/testify/require"
)

// requireStatus asserts err is an ApiError carrying status.
func requireStatus(t *testing.T, err error, status int) *utils.ApiError {
	t.Helper()
	var apiErr *utils.ApiError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, status, apiErr.StatusCode, apiErr.Message)
	return apiErr
}

var (
	statusNotFound  = http.StatusNotFound
	statusConflict  = http.StatusConflict
	statusForbidden = http.StatusForbidden
	statusBadReq    = http.StatusBadRequest
)
