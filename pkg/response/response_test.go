package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/classroom-api/internal/models"
	appErrors "github.com/noah-isme/classroom-api/pkg/errors"
)

func newContext() (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/classes", nil)
	return c, w
}

func TestJSONKeepsEmptyData(t *testing.T) {
	c, w := newContext()
	JSON(c, http.StatusOK, []string{}, &models.Pagination{Page: 3, Limit: 10, Total: 4, TotalPages: 1})

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":3,"limit":10,"total":4,"totalPages":1}}`, w.Body.String())
}

func TestErrorHidesInternalDetail(t *testing.T) {
	c, w := newContext()
	Error(c, errors.New("pq: relation \"classes\" does not exist"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Internal Server Error"}`, w.Body.String())
	require.Len(t, c.Errors, 1)
}

func TestFailureCarriesSuccessFlag(t *testing.T) {
	c, w := newContext()
	Failure(c, appErrors.ErrInviteCodeExhausted)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, false, body["success"])
	assert.Equal(t, appErrors.ErrInviteCodeExhausted.Message, body["error"])
}

func TestCreated(t *testing.T) {
	c, w := newContext()
	Created(c, gin.H{"id": 7})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"id":7}}`, w.Body.String())
}
