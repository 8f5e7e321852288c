package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldErrors(t *testing.T) {
	errs, ok := FieldErrors(validation.Errors{
		"name":  errors.New("cannot be blank"),
		"email": nil,
	})
	require.True(t, ok)
	assert.Equal(t, map[string]string{"name": "cannot be blank"}, errs)

	_, ok = FieldErrors(errors.New("plain"))
	assert.False(t, ok)
}

func TestPaginatedShape(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	next := "http://x/api/businesses/?page=2"
	Paginated(c, 25, &next, nil, []string{"a"})

	require.Equal(t, http.StatusOK, rec.Code)
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(25), body["count"])
	assert.Equal(t, next, body["next"])
	assert.Nil(t, body["previous"])
	assert.Len(t, body["results"], 1)
}

func TestValidationFailed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	ValidationFailed(c, map[string]string{"rating": "must be between 1 and 5"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t,
		`{"success":false,"message":"Validation failed","errors":{"rating":"must be between 1 and 5"}}`,
		rec.Body.String())
}
