package validation

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateCertificateRequest_Valid(t *testing.T) {
	v := New()

	req := GenerateCertificateRequest{ID: "u1", Name: "Ana", Grade: "A"}

	assert.NoError(t, v.Struct(req))
}

func TestGenerateCertificateRequest_MissingFields(t *testing.T) {
	v := New()

	req := GenerateCertificateRequest{Name: "Ana"}

	err := v.Struct(req)
	require.Error(t, err)
	fields := validationErrorsToMap(err)
	assert.Equal(t, map[string]string{"id": "required", "grade": "required"}, fields)
}

func bind(t *testing.T, body string) (*httptest.ResponseRecorder, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/generate-certificate", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req GenerateCertificateRequest
	return w, BindAndValidate(c, &req, New())
}

func TestBindAndValidate_MalformedJSON(t *testing.T) {
	w, err := bind(t, `{"id": "u1",`)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), MessageInvalidBody)
}

func TestBindAndValidate_MissingGrade(t *testing.T) {
	w, err := bind(t, `{"id":"u1","name":"Ana"}`)

	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"message":"Invalid request body.","error":{"grade":"required"}}`, w.Body.String())
}

func TestBindAndValidate_OK(t *testing.T) {
	w, err := bind(t, `{"id":"u1","name":"Ana","grade":"A"}`)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Zero(t, w.Body.Len())
}
