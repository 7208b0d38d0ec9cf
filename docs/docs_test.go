package docs_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"afristay/docs"
	"afristay/permissions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag"
)

type document struct {
	Info struct {
		Title   string `json:"title"`
		Version string `json:"version"`
	} `json:"info"`
	BasePath            string                               `json:"basePath"`
	Paths               map[string]map[string]map[string]any `json:"paths"`
	Definitions         map[string]any                       `json:"definitions"`
	SecurityDefinitions map[string]any                       `json:"securityDefinitions"`
}

func readDocument(t *testing.T) document {
	t.Helper()

	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc document
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	return doc
}

func TestReadDoc(t *testing.T) {
	t.Parallel()

	doc := readDocument(t)

	assert.Equal(t, "AfriStay API", doc.Info.Title)
	assert.Equal(t, "1.0", doc.Info.Version)
	assert.Equal(t, "/", doc.BasePath)
	assert.Contains(t, doc.SecurityDefinitions, "BearerAuth")
	assert.Contains(t, doc.SecurityDefinitions, "ApiKeyAuth")
	assert.Contains(t, doc.Definitions, "response.Error")
}

func TestReadDoc_CoversEveryRoute(t *testing.T) {
	t.Parallel()

	doc := readDocument(t)

	for _, endpoint := range permissions.Get().Endpoints {
		if endpoint.Path == "/health" || strings.HasPrefix(endpoint.Path, "/swagger") {
			continue
		}

		operations, ok := doc.Paths[endpoint.Path]
		if !assert.True(t, ok, "missing path %s", endpoint.Path) {
			continue
		}

		assert.Contains(t, operations, strings.ToLower(endpoint.Method), "missing %s %s", endpoint.Method, endpoint.Path)
	}
}

func TestReadDoc_References(t *testing.T) {
	t.Parallel()

	raw, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	require.NoError(t, err)

	doc := readDocument(t)

	for _, ref := range strings.Split(raw, `"$ref": "#/definitions/`)[1:] {
		name := ref[:strings.Index(ref, `"`)]
		assert.Contains(t, doc.Definitions, name)
	}
}

func TestSwaggerHandler_ServesDoc(t *testing.T) {
	t.Parallel()

	handler := httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json"))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, json.Valid(rec.Body.Bytes()))
	assert.Contains(t, rec.Body.String(), "/v1/bookings/{id}/complete")
}
