package router_test

import (
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"

	_ "pensiondoc/docs"
	"pensiondoc/internal/config"
	"pensiondoc/internal/handler"
	"pensiondoc/internal/router"
	"pensiondoc/mocks"
)

type staticProvider struct{}

func (staticProvider) Provider() string { return "openai" }
func (staticProvider) Model() string    { return "gpt-4o" }

func setupEngine(t *testing.T, basePath string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{
		Server:  config.ServerConfig{BasePath: basePath},
		Swagger: config.SwaggerConfig{Enabled: true},
	}
	return router.Setup(cfg, zerolog.Nop(),
		handler.NewRetirementHandler(new(mocks.MockRetirementService), 1<<20),
		handler.NewHealthHandler(staticProvider{}),
	)
}

func TestSetup_RoutesMatchAPIDocument(t *testing.T) {
	r := setupEngine(t, "")

	var routes []string
	for _, ri := range r.Routes() {
		if strings.HasPrefix(ri.Path, "/swagger/") {
			continue
		}
		routes = append(routes, strings.ToLower(ri.Method)+" "+ri.Path)
	}
	sort.Strings(routes)

	raw, err := swag.ReadDoc()
	require.NoError(t, err)
	var doc struct {
		Paths map[string]map[string]json.RawMessage `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	var documented []string
	for path, ops := range doc.Paths {
		for method := range ops {
			documented = append(documented, method+" "+path)
		}
	}
	sort.Strings(documented)

	assert.Equal(t, routes, documented)
}

func TestSetup_BasePathAndSwagger(t *testing.T) {
	r := setupEngine(t, "/pension")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pension/readyz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","provider":"openai","model":"gpt-4o"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pension/swagger/doc.json", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
