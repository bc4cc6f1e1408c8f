package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_RecordsRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/api/v1/users/:id", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/users/:id", "204"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/users/42", nil))

	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues("GET", "/api/v1/users/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestObserveWrite(t *testing.T) {
	counter := entityWrites.WithLabelValues("invoice", "create", ResultInvalid)
	before := testutil.ToFloat64(counter)

	ObserveWrite("invoice", "create", ResultInvalid)

	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestHandlerServesRegistry(t *testing.T) {
	ObserveWrite("user", "delete", ResultSuccess)

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "lynxview_entity_writes_total")
}
