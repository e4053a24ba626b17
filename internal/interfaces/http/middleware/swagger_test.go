package middleware

import (
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rentdesk/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
)

func swaggerRouter(cfg config.SwaggerConfig) *gin.Engine {
	router := gin.New()
	router.GET("/swagger/*any", SwaggerProtection(cfg), func(c *gin.Context) {
		c.String(http.StatusOK, "docs")
	})
	return router
}

func swaggerRequest(router *gin.Engine, remoteAddr string) int {
	req := httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil)
	req.RemoteAddr = remoteAddr
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Code
}

func TestSwaggerProtection(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		router := swaggerRouter(config.SwaggerConfig{Enabled: false})
		assert.Equal(t, http.StatusNotFound, swaggerRequest(router, "127.0.0.1:5000"))
	})

	t.Run("enabled without whitelist", func(t *testing.T) {
		router := swaggerRouter(config.SwaggerConfig{Enabled: true})
		assert.Equal(t, http.StatusOK, swaggerRequest(router, "203.0.113.9:5000"))
	})

	t.Run("whitelist", func(t *testing.T) {
		router := swaggerRouter(config.SwaggerConfig{
			Enabled:    true,
			AllowedIPs: []string{"127.0.0.1", "10.0.0.0/8", "not-an-ip"},
		})
		assert.Equal(t, http.StatusOK, swaggerRequest(router, "127.0.0.1:5000"))
		assert.Equal(t, http.StatusOK, swaggerRequest(router, "10.20.30.40:5000"))
		assert.Equal(t, http.StatusForbidden, swaggerRequest(router, "203.0.113.9:5000"))
	})
}

func TestIsIPAllowed(t *testing.T) {
	_, network, _ := net.ParseCIDR("192.168.0.0/16")
	ips := []net.IP{net.ParseIP("::1")}

	assert.True(t, isIPAllowed(net.ParseIP("::1"), ips, nil))
	assert.True(t, isIPAllowed(net.ParseIP("192.168.4.2"), nil, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(net.ParseIP("172.16.0.1"), ips, []*net.IPNet{network}))
	assert.False(t, isIPAllowed(nil, ips, nil))
}
