package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetTenantContext resolves the calling tenant and returns its full context:
// enabled modules, feature flags, whitelabel branding and plan.
func (s *Server) GetTenantContext(c *gin.Context) {
	tc, err := s.tenantSvc.Context(c.Request.Context(), resolveInputFromRequest(c))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.Set(contextTenantCodeKey, tc.TenantCode)
	c.JSON(http.StatusOK, tc)
}
