package server

import (
	"strings"

	"github.com/gin-gonic/gin"

	obscontext "github.com/arfeen-portal/arfeen-portal-sub002/internal/observability/context"
	tenantdomain "github.com/arfeen-portal/arfeen-portal-sub002/internal/tenant/domain"
	"github.com/arfeen-portal/arfeen-portal-sub002/pkg/tenantctx"
)

const (
	HeaderTenantDomain = "X-Tenant-Domain"
	HeaderAppBundleID  = "X-App-Bundle-ID"

	queryAgentCode = "agent_code"

	contextTenantKey     = "tenant"
	contextTenantCodeKey = "tenant_code"
)

func resolveInputFromRequest(c *gin.Context) tenantdomain.ResolveInput {
	domain := strings.TrimSpace(c.GetHeader(HeaderTenantDomain))
	if domain == "" {
		// Host works as the domain signal when the portal is served on the
		// tenant's own domain.
		domain = strings.TrimSpace(c.Request.Host)
		if idx := strings.IndexByte(domain, ':'); idx >= 0 {
			domain = domain[:idx]
		}
	}

	return tenantdomain.ResolveInput{
		Domain:    domain,
		BundleID:  strings.TrimSpace(c.GetHeader(HeaderAppBundleID)),
		AgentCode: strings.TrimSpace(c.Query(queryAgentCode)),
	}
}

// TenantRequired resolves the owning tenant from request signals and attaches
// it to the request context. Requests with no owning tenant are rejected.
func (s *Server) TenantRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		t, err := s.tenantSvc.Resolve(c.Request.Context(), resolveInputFromRequest(c))
		if err != nil {
			AbortWithError(c, err)
			return
		}

		c.Set(contextTenantKey, t)
		c.Set(contextTenantCodeKey, t.Code)

		ctx := tenantctx.WithTenantID(c.Request.Context(), t.ID)
		ctx = tenantctx.WithTenantCode(ctx, t.Code)
		ctx = obscontext.WithTenantCode(ctx, t.Code)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// QuoteRateLimit throttles pricing requests per tenant and per endpoint. A
// limiter backend failure fails open: quoting stays available without redis.
func (s *Server) QuoteRateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !s.quoteLimiter.Enabled() {
			c.Next()
			return
		}

		ctx := c.Request.Context()

		allowed, err := s.quoteLimiter.AllowTenant(ctx, c.GetString(contextTenantCodeKey))
		if err == nil && !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		allowed, err = s.quoteLimiter.AllowEndpoint(ctx, c.FullPath())
		if err == nil && !allowed {
			AbortWithError(c, ErrTooManyRequests)
			return
		}

		c.Next()
	}
}
