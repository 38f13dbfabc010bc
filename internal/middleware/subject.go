package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/GunarsK-portfolio/profile-api/internal/apperrors"
	"github.com/awslabs/aws-lambda-go-api-proxy/core"
	"github.com/gin-gonic/gin"
)

// SubjectKey is the gin context key holding the authenticated subject.
const SubjectKey = "subject"

// gatewaySubject returns the JWT "sub" claim verified by the API Gateway
// authorizer. The gateway context only exists on requests built by the
// Lambda adapter; the adapter's header form is never read since clients
// control headers.
func gatewaySubject(ctx context.Context) string {
	gw, ok := core.GetAPIGatewayV2ContextFromContext(ctx)
	if !ok || gw.Authorizer == nil || gw.Authorizer.JWT == nil {
		return ""
	}
	return gw.Authorizer.JWT.Claims["sub"]
}

// SubjectMiddleware resolves the caller identity. The gateway in front of
// the service verifies the bearer token and forwards the subject, either
// on the request context (Lambda) or in a trusted header (HTTP).
type SubjectMiddleware struct {
	header string
}

func NewSubjectMiddleware(header string) *SubjectMiddleware {
	return &SubjectMiddleware{header: header}
}

func (m *SubjectMiddleware) RequireSubject() gin.HandlerFunc {
	return func(c *gin.Context) {
		subject := gatewaySubject(c.Request.Context())
		if subject == "" && m.header != "" {
			subject = strings.TrimSpace(c.GetHeader(m.header))
		}

		// A slash would let one subject's prefix contain another's.
		if subject == "" || strings.Contains(subject, "/") {
			c.JSON(http.StatusUnauthorized, apperrors.Body{Error: apperrors.ErrUnauthenticated.Error()})
			c.Abort()
			return
		}

		c.Set(SubjectKey, subject)
		c.Next()
	}
}

// Subject returns the subject stored by RequireSubject.
func Subject(c *gin.Context) string {
	return c.GetString(SubjectKey)
}
