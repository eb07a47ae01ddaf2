package adoptionserver

import (
	"context"
	"io"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	userports "github.com/Apurer/pet-adoption-api/internal/domains/users/ports"
	"github.com/Apurer/pet-adoption-api/internal/shared/authz"
	apierrors "github.com/Apurer/pet-adoption-api/internal/shared/errors"
)

const (
	contextUserIDKey    = "adoptions.user_id"
	contextPrincipalKey = "adoptions.principal"
)

// Guard authenticates bearer tokens and enforces role checks.
type Guard struct {
	users     userports.Service
	responder *apierrors.Responder
}

// NewGuard builds a guard that resolves tokens and roles through users.
func NewGuard(users userports.Service, responder *apierrors.Responder) *Guard {
	if responder == nil {
		responder = apierrors.DefaultResponder
	}
	return &Guard{users: users, responder: responder}
}

func (g *Guard) chain(access Access) []gin.HandlerFunc {
	switch access {
	case AccessAuthenticated:
		return []gin.HandlerFunc{g.Authenticate}
	case AccessAdmin:
		return []gin.HandlerFunc{g.Authenticate, g.RequireAdmin}
	default:
		return nil
	}
}

// Authenticate requires "Authorization: Bearer <token>" and stores the subject.
func (g *Guard) Authenticate(c *gin.Context) {
	if g == nil || g.users == nil {
		apierrors.DefaultResponder.RespondError(c, apierrors.Unauthorized("token required"))
		return
	}
	token, ok := bearerToken(c.GetHeader("Authorization"))
	if !ok {
		g.responder.RespondError(c, apierrors.Unauthorized("token required"))
		return
	}
	subject, err := g.users.Authenticate(c.Request.Context(), token)
	if err != nil {
		g.responder.RespondError(c, apierrors.Unauthorized("invalid token"))
		return
	}
	c.Set(contextUserIDKey, subject)
	c.Next()
}

// RequireAdmin loads the caller's current role and rejects non-admins. A
// deleted account is treated as unprivileged.
func (g *Guard) RequireAdmin(c *gin.Context) {
	principal, err := g.principal(c)
	if err != nil {
		g.responder.RespondError(c, err)
		return
	}
	if decision := authz.RequireAdmin(principal.Role); !decision.Allowed {
		g.responder.RespondError(c, apierrors.Forbidden(decision.Reason))
		return
	}
	c.Next()
}

// principal resolves the caller with the role currently stored for them.
// Roles are read per request so a promotion takes effect without a new token.
func (g *Guard) principal(c *gin.Context) (authz.Principal, error) {
	if cached, ok := c.Get(contextPrincipalKey); ok {
		return cached.(authz.Principal), nil
	}
	subject := c.GetString(contextUserIDKey)
	if subject == "" {
		return authz.Principal{}, apierrors.Unauthorized("token required")
	}
	principal := authz.Principal{ID: subject, Role: authz.RoleUser}
	profile, err := g.users.GetProfile(c.Request.Context(), subject)
	switch {
	case err == nil:
		principal = profile.Entity.Principal()
	case apierrors.KindOf(err) != apierrors.KindNotFound:
		return authz.Principal{}, err
	}
	c.Set(contextPrincipalKey, principal)
	return principal, nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func currentUserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}

// RateLimit throttles requests per client IP with limiter. Limiter failures
// let the request through.
func RateLimit(limiter userports.LoginLimiter, responder *apierrors.Responder, logger *slog.Logger) gin.HandlerFunc {
	responder = responder.OrDefault()
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return func(c *gin.Context) {
		result, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.LogAttrs(context.WithoutCancel(c.Request.Context()), slog.LevelWarn, "rate limiter unavailable",
				slog.String("error", err.Error()),
			)
			c.Next()
			return
		}
		c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
		if !result.Allowed {
			seconds := int(math.Ceil(result.RetryAfter.Seconds()))
			if seconds < 1 {
				seconds = 1
			}
			c.Header("Retry-After", strconv.Itoa(seconds))
			responder.RespondError(c, apierrors.RateLimited("too many login attempts, try again later"))
			return
		}
		c.Next()
	}
}
