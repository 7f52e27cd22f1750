package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"tablebook/internal/domain/staff"
	"tablebook/internal/domain/tenant"
	"tablebook/internal/infra"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const ctxRestaurantKey = "restaurant"

// RestaurantRefHeader carries an explicit external-reference tenant handle,
// used by integration callers instead of slugs or subdomains.
const RestaurantRefHeader = "X-Restaurant-Ref"

type RestaurantFinder interface {
	FindByRef(ctx context.Context, ref tenant.Ref) (*tenant.Restaurant, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*staff.User, error)
}

// TenantMiddleware resolves which restaurant a request addresses. The
// handle is derived from the ref header, the path slug, or the subdomain, in
// that priority order; the matching row is loaded once and stashed on the
// request context for everything downstream.
type TenantMiddleware struct {
	restaurants RestaurantFinder
	users       UserFinder
	baseDomain  string
}

func NewTenantMiddleware(restaurants RestaurantFinder, users UserFinder, baseDomain string) *TenantMiddleware {
	return &TenantMiddleware{
		restaurants: restaurants,
		users:       users,
		baseDomain:  baseDomain,
	}
}

func (m *TenantMiddleware) Resolve() gin.HandlerFunc {
	return func(c *gin.Context) {
		ref, err := tenant.DeriveRef(
			c.Request.Host,
			c.GetHeader(RestaurantRefHeader),
			c.Param("slug"),
			m.baseDomain,
		)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
			c.Abort()
			return
		}

		rest, err := m.restaurants.FindByRef(c.Request.Context(), ref)
		if err != nil {
			if !infra.IsKind(err, infra.KindNotFound) {
				slog.Error("tenant lookup failed", "ref", ref.Value, "error", err)
			}
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Restaurant not found",
			})
			c.Abort()
			return
		}

		c.Set(ctxRestaurantKey, rest)
		c.Request = c.Request.WithContext(tenant.WithRestaurant(c.Request.Context(), rest))
		c.Next()
	}
}

// RequireMembership gates staff routes: the authenticated account must
// belong to the resolved tenant. Admins pass for every tenant. Must run
// after RequireAuth and Resolve.
func (m *TenantMiddleware) RequireMembership() gin.HandlerFunc {
	return func(c *gin.Context) {
		rest, ok := GetRestaurant(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}
		userID, ok := GetUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		user, err := m.users.FindByID(c.Request.Context(), userID)
		if err != nil || !user.IsActive {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		if !user.MemberOf(rest.ID) {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetRestaurant(c *gin.Context) (*tenant.Restaurant, bool) {
	v, exists := c.Get(ctxRestaurantKey)
	if !exists {
		return nil, false
	}

	rest, ok := v.(*tenant.Restaurant)
	return rest, ok
}
