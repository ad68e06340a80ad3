package middleware

import "github.com/storefront-labs/storefront-api/internal/models"

// Authorizer decides whether an identity may use a route. A nil identity is
// an anonymous caller. Reads are GET, HEAD and OPTIONS; everything else is a write.
type Authorizer interface {
	CanRead(claims *models.Claims) bool
	CanWrite(claims *models.Claims) bool
}

var (
	AllowAny          Authorizer = allowAny{}
	IsAuthenticated   Authorizer = isAuthenticated{}
	IsAdmin           Authorizer = isAdmin{}
	IsAdminOrReadOnly Authorizer = isAdminOrReadOnly{}
)

type allowAny struct{}

func (allowAny) CanRead(*models.Claims) bool  { return true }
func (allowAny) CanWrite(*models.Claims) bool { return true }

type isAuthenticated struct{}

func (isAuthenticated) CanRead(c *models.Claims) bool  { return c != nil }
func (isAuthenticated) CanWrite(c *models.Claims) bool { return c != nil }

type isAdmin struct{}

func (isAdmin) CanRead(c *models.Claims) bool  { return c != nil && c.IsStaff }
func (isAdmin) CanWrite(c *models.Claims) bool { return c != nil && c.IsStaff }

type isAdminOrReadOnly struct{}

func (isAdminOrReadOnly) CanRead(*models.Claims) bool    { return true }
func (isAdminOrReadOnly) CanWrite(c *models.Claims) bool { return c != nil && c.IsStaff }
