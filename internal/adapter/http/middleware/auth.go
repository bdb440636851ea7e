package middleware

import (
	"net/http"
	"strings"

	"ritual_desk/pkg"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleAdmin  = "admin"
	RoleClient = "client"

	ctxActorID = "actor_id"
	ctxRole    = "role"

	// Headers read instead of a token when auth is disabled.
	HeaderActorID   = "X-Actor-ID"
	HeaderActorRole = "X-Actor-Role"
)

var (
	errMissingToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Missing bearer token", http.StatusUnauthorized)
	errInvalidToken = pkg.NewDomainErrorSimple("UNAUTHORIZED", "Invalid token", http.StatusUnauthorized)
	errForbidden    = pkg.NewDomainErrorSimple("FORBIDDEN", "Admin role required", http.StatusForbidden)
)

// AuthOptions configures JWTAuth. With Disabled set the caller identity is
// taken from the X-Actor-* headers, which is only meant for local runs.
type AuthOptions struct {
	Secret   string
	Disabled bool
}

// JWTAuth validates an HS256 Bearer token and stores its sub and role claims
// on the context.
func JWTAuth(opts AuthOptions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if opts.Disabled {
			actor := strings.TrimSpace(c.GetHeader(HeaderActorID))
			if actor == "" {
				actor = "local-admin"
			}
			role := strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderActorRole)))
			if role == "" {
				role = RoleAdmin
			}
			setActor(c, actor, role)
			c.Next()
			return
		}

		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			c.AbortWithStatusJSON(errMissingToken.HTTPStatus, errMissingToken.ToHTTPError())
			return
		}
		raw := strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))

		tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(opts.Secret), nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !tok.Valid {
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}
		claims, ok := tok.Claims.(jwt.MapClaims)
		if !ok {
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}
		sub, _ := claims.GetSubject()
		if strings.TrimSpace(sub) == "" {
			c.AbortWithStatusJSON(errInvalidToken.HTTPStatus, errInvalidToken.ToHTTPError())
			return
		}
		role, _ := claims["role"].(string)
		if role == "" {
			role = RoleClient
		}
		setActor(c, sub, strings.ToLower(role))
		c.Next()
	}
}

// RequireAdmin must run after JWTAuth.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !IsAdmin(c) {
			c.AbortWithStatusJSON(errForbidden.HTTPStatus, errForbidden.ToHTTPError())
			return
		}
		c.Next()
	}
}

func setActor(c *gin.Context, id, role string) {
	c.Set(ctxActorID, id)
	c.Set(ctxRole, role)
}

// ActorID returns the authenticated caller, or "" outside JWTAuth.
func ActorID(c *gin.Context) string {
	return c.GetString(ctxActorID)
}

func IsAdmin(c *gin.Context) bool {
	return c.GetString(ctxRole) == RoleAdmin
}

// SetActor is used by tests to stand in for JWTAuth.
func SetActor(c *gin.Context, id, role string) {
	setActor(c, id, role)
}
