package middleware

import (
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/navbryce/next-dorm-trust/db"
	"github.com/navbryce/next-dorm-trust/model"
)

const (
	TOKEN_KEY     = "authToken"
	MEMBER_KEY    = "member"
	PRINCIPAL_KEY = "principal"
)

type AuthConfig struct {
	SessionNotRequired bool
	ProfileNotRequired bool
	BanNotChecked      bool
}

// Auth verifies the firebase bearer token, loads the member profile, and
// resolves the coarse role of the principal. Role-specific conditions are
// re-validated by the controllers inside their transactions.
func Auth(database db.Database, authClient *auth.Client, config *AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader, ok := c.Request.Header["Authorization"]
		if !ok || len(authorizationHeader) == 0 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "no authorization header",
			})
			c.Abort()
			return
		}
		if strings.Index(authorizationHeader[0], "Bearer ") != 0 || len(authorizationHeader[0]) < 8 {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "incorrectly formatted authorization header",
			})
			c.Abort()
			return
		}
		token, err := authClient.VerifyIDToken(c, authorizationHeader[0][7:])

		c.Set(TOKEN_KEY, token)

		if err != nil {
			if config.SessionNotRequired {
				return
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"message": "invalid token",
			})
			c.Abort()
			return
		}

		resolvePrincipal(c, database, config, token.UID)
	}
}

// resolvePrincipal loads the member behind a verified uid, resolves its
// role, and enforces the platform-ban gate. Routes that stay readable to
// platform-banned members register with BanNotChecked.
func resolvePrincipal(c *gin.Context, database db.Database, config *AuthConfig, uid string) {
	member, err := database.GetMemberById(c, uid)
	if err != nil || member == nil || !member.IsActive() {
		if config.ProfileNotRequired {
			return
		}
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "must have an active member profile",
		})
		c.Abort()
		return
	}
	c.Set(MEMBER_KEY, member)

	role, err := resolveRole(c, database, member.Id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "database error",
		})
		c.Abort()
		return
	}

	if !config.BanNotChecked {
		ban, err := database.GetActiveBan(c, member.Id, nil)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "database error",
			})
			c.Abort()
			return
		}
		if ban != nil {
			c.JSON(http.StatusForbidden, gin.H{
				"success": false,
				"message": "member is banned from the platform",
			})
			c.Abort()
			return
		}
	}

	c.Set(PRINCIPAL_KEY, &model.Principal{Id: member.Id, Role: role})
}

func resolveRole(c *gin.Context, database db.Database, memberId string) (model.Role, error) {
	admin, err := database.GetAdminById(c, memberId)
	if err != nil {
		return "", err
	}
	if admin != nil && admin.IsActive() {
		return model.RoleAdmin, nil
	}
	isModerator, err := database.HasActiveAssignment(c, memberId)
	if err != nil {
		return "", err
	}
	if isModerator {
		return model.RoleModerator, nil
	}
	return model.RoleMember, nil
}

func GetToken(c *gin.Context) *auth.Token {
	token, _ := c.Get(TOKEN_KEY)
	return token.(*auth.Token)
}

func GetMember(c *gin.Context) *model.Member {
	member, _ := c.Get(MEMBER_KEY)
	return member.(*model.Member)
}

func GetPrincipal(c *gin.Context) *model.Principal {
	principal, _ := c.Get(PRINCIPAL_KEY)
	return principal.(*model.Principal)
}
