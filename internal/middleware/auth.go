package middleware

import (
	"strings"
	"study_portal_backend/internal/config"
	"study_portal_backend/internal/model"
	"study_portal_backend/internal/util"
	"study_portal_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func tokenFromRequest(c *gin.Context) string {
	tokenString := ""
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		tokenString = strings.TrimPrefix(authHeader, "Bearer ")
	}
	// 下载链接无法带请求头，允许通过 query 传递
	if tokenString == "" {
		tokenString = c.Query("token")
	}
	return tokenString
}

// UserLookup 按邮箱读取账号当前状态
type UserLookup interface {
	FindByEmail(email string) (*model.User, error)
}

// currentClaims 解析令牌后以数据库中的角色为准，账号被删除时令牌失效
func currentClaims(tokenString string, cfg *config.Config, users UserLookup) (*util.Claims, error) {
	claims, err := util.ParseJWT(tokenString, cfg.JWT.Secret)
	if err != nil {
		return nil, err
	}
	user, err := users.FindByEmail(claims.Email)
	if err != nil {
		return nil, err
	}
	claims.UserID = user.ID
	claims.Role = user.Role
	return claims, nil
}

func AuthMiddleware(cfg *config.Config, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := currentClaims(tokenString, cfg, users)
		if err != nil {
			logger.Log.Debug("JWT解析错误", zap.Error(err))
			util.Unauthorized(c)
			c.Abort()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}

// TryAuthMiddleware 公开接口使用：有合法令牌时记录用户，否则按游客处理
func TryAuthMiddleware(cfg *config.Config, users UserLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString := tokenFromRequest(c); tokenString != "" {
			if claims, err := currentClaims(tokenString, cfg, users); err == nil {
				c.Set("user", claims)
			}
		}
		c.Next()
	}
}

func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		hasRole := false
		for _, role := range roles {
			if user.Role == role {
				hasRole = true
				break
			}
		}

		if !hasRole {
			util.Forbidden(c)
			c.Abort()
			return
		}
		c.Next()
	}
}
