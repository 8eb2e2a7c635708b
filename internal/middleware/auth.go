package middleware

import (
	"creai_edu_backend/internal/util"
	"creai_edu_backend/pkg/logger"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TryAuth 解析可选的 Bearer 令牌，成功时写入 "user"；缺失或无效都直接放行
func TryAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := util.ParseJWT(tokenString, secret)
		if err != nil {
			logger.Log.Debug("ignoring invalid token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.Next()
			return
		}

		c.Set("user", claims)
		c.Next()
	}
}
