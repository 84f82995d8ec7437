package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/fadiapc/2026-Dashboard-BKD/internal/model"
	"github.com/fadiapc/2026-Dashboard-BKD/pkg/response"
)

// Decision 策略判定结果
type Decision struct {
	Allow  bool
	Status int    // 拒绝时的 HTTP 状态码
	Code   int    // 拒绝时的业务码
	Reason string // 拒绝原因，写入响应 message
}

// Policy 访问控制策略：在 Handler 之前对请求做允许/拒绝判定
type Policy func(c *gin.Context) Decision

func allow() Decision {
	return Decision{Allow: true}
}

func deny(status, code int, reason string) Decision {
	return Decision{Status: status, Code: code, Reason: reason}
}

// Require 将一组策略组合为 gin 中间件，按序判定，任一拒绝即中止请求
func Require(policies ...Policy) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, p := range policies {
			d := p(c)
			if !d.Allow {
				response.Error(c, d.Status, d.Code, d.Reason)
				c.Abort()
				return
			}
		}
		c.Next()
	}
}

// AuthRequired 要求请求携带已验证的身份（由 JWTAuth 注入）
func AuthRequired() Policy {
	return func(c *gin.Context) Decision {
		if _, exists := c.Get("user_id"); !exists {
			return deny(http.StatusUnauthorized, 10002, "未认证")
		}
		return allow()
	}
}

// AdminRequired 要求管理员角色
func AdminRequired() Policy {
	return func(c *gin.Context) Decision {
		role, exists := c.Get("role")
		if !exists {
			return deny(http.StatusUnauthorized, 10002, "未认证")
		}
		if role.(string) != model.RoleAdmin {
			return deny(http.StatusForbidden, 10003, "无权限访问")
		}
		return allow()
	}
}

// ResourceOwnerRequired 要求路径参数指向调用者本人的资源，管理员不受限
func ResourceOwnerRequired(param string) Policy {
	return func(c *gin.Context) Decision {
		userID, exists := c.Get("user_id")
		if !exists {
			return deny(http.StatusUnauthorized, 10002, "未认证")
		}
		if role, ok := c.Get("role"); ok && role.(string) == model.RoleAdmin {
			return allow()
		}
		if c.Param(param) != userID.(string) {
			return deny(http.StatusForbidden, 10003, "只能访问本人的资源")
		}
		return allow()
	}
}
