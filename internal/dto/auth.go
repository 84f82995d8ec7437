package dto

// ── 认证模块 DTO ──

// LoginRequest 登录请求
type LoginRequest struct {
	Initial  string `json:"initial"  binding:"required,len=3"`
	Password string `json:"password" binding:"required"`
}

// ChangePasswordRequest 修改密码请求
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"         binding:"required"`
	NewPassword        string `json:"new_password"         binding:"required,min=6,max=72"`
	ConfirmNewPassword string `json:"confirm_new_password" binding:"required"`
}

// TokenResponse 登录成功响应
type TokenResponse struct {
	AccessToken string       `json:"access_token"`
	ExpiresIn   int          `json:"expires_in"` // Token 有效期（秒）
	User        UserResponse `json:"user"`
}
