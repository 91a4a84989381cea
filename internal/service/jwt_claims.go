package service

import "github.com/golang-jwt/jwt/v5"

// UserJWTClaims 用户令牌载荷。令牌由外部身份服务签发，本服务只做校验。
type UserJWTClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// AdminJWTClaims 管理员令牌载荷
type AdminJWTClaims struct {
	AdminID  uint   `json:"admin_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
