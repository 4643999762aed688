// Package dto はauthフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

// LoginReq は/auth/loginエンドポイントのリクエストボディを表します。
// メール形式はユースケース側で検証します。
type LoginReq struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required"`
}

// RegisterReq は/auth/registerエンドポイントのリクエストボディを表します。
// パスワード強度はユースケース側で検証します。
type RegisterReq struct {
	Email    string `json:"email" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=128"`
}
