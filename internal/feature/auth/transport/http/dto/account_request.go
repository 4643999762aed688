package dto

// UpdatePasswordReq represents the request body for PUT /auth/password.
type UpdatePasswordReq struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,max=128"`
}

// DeleteAccountReq represents the request body for DELETE /auth/account.
type DeleteAccountReq struct {
	Password string `json:"password" binding:"required"`
}
