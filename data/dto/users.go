package dto

// RegisterUserRequestBody defines the request body for the RegisterUser service.
type RegisterUserRequestBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ActivateUserRequestBody defines the request body for the ActivateUser service.
type ActivateUserRequestBody struct {
	Token string `json:"token"`
}

// UpdateUserRequestBody defines the request body for the UpdateUser service.
// The fields are pointer types to allow partial updates.
type UpdateUserRequestBody struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

// UpdateUserPasswordRequestBody defines the request body for the
// UpdateUserPassword service.
type UpdateUserPasswordRequestBody struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	ConfirmNewPassword string `json:"confirm_new_password"`
}

// ResetUserPasswordRequestBody defines the request body for the
// ResetUserPassword service.
type ResetUserPasswordRequestBody struct {
	Password string `json:"password"`
	Token    string `json:"token"`
}
