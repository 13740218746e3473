package request

// LoginRequest represents a login request. Form posts use the OAuth2
// password-grant field name "username".
type LoginRequest struct {
	Login    string `form:"username" json:"login" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Name     string `form:"name" json:"name" binding:"required,min=3,max=40"`
	Login    string `form:"login" json:"login" binding:"required,min=3,max=40"`
	Password string `form:"password" json:"password" binding:"required,min=8"`
}
