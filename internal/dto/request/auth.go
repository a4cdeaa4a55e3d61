package request

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=2,bcryptmax"`
	Name     string `json:"name" validate:"required,min=1"`
	Role     string `json:"role" validate:"required,oneof=ADMIN CUSTOMER SELLER"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}
