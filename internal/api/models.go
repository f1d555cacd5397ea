package api

// Request and response payloads. Validation tags mirror the catalog's
// business limits: short titles, bounded descriptions, non-negative
// quantities and prices.

// RegisterRequest defines the payload for the registration endpoint.
type RegisterRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Name     string `json:"name"     validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest defines the payload for the login endpoint.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=1"`
}

// AuthResponse defines the successful response for login and refresh. The
// refresh token itself travels in an HTTP-only cookie, not the body.
type AuthResponse struct {
	UserID      int64  `json:"user_id"`
	AccessToken string `json:"access_token"`
}

// UserPatchRequest defines the payload for partially updating the
// caller's own profile. Absent fields are left unchanged.
type UserPatchRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=3,max=50"`
}

// RecoverRequest defines the payload for requesting password recovery.
type RecoverRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest defines the payload for completing password recovery.
type ResetPasswordRequest struct {
	Token    string `json:"token"    validate:"required"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// ProductRequest defines the payload for creating a product.
type ProductRequest struct {
	Title       string `json:"title"       validate:"required,max=30"`
	Description string `json:"description" validate:"max=1000"`
	Quantity    int    `json:"quantity"    validate:"gte=0"`
	FullPrice   int64  `json:"full_price"  validate:"gte=0"`
	IsActive    bool   `json:"is_active"`
	CategoryID  *int64 `json:"category_id,omitempty"`
}

// ProductPatchRequest defines the payload for partially updating a
// product. Absent fields are left unchanged.
type ProductPatchRequest struct {
	Title       *string `json:"title,omitempty"       validate:"omitempty,max=30"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Quantity    *int    `json:"quantity,omitempty"    validate:"omitempty,gte=0"`
	FullPrice   *int64  `json:"full_price,omitempty"  validate:"omitempty,gte=0"`
	IsActive    *bool   `json:"is_active,omitempty"`
	CategoryID  *int64  `json:"category_id,omitempty"`
}

// CartItemRequest defines the payload for putting a product into the cart.
type CartItemRequest struct {
	ProductID int64 `json:"product_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity"   validate:"required,gt=0"`
}
