package handler

// createProductRequest is the payload for POST /api/products. The owner is
// always the authenticated user; it cannot be supplied by the client.
type createProductRequest struct {
	Name        string  `json:"name"        validate:"required"`
	Price       float64 `json:"price"       validate:"gte=0"`
	Description string  `json:"description"`
}

// updateProductRequest carries a partial update: absent fields stay nil and
// are left untouched.
type updateProductRequest struct {
	Name        *string  `json:"name"        validate:"omitempty,min=1"`
	Price       *float64 `json:"price"       validate:"omitempty,gte=0"`
	Description *string  `json:"description"`
}
