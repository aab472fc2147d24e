package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createSweetRequest struct {
	Name     string  `json:"name"     validate:"required"`
	Category string  `json:"category" validate:"required"`
	Price    float64 `json:"price"    validate:"required,gt=0"`
	Quantity int     `json:"quantity" validate:"required,gt=0"`
	ImageURL string  `json:"imageUrl"`
}

// updateSweetRequest uses pointers so an omitted field is distinguishable
// from an explicitly provided zero value. An imageUrl set to "" clears the
// image.
type updateSweetRequest struct {
	Name     *string  `json:"name"`
	Category *string  `json:"category"`
	Price    *float64 `json:"price"`
	Quantity *int     `json:"quantity"`
	ImageURL *string  `json:"imageUrl"`
}

type restockSweetRequest struct {
	Quantity int `json:"quantity"`
}

// --- Response types ---

// sweetResponse is the public catalog shape. Image is present only when an
// image URL is set; it is omitted entirely otherwise, never null or empty.
type sweetResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
}

type messageResponse struct {
	Message string `json:"message"`
}
