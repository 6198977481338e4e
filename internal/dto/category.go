package dto

// CategoryRequest creates or recolors a category.
type CategoryRequest struct {
	Title string `json:"title" validate:"required"`
	Color string `json:"color" validate:"required,hexcolor"`
}

// CategoryResponse is the API projection of a category.
type CategoryResponse struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Color string `json:"color"`
}
