package designation

type CreateDesignationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateDesignationRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type DesignationResponse struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}
