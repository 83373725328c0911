package company

type CreateCompanyRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address"`
	Email   string `json:"email" binding:"omitempty,email"`
}

type UpdateCompanyRequest struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Email    string `json:"email" binding:"omitempty,email"`
	IsActive *bool  `json:"is_active"`
}

type CompanyResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	Email    string `json:"email"`
	IsActive bool   `json:"is_active"`
}
