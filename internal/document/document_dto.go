package document

import "time"

type UpdateDocumentRequest struct {
	Title         string `json:"title"`
	CompanyID     string `json:"company_id"`
	DesignationID string `json:"designation_id"`
	AccessCode    *string `json:"access_code"`
}

type DocumentFilterRequest struct {
	CompanyID     string `form:"company_id"`
	DesignationID string `form:"designation_id"`
	Search        string `form:"search"`
}

type DocumentResponse struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	FileName      string    `json:"file_name"`
	Size          int64     `json:"size"`
	ContentType   string    `json:"content_type"`
	CompanyID     string    `json:"company_id,omitempty"`
	DesignationID string    `json:"designation_id,omitempty"`
	Protected     bool      `json:"protected"`
	IsActive      bool      `json:"is_active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type AccessLogResponse struct {
	UserID     string    `json:"user_id"`
	Granted    bool      `json:"granted"`
	AccessedAt time.Time `json:"accessed_at"`
}
