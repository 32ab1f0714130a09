package dto

import "time"

// CompanyPayload is the nested company object on job requests and responses.
type CompanyPayload struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
}

// CreateJobRequest payload. Only the nested company form is accepted.
type CreateJobRequest struct {
	Title       string          `json:"title"`
	Type        string          `json:"type"`
	Location    string          `json:"location"`
	Description string          `json:"description"`
	Salary      string          `json:"salary"`
	Company     *CompanyPayload `json:"company"`
}

// CompanyUpdatePayload allows partial company updates.
type CompanyUpdatePayload struct {
	Name         *string `json:"name"`
	Description  *string `json:"description"`
	ContactEmail *string `json:"contactEmail"`
	ContactPhone *string `json:"contactPhone"`
}

// UpdateJobRequest payload; absent fields keep their stored values.
type UpdateJobRequest struct {
	Title       *string               `json:"title"`
	Type        *string               `json:"type"`
	Location    *string               `json:"location"`
	Description *string               `json:"description"`
	Salary      *string               `json:"salary"`
	Company     *CompanyUpdatePayload `json:"company"`
}

// JobResponse is the public view of a posting.
type JobResponse struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Type        string         `json:"type"`
	Location    string         `json:"location"`
	Description string         `json:"description"`
	Salary      string         `json:"salary"`
	Company     CompanyPayload `json:"company"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}
