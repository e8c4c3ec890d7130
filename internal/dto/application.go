package dto

type SubmitApplicationRequest struct {
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Name      string `json:"name,omitempty"`
	Email     string `json:"email"`
	Company   string `json:"company,omitempty"`
	Phone     string `json:"phone"`
	Message   string `json:"message,omitempty"`
}

// ApplicationResponse deliberately omits the action tokens and password
// hashes stored on the record.
type ApplicationResponse struct {
	ID           string `json:"id"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName,omitempty"`
	Email        string `json:"email"`
	Company      string `json:"company,omitempty"`
	Phone        string `json:"phone"`
	Message      string `json:"message,omitempty"`
	Status       string `json:"status"`
	SubmittedAt  string `json:"submittedAt"`
	ReviewedAt   string `json:"reviewedAt,omitempty"`
	ReviewedBy   string `json:"reviewedBy,omitempty"`
	Notes        string `json:"notes,omitempty"`
	IsAdmin      bool   `json:"isAdmin,omitempty"`
	IsSuperAdmin bool   `json:"isSuperAdmin,omitempty"`
}

type SubmitApplicationResponse struct {
	Success     bool                `json:"success"`
	Application ApplicationResponse `json:"application"`
}

type ListApplicationsResponse struct {
	Success      bool                  `json:"success"`
	Applications []ApplicationResponse `json:"applications"`
}

type ReviewApplicationRequest struct {
	ApplicationID string `json:"applicationId"`
	Decision      string `json:"decision"`
	ReviewedBy    string `json:"reviewedBy,omitempty"`
	Notes         string `json:"notes,omitempty"`
	Notify        bool   `json:"notify,omitempty"`
}

type ReviewApplicationResponse struct {
	Success     bool                `json:"success"`
	Application ApplicationResponse `json:"application"`
}

type PromoteRequest struct {
	Email string `json:"email"`
}

type IssueAdminSetupRequest struct {
	ApplicationID string `json:"applicationId"`
}

type RecoverResponse struct {
	Success      bool           `json:"success"`
	Recovered    int            `json:"recovered"`
	Skipped      int            `json:"skipped"`
	StatusCounts map[string]int `json:"statusCounts,omitempty"`
}

type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
