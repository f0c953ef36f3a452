package contact

// ContactRequest represents a contact form submission
type ContactRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Phone   string `json:"phone" binding:"required,min=10,max=15,phone"`
	Email   string `json:"email,omitempty" binding:"omitempty,email"`
	Service string `json:"service,omitempty"`
	Message string `json:"message" binding:"required,min=10,max=1000"`
	Website string `json:"website,omitempty"` // honeypot, expected empty
}

// HasEmail reports whether the submitter left an email address
func (r *ContactRequest) HasEmail() bool {
	return r.Email != ""
}

// HasService reports whether the submitter picked a service
func (r *ContactRequest) HasService() bool {
	return r.Service != ""
}

// IsLikelyBot reports whether the honeypot field was filled in
func (r *ContactRequest) IsLikelyBot() bool {
	return r.Website != ""
}

// ContactResponse is the data returned after a successful delivery
type ContactResponse struct {
	ID string `json:"id"`
}
