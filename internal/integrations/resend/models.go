package resend

// sendEmailRequest is the Resend /emails payload
type sendEmailRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

// sendEmailResponse is the Resend /emails success body
type sendEmailResponse struct {
	ID string `json:"id"`
}

// errorResponse is the Resend error body
type errorResponse struct {
	Name    string `json:"name"`
	Message string `json:"message"`
}
