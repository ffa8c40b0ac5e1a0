package apiclient

import "context"

// SelfRegistration is the public membership application form. The application
// is reviewed by staff; the applicant only becomes a member once approved.
type SelfRegistration struct {
	FirstName     string `json:"first_name"`
	MiddleName    string `json:"middle_name,omitempty"`
	LastName      string `json:"last_name"`
	Phone         string `json:"phone"`
	Email         string `json:"email,omitempty"`
	Gender        string `json:"gender"`
	DateOfBirth   string `json:"date_of_birth,omitempty"`
	NationalID    string `json:"national_id"`
	Address       string `json:"address,omitempty"`
	Password      string `json:"password"`
	IDDocumentURL string `json:"id_document_url,omitempty"`
}

// PartnerRegistration is the public partnership enquiry form.
type PartnerRegistration struct {
	OrganizationName string `json:"organization_name"`
	ContactName      string `json:"contact_name"`
	Phone            string `json:"phone"`
	Email            string `json:"email,omitempty"`
	Message          string `json:"message,omitempty"`
}

// SelfRegister submits a membership application and returns the backend's
// application handle. Public endpoint, no bearer required.
func (c *Client) SelfRegister(ctx context.Context, form SelfRegistration) (string, error) {
	var resp struct {
		ApplicationID string `json:"application_id"`
	}
	if err := c.postJSON(ctx, "/public/self-register", form, &resp); err != nil {
		return "", err
	}
	return resp.ApplicationID, nil
}

// RegisterPartner submits a partnership enquiry. Public endpoint.
func (c *Client) RegisterPartner(ctx context.Context, form PartnerRegistration) (string, error) {
	var resp struct {
		ApplicationID string `json:"application_id"`
	}
	if err := c.postJSON(ctx, "/public/partners", form, &resp); err != nil {
		return "", err
	}
	return resp.ApplicationID, nil
}
