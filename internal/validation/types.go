package validation

// GenerateCertificateRequest is the payload for POST /generate-certificate
type GenerateCertificateRequest struct {
	ID    string `json:"id" validate:"required"`    // lookup key, also the PDF object name
	Name  string `json:"name" validate:"required"`  // recipient display name
	Grade string `json:"grade" validate:"required"` // awarded grade/level
}
