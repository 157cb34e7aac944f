package dto

// ErrorResponse is the uniform error body. Fields carries per-field
// validation messages when the failure is a validation error.
type ErrorResponse struct {
	Message string            `json:"message"`
	Details []string          `json:"details,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
