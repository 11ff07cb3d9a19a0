package models

// APIResponse is the envelope returned for status and error responses.
type APIResponse struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Message string `json:"message"`
}
