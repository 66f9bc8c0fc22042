package scasmodels

type AuthenticationError struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}
