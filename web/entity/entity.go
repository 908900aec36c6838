// Package entity defines the wire-level response shapes of the API.
package entity

// DataResponse wraps every successful payload-carrying response.
type DataResponse struct {
	Data any `json:"data"`
}

// MessageResponse is used for confirmation messages and all error bodies.
type MessageResponse struct {
	Message string `json:"message"`
}
