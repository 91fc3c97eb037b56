// Package dto provides Data Transfer Objects for API requests/responses.
package dto

// MaxPageSize caps the limit query parameter.
const MaxPageSize = 100

// ListQuery contains list page query parameters.
type ListQuery struct {
	Search string `form:"search"`
	Tab    string `form:"tab"`
	Limit  int    `form:"limit" binding:"min=0,max=100"`
	Offset int    `form:"offset" binding:"min=0"`
}

// SuccessResponse is a localized confirmation.
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// IDResponse carries the id of a touched record.
type IDResponse struct {
	ID string `json:"id"`
}
