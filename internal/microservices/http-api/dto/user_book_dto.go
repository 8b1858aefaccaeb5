package dto

// ReassignRequest: payload for PATCH /user/:userId/book/:bookId.
// NewUserID stays untyped so the handler can tell numbers from strings.
type ReassignRequest struct {
	NewUserID any `json:"newUserId"`
}
