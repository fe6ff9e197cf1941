package dto

// SubscribeRequest is the landing-page payload.
type SubscribeRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
