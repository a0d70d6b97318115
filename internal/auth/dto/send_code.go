package dto

type SendCodeInput struct {
	PhoneNumber string `json:"phoneNumber"`
	Platform    string `json:"platform"`
}

type SendCodeOutput struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	RequestID string `json:"requestId"`
}
