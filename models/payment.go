package models

// PaymentIntentRequest is the checkout payload. Amount is in minor currency
// units (cents); the metadata carries the parties so the gateway can resolve
// the destination account.
type PaymentIntentRequest struct {
	Amount   int64             `json:"amount" binding:"required"`
	Currency string            `json:"currency"`
	Metadata map[string]string `json:"metadata"`
}

// PaymentIntentResponse carries the client secret the mobile client feeds to
// the Stripe payment sheet. The secret is never persisted server-side.
type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

// OnboardRequest starts Stripe Express onboarding for a detailer.
type OnboardRequest struct {
	DetailerID string `json:"detailerId" binding:"required"`
	Email      string `json:"email" binding:"required,email"`
	Country    string `json:"country"`
}

// OnboardResponse returns the hosted onboarding URL.
type OnboardResponse struct {
	OnboardingURL string `json:"onboardingUrl"`
}
