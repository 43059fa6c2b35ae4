package models

// APIError is the error object Stripe attaches to a failed setup attempt (last_setup_error).
// Type stays free text so new error categories do not break decoding.
type APIError struct {
	Type          Optional[string] `json:"type,omitzero"`
	Code          Optional[string] `json:"code,omitzero"`
	DeclineCode   Optional[string] `json:"decline_code,omitzero"`
	DocURL        Optional[string] `json:"doc_url,omitzero"`
	Message       Optional[string] `json:"message,omitzero"`
	Param         Optional[string] `json:"param,omitzero"`
	Charge        Optional[string] `json:"charge,omitzero"`
	PaymentIntent Optional[string] `json:"payment_intent,omitzero"`
	SetupIntent   Optional[string] `json:"setup_intent,omitzero"`
}
