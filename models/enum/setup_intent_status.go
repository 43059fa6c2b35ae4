package enum

import "slices"

type SetupIntentStatus string

const (
	SetupIntentStatusRequiresPaymentMethod SetupIntentStatus = "requires_payment_method"
	SetupIntentStatusRequiresConfirmation  SetupIntentStatus = "requires_confirmation"
	SetupIntentStatusRequiresAction        SetupIntentStatus = "requires_action"
	SetupIntentStatusProcessing            SetupIntentStatus = "processing"
	SetupIntentStatusCanceled              SetupIntentStatus = "canceled"
	SetupIntentStatusSucceeded             SetupIntentStatus = "succeeded"
)

var setupIntentStatuses = []SetupIntentStatus{
	SetupIntentStatusRequiresPaymentMethod,
	SetupIntentStatusRequiresConfirmation,
	SetupIntentStatusRequiresAction,
	SetupIntentStatusProcessing,
	SetupIntentStatusCanceled,
	SetupIntentStatusSucceeded,
}

// SetupIntentStatuses returns every status in lifecycle order.
func SetupIntentStatuses() []SetupIntentStatus {
	return slices.Clone(setupIntentStatuses)
}

func (s SetupIntentStatus) IsValid() bool {
	return slices.Contains(setupIntentStatuses, s)
}

// IsTerminal reports whether no further transitions are possible.
func (s SetupIntentStatus) IsTerminal() bool {
	return s == SetupIntentStatusCanceled || s == SetupIntentStatusSucceeded
}

func (s *SetupIntentStatus) UnmarshalJSON(data []byte) error {
	return decodeClosed("setup intent status", data, s, setupIntentStatuses)
}
