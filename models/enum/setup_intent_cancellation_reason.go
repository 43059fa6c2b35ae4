package enum

import "slices"

type SetupIntentCancellationReason string

const (
	SetupIntentCancellationReasonAbandoned           SetupIntentCancellationReason = "abandoned"
	SetupIntentCancellationReasonRequestedByCustomer SetupIntentCancellationReason = "requested_by_customer"
	SetupIntentCancellationReasonDuplicate           SetupIntentCancellationReason = "duplicate"
)

var setupIntentCancellationReasons = []SetupIntentCancellationReason{
	SetupIntentCancellationReasonAbandoned,
	SetupIntentCancellationReasonRequestedByCustomer,
	SetupIntentCancellationReasonDuplicate,
}

func (r SetupIntentCancellationReason) IsValid() bool {
	return slices.Contains(setupIntentCancellationReasons, r)
}

func (r *SetupIntentCancellationReason) UnmarshalJSON(data []byte) error {
	return decodeClosed("setup intent cancellation reason", data, r, setupIntentCancellationReasons)
}
