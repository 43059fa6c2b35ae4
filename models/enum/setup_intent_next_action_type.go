package enum

import "slices"

type SetupIntentNextActionType string

const (
	SetupIntentNextActionTypeRedirectToURL SetupIntentNextActionType = "redirect_to_url"
	SetupIntentNextActionTypeUseStripeSDK  SetupIntentNextActionType = "use_stripe_sdk"
)

var setupIntentNextActionTypes = []SetupIntentNextActionType{
	SetupIntentNextActionTypeRedirectToURL,
	SetupIntentNextActionTypeUseStripeSDK,
}

func (t SetupIntentNextActionType) IsValid() bool {
	return slices.Contains(setupIntentNextActionTypes, t)
}

func (t *SetupIntentNextActionType) UnmarshalJSON(data []byte) error {
	return decodeClosed("setup intent next action type", data, t, setupIntentNextActionTypes)
}
