package models

import (
	"encoding/json"
	"fmt"

	"goflare.io/billing/models/enum"
)

// SetupIntent 代表一次為未來付款設定付款方式的嘗試
// SetupIntent represents an attempt to set up a payment method for future payments.
type SetupIntent struct {
	ID     string `json:"id"`
	Object string `json:"object"`
	// ID of the Connect application that created the SetupIntent.
	Application        Optional[string]                             `json:"application,omitzero"`
	CancellationReason Optional[enum.SetupIntentCancellationReason] `json:"cancellation_reason,omitzero"`
	// Used for client-side retrieval with a publishable key. Must not be logged or stored in URLs.
	ClientSecret   Optional[string]   `json:"client_secret,omitzero"`
	Created        Timestamp          `json:"created,omitzero"`
	Customer       Optional[string]   `json:"customer,omitzero"`
	Description    Optional[string]   `json:"description,omitzero"`
	LastSetupError Optional[APIError] `json:"last_setup_error,omitzero"`
	Livemode       Optional[bool]     `json:"livemode,omitzero"`
	// ID of the multi-use mandate generated by the SetupIntent.
	Mandate              Optional[string]                          `json:"mandate,omitzero"`
	Metadata             Optional[map[string]string]               `json:"metadata,omitzero"`
	NextAction           Optional[SetupIntentNextAction]           `json:"next_action,omitzero"`
	OnBehalfOf           Optional[string]                          `json:"on_behalf_of,omitzero"`
	PaymentMethod        Optional[string]                          `json:"payment_method,omitzero"`
	PaymentMethodOptions Optional[SetupIntentPaymentMethodOptions] `json:"payment_method_options,omitzero"`
	PaymentMethodTypes   Optional[[]string]                        `json:"payment_method_types,omitzero"`
	// ID of the single-use mandate generated by the SetupIntent.
	SingleUseMandate Optional[string]                 `json:"single_use_mandate,omitzero"`
	Status           Optional[enum.SetupIntentStatus] `json:"status,omitzero"`
	// Free text; Stripe documents on_session and off_session (the default).
	Usage Optional[string] `json:"usage,omitzero"`
}

// SetupIntentNextAction tells the integration what the customer has to do next.
// The use_stripe_sdk payload is not modeled; only its type is reported.
type SetupIntentNextAction struct {
	RedirectToURL Optional[SetupIntentNextActionRedirectToURL] `json:"redirect_to_url,omitzero"`
	Type          Optional[enum.SetupIntentNextActionType]     `json:"type,omitzero"`
}

type SetupIntentNextActionRedirectToURL struct {
	// Where the customer lands after authenticating.
	ReturnURL Optional[string] `json:"return_url,omitzero"`
	// Where the customer must be redirected to authenticate.
	URL Optional[string] `json:"url,omitzero"`
}

type SetupIntentPaymentMethodOptions struct {
	Card Optional[SetupIntentPaymentMethodOptionsCard] `json:"card,omitzero"`
}

type SetupIntentPaymentMethodOptionsCard struct {
	// Kept as text: Stripe documents automatic and any but accepts other values.
	RequestThreeDSecure Optional[string] `json:"request_three_d_secure,omitzero"`
}

// SetupIntentList 分頁的 SetupIntent 列表
// SetupIntentList is Stripe's list envelope for setup intents.
type SetupIntentList struct {
	Object  string                  `json:"object"`
	HasMore Optional[bool]          `json:"has_more,omitzero"`
	URL     Optional[string]        `json:"url,omitzero"`
	Data    Optional[[]SetupIntent] `json:"data,omitzero"`
}

// DecodeSetupIntent decodes a setup intent payload. Nothing is returned on failure.
func DecodeSetupIntent(data []byte) (*SetupIntent, error) {
	var si SetupIntent
	if err := si.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &si, nil
}

// DecodeSetupIntentList decodes a list payload, keeping the server's order.
func DecodeSetupIntentList(data []byte) (*SetupIntentList, error) {
	var list SetupIntentList
	if err := list.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return &list, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (si *SetupIntent) UnmarshalJSON(data []byte) error {
	r, err := newFieldReader(data)
	if err != nil {
		return err
	}

	var decoded SetupIntent
	r.required("id", &decoded.ID)
	r.required("object", &decoded.Object)
	r.optional("application", &decoded.Application)
	r.optional("cancellation_reason", &decoded.CancellationReason)
	r.optional("client_secret", &decoded.ClientSecret)
	r.optional("created", &decoded.Created)
	r.optional("customer", &decoded.Customer)
	r.optional("description", &decoded.Description)
	r.optional("last_setup_error", &decoded.LastSetupError)
	r.optional("livemode", &decoded.Livemode)
	r.optional("mandate", &decoded.Mandate)
	r.optional("metadata", &decoded.Metadata)
	r.optional("next_action", &decoded.NextAction)
	r.optional("on_behalf_of", &decoded.OnBehalfOf)
	r.optional("payment_method", &decoded.PaymentMethod)
	r.optional("payment_method_options", &decoded.PaymentMethodOptions)
	r.optional("payment_method_types", &decoded.PaymentMethodTypes)
	r.optional("single_use_mandate", &decoded.SingleUseMandate)
	r.optional("status", &decoded.Status)
	r.optional("usage", &decoded.Usage)
	if r.err != nil {
		return r.err
	}

	*si = decoded
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (na *SetupIntentNextAction) UnmarshalJSON(data []byte) error {
	r, err := newFieldReader(data)
	if err != nil {
		return err
	}

	var decoded SetupIntentNextAction
	r.optional("redirect_to_url", &decoded.RedirectToURL)
	r.optional("type", &decoded.Type)
	if r.err != nil {
		return r.err
	}

	*na = decoded
	return nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (l *SetupIntentList) UnmarshalJSON(data []byte) error {
	r, err := newFieldReader(data)
	if err != nil {
		return err
	}

	var decoded SetupIntentList
	r.required("object", &decoded.Object)
	r.optional("has_more", &decoded.HasMore)
	r.optional("url", &decoded.URL)
	if r.err != nil {
		return r.err
	}

	if raw, ok := r.raw("data"); ok {
		var items []json.RawMessage
		if err := json.Unmarshal(raw, &items); err != nil {
			return fieldError("data", err)
		}

		intents := make([]SetupIntent, len(items))
		for i, item := range items {
			if err := intents[i].UnmarshalJSON(item); err != nil {
				return fieldError(fmt.Sprintf("data[%d]", i), err)
			}
		}
		decoded.Data = Some(intents)
	}

	*l = decoded
	return nil
}
