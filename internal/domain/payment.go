package domain

// Payment provider names.
const (
	ProviderStripe   = "stripe"
	ProviderRazorpay = "razorpay"
	ProviderCashfree = "cashfree"
)

// Providers returns the supported payment providers in display order.
func Providers() []string {
	return []string{ProviderStripe, ProviderRazorpay, ProviderCashfree}
}

// IsValidProvider checks whether the given name is a supported provider.
func IsValidProvider(name string) bool {
	for _, p := range Providers() {
		if p == name {
			return true
		}
	}
	return false
}

// Payment slot status constants.
const (
	SlotUninitialized = "uninitialized"
	SlotInitializing  = "initializing"
	SlotReady         = "ready"
	SlotConfirming    = "confirming"
	SlotSucceeded     = "succeeded"
	SlotFailed        = "failed"
)

// PaymentSession is the provider-issued material a slot holds once its
// initialization round-trip completes. Exactly one of the credential fields
// is set, depending on the provider.
type PaymentSession struct {
	Provider string `json:"provider"`

	// Amount the session was created for, in the provider's minor unit
	// (cents for stripe, paise for razorpay and cashfree).
	Amount int64 `json:"amount"`

	// Stripe.
	ClientSecret   string `json:"client_secret,omitempty"`
	PublishableKey string `json:"publishable_key,omitempty"`

	// Razorpay.
	OrderID  string `json:"order_id,omitempty"`
	KeyID    string `json:"key_id,omitempty"`
	Currency string `json:"currency,omitempty"`

	// Cashfree.
	PaymentSessionID string `json:"payment_session_id,omitempty"`
}
