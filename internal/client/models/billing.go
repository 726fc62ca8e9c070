package models

// Checkout is the body of POST /billing/checkout.
type Checkout struct {
	Plan       string `json:"plan"`
	SuccessURL string `json:"success_url"`
	CancelURL  string `json:"cancel_url"`
}

// BillingSession is a hosted billing page the user is sent to.
type BillingSession struct {
	URL       string `json:"url"`
	SessionID string `json:"session_id,omitempty"`
}

// DefaultPortalReturnURL is used when no return URL is given.
const DefaultPortalReturnURL = "https://app.caseprepared.com/account"
