package resources

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/prepadmin/internal/client/client"
	"github.com/dmitrijs2005/prepadmin/internal/client/models"
)

type Billing struct {
	doer client.Doer
}

func NewBilling(d client.Doer) *Billing { return &Billing{doer: d} }

func (c *Billing) CreateCheckoutSession(ctx context.Context, plan, successURL, cancelURL string) (*models.BillingSession, error) {
	var out models.BillingSession
	err := c.doer.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/billing/checkout",
		JSON:   models.Checkout{Plan: plan, SuccessURL: successURL, CancelURL: cancelURL},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateBillingPortalSession opens the billing portal; an empty returnURL uses
// models.DefaultPortalReturnURL.
func (c *Billing) CreateBillingPortalSession(ctx context.Context, returnURL string) (*models.BillingSession, error) {
	if returnURL == "" {
		returnURL = models.DefaultPortalReturnURL
	}
	var out models.BillingSession
	err := c.doer.Do(ctx, client.Request{
		Method: http.MethodPost,
		Path:   "/billing/portal",
		Query:  url.Values{"return_url": {returnURL}},
		JSON:   struct{}{},
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}
