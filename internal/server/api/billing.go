package api

import (
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/prepadmin/internal/client/models"
	"github.com/google/uuid"
)

// checkoutBaseURL is where the fake hosted pages live.
const checkoutBaseURL = "https://billing.example.test"

func (a *API) Checkout(w http.ResponseWriter, r *http.Request) {
	var req models.Checkout
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Plan == "" {
		writeValidation(w, []fieldError{missing("plan")})
		return
	}
	id := "cs_" + uuid.NewString()
	u := checkoutBaseURL + "/checkout/" + id + "?" + url.Values{"plan": {req.Plan}, "success_url": {req.SuccessURL}}.Encode()
	a.log.Info(r.Context(), "checkout session created", "plan", req.Plan, "user", currentUser(r).Email)
	writeJSON(w, http.StatusOK, models.BillingSession{URL: u, SessionID: id})
}

func (a *API) Portal(w http.ResponseWriter, r *http.Request) {
	ret := r.URL.Query().Get("return_url")
	if ret == "" {
		ret = models.DefaultPortalReturnURL
	}
	id := "ps_" + uuid.NewString()
	u := checkoutBaseURL + "/portal/" + id + "?" + url.Values{"return_url": {ret}}.Encode()
	writeJSON(w, http.StatusOK, models.BillingSession{URL: u, SessionID: id})
}
