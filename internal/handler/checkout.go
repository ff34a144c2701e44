package handler

import (
	"net/http"

	"campania/internal/apperr"
	"campania/internal/checkout"
	"campania/internal/httpjson"
	"campania/internal/model"
	"campania/internal/service"
)

type previewRequest struct {
	Cart          model.Cart       `json:"cart"`
	Contact       checkout.Contact `json:"contact"`
	TermsAccepted bool             `json:"termsAccepted"`
}

type preview struct {
	Totals    checkout.Totals           `json:"totals"`
	Rule      *model.DeliveryRule       `json:"rule"`
	Errors    []*apperr.ValidationError `json:"errors"`
	CanSubmit bool                      `json:"canSubmit"`
}

// CheckoutPreviewHandler prices a cart against the server-held delivery
// rule for its postal code and reports what still blocks submission.
func CheckoutPreviewHandler(deliverySvc *service.DeliveryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req previewRequest
		if err := decodeBody(w, r, maxOrderBody, &req); err != nil {
			httpjson.Error(w, err)
			return
		}

		if err := checkout.ValidateCart(req.Cart); err != nil {
			httpjson.Error(w, err)
			return
		}

		var rule *model.DeliveryRule
		if req.Cart.Mode == model.ModeDelivery {
			zip := req.Cart.Zip
			if zip == "" {
				zip = req.Contact.Address.Zip
			}
			if found, err := deliverySvc.Rule(r.Context(), zip); err == nil {
				rule = found
			}
		}

		flow := checkout.NewFlow(req.Cart, rule)
		flow.Contact = req.Contact
		flow.TermsAccepted = req.TermsAccepted

		blockers := flow.Blockers()
		if blockers == nil {
			blockers = []*apperr.ValidationError{}
		}

		httpjson.Write(w, http.StatusOK, dataResponse{OK: true, Data: preview{
			Totals:    flow.Totals(),
			Rule:      rule,
			Errors:    blockers,
			CanSubmit: len(blockers) == 0,
		}})
	}
}
