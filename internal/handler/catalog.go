package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"campania/internal/httpjson"
	"campania/internal/service"
)

func ListProductsHandler(catalogSvc *service.CatalogService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpjson.Write(w, http.StatusOK, dataResponse{OK: true, Data: catalogSvc.List(r.Context())})
	}
}

func DeliveryRuleHandler(deliverySvc *service.DeliveryService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rule, err := deliverySvc.Rule(r.Context(), chi.URLParam(r, "zip"))
		if err != nil {
			httpjson.Error(w, err)
			return
		}

		httpjson.Write(w, http.StatusOK, dataResponse{OK: true, Data: rule})
	}
}
