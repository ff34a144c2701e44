package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"campania/internal/apperr"
	"campania/internal/httpjson"
	"campania/internal/model"
	"campania/internal/service"
)

const maxOrderBody = 1 << 20

type createOrderResponse struct {
	OK      bool         `json:"ok"`
	OrderID string       `json:"orderId"`
	Data    *model.Order `json:"data"`
}

type dataResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// decodeBody decodes a JSON request body. An empty body decodes to the
// zero value. Decode errors keep the underlying json error in the chain.
func decodeBody(w http.ResponseWriter, r *http.Request, limit int64, v any) error {
	body := http.MaxBytesReader(w, r.Body, limit)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.As(err, &tooLarge):
			return fmt.Errorf("%w: limit %d bytes", apperr.ErrBodyTooLarge, tooLarge.Limit)
		default:
			return fmt.Errorf("%w: %w", apperr.ErrInvalidJSON, err)
		}
	}
	return nil
}

// itemsNotList reports whether err comes from an items value that is not
// an array, which counts as an order without items.
func itemsNotList(err error) bool {
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &typeErr) && typeErr.Field == "items"
}

func CreateOrderHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req service.CreateOrderRequest
		if err := decodeBody(w, r, maxOrderBody, &req); err != nil {
			if itemsNotList(err) {
				err = apperr.ErrEmptyItems
			}
			httpjson.Error(w, err)
			return
		}

		order, err := orderSvc.Create(r.Context(), req)
		if err != nil {
			httpjson.Error(w, err)
			return
		}

		httpjson.Write(w, http.StatusCreated, createOrderResponse{OK: true, OrderID: order.ID, Data: order})
	}
}

func ListOrdersHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orders, err := orderSvc.List(r.Context())
		if err != nil {
			httpjson.Error(w, err)
			return
		}

		httpjson.Write(w, http.StatusOK, dataResponse{OK: true, Data: orders})
	}
}

func UpdateOrderStatusHandler(orderSvc *service.OrderService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req updateStatusRequest
		if err := decodeBody(w, r, 4096, &req); err != nil {
			httpjson.Error(w, err)
			return
		}

		order, err := orderSvc.UpdateStatus(r.Context(), id, req.Status)
		if err != nil {
			httpjson.Error(w, err)
			return
		}

		httpjson.Write(w, http.StatusOK, dataResponse{OK: true, Data: order})
	}
}
