package handler

import (
	"net/http"
	"time"

	"campania/internal/httpjson"
	"campania/internal/model"
)

const serviceName = "campania-backend"

type healthResponse struct {
	OK      bool   `json:"ok"`
	Service string `json:"service"`
	Time    string `json:"time"`
}

func HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httpjson.Write(w, http.StatusOK, healthResponse{
			OK:      true,
			Service: serviceName,
			Time:    model.FormatTime(time.Now()),
		})
	}
}

func RootHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("Campania API v1 · OK"))
	}
}
