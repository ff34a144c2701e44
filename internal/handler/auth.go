package handler

import (
	"net/http"

	"campania/internal/httpjson"
	"campania/internal/service"
)

type loginRequest struct {
	Password string `json:"password"`
}

type loginResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
}

func LoginHandler(authSvc *service.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := decodeBody(w, r, 4096, &req); err != nil {
			httpjson.Error(w, err)
			return
		}

		token, err := authSvc.Login(req.Password)
		if err != nil {
			httpjson.Error(w, err)
			return
		}

		w.Header().Set("Authorization", "Bearer "+token)
		httpjson.Write(w, http.StatusOK, loginResponse{OK: true, Token: token})
	}
}
