package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"campania/internal/mw"
	"campania/internal/notify"
	"campania/internal/service"
	"campania/internal/web"
)

type Deps struct {
	Orders    *service.OrderService
	Auth      *service.AuthService
	Catalog   *service.CatalogService
	Delivery  *service.DeliveryService
	Broker    *notify.Broker
	Heartbeat time.Duration
	Origins   []string
}

func NewRouter(d Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   d.Origins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Token"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/", RootHandler())
	r.Handle("/admin", http.RedirectHandler("/admin/", http.StatusMovedPermanently))
	r.Handle("/admin/*", http.StripPrefix("/admin/", http.FileServer(http.FS(web.Admin()))))

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Get("/health", HealthHandler())
		r.Get("/products", ListProductsHandler(d.Catalog))
		r.Get("/delivery/{zip}", DeliveryRuleHandler(d.Delivery))
		r.Post("/checkout/preview", CheckoutPreviewHandler(d.Delivery))
		r.Post("/admin/login", LoginHandler(d.Auth))
		r.Post("/orders", CreateOrderHandler(d.Orders))

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(mw.AdminMiddleware(d.Auth))

			r.Get("/orders", ListOrdersHandler(d.Orders))
			r.Get("/orders/stream", OrderStreamHandler(d.Broker, d.Heartbeat))
			r.Patch("/orders/{id}", UpdateOrderStatusHandler(d.Orders))
		})
	})

	return r
}
