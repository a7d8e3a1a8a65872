package router

import (
	"net/http"

	"landa-be/internal/cart"
	"landa-be/internal/config"
	"landa-be/internal/logger"
	"landa-be/internal/metrics"
	"landa-be/internal/middleware"
	"landa-be/internal/order"
	"landa-be/internal/product"
	"landa-be/internal/sellerrequest"
	"landa-be/internal/transport"
	"landa-be/internal/user"

	"github.com/gorilla/mux"
)

type Handlers struct {
	User          *user.Handler
	Product       *product.Handler
	Cart          *cart.Handler
	Order         *order.Handler
	SellerRequest *sellerrequest.Handler
}

const (
	roleUser   = string(user.RoleUser)
	roleSeller = string(user.RoleSeller)
	roleAdmin  = string(user.RoleAdmin)
)

func SetupRouter(cfg *config.Config, h Handlers, userSvc user.Service) *mux.Router {
	r := mux.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.CORS(cfg.FrontendOrigin))
	r.Use(middleware.Authentication(cfg.JWTSecret, userSvc))
	r.Use(middleware.RateLimitMiddleware)

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		transport.JSON(w, http.StatusOK, map[string]any{
			"status":        "ok",
			"uptime":        metrics.Uptime().String(),
			"requests":      metrics.Requests.Load(),
			"server_errors": metrics.ServerErrors.Load(),
		})
	}).Methods("GET")

	// users
	users := r.PathPrefix("/users").Subrouter()
	users.HandleFunc("/register", h.User.Register).Methods("POST")
	users.HandleFunc("/login", h.User.Login).Methods("POST")

	usersAuth := users.PathPrefix("").Subrouter()
	usersAuth.Use(middleware.RequireAuth)
	usersAuth.HandleFunc("/logout", h.User.Logout).Methods("POST")
	usersAuth.HandleFunc("/profile", h.User.GetProfile).Methods("GET")
	usersAuth.HandleFunc("/profile", h.User.UpdateProfile).Methods("PUT")
	usersAuth.HandleFunc("/profile/password", h.User.ChangePassword).Methods("PUT")

	usersAdmin := users.PathPrefix("").Subrouter()
	usersAdmin.Use(middleware.RequireRole(roleAdmin))
	usersAdmin.HandleFunc("", h.User.ListUsers).Methods("GET")
	usersAdmin.HandleFunc("/{id:[0-9]+}/block", h.User.SetBlocked).Methods("PUT")

	// products
	products := r.PathPrefix("/products").Subrouter()
	products.HandleFunc("", h.Product.List).Methods("GET")
	products.HandleFunc("/{id:[0-9]+}", h.Product.Get).Methods("GET")

	productsSeller := products.PathPrefix("").Subrouter()
	productsSeller.Use(middleware.RequireRole(roleSeller, roleAdmin))
	productsSeller.HandleFunc("", h.Product.Create).Methods("POST")
	productsSeller.HandleFunc("/mine", h.Product.ListMine).Methods("GET")
	productsSeller.HandleFunc("/{id:[0-9]+}", h.Product.Update).Methods("PUT")
	productsSeller.HandleFunc("/{id:[0-9]+}", h.Product.Delete).Methods("DELETE")

	// cart
	carts := r.PathPrefix("/cart").Subrouter()
	carts.Use(middleware.RequireAuth)
	carts.HandleFunc("", h.Cart.Get).Methods("GET")
	carts.HandleFunc("", h.Cart.Add).Methods("POST")
	carts.HandleFunc("", h.Cart.Clear).Methods("DELETE")
	carts.HandleFunc("/{itemID:[0-9]+}", h.Cart.Remove).Methods("DELETE")

	// orders
	orders := r.PathPrefix("/orders").Subrouter()
	orders.Use(middleware.RequireAuth)
	orders.HandleFunc("", h.Order.Create).Methods("POST")
	orders.HandleFunc("/userOrder", h.Order.ListMine).Methods("GET")
	orders.HandleFunc("/{id:[0-9]+}", h.Order.Get).Methods("GET")

	ordersAdmin := orders.PathPrefix("").Subrouter()
	ordersAdmin.Use(middleware.RequireRole(roleAdmin))
	ordersAdmin.HandleFunc("", h.Order.ListAll).Methods("GET")

	ordersSeller := orders.PathPrefix("").Subrouter()
	ordersSeller.Use(middleware.RequireRole(roleSeller, roleAdmin))
	ordersSeller.HandleFunc("/sellerOrder", h.Order.ListSelling).Methods("GET")
	ordersSeller.HandleFunc("/{id:[0-9]+}", h.Order.UpdateOverall).Methods("PUT")
	ordersSeller.HandleFunc("/{id:[0-9]+}/items/{itemID:[0-9]+}", h.Order.UpdateItem).Methods("PUT")

	// seller requests
	requests := r.PathPrefix("/seller-requests").Subrouter()
	requests.Use(middleware.RequireAuth)
	requests.HandleFunc("", h.SellerRequest.Apply).Methods("POST")
	requests.HandleFunc("", h.SellerRequest.Get).Methods("GET")

	requestsAdmin := requests.PathPrefix("").Subrouter()
	requestsAdmin.Use(middleware.RequireRole(roleAdmin))
	requestsAdmin.HandleFunc("/All", h.SellerRequest.ListAll).Methods("GET")
	requestsAdmin.HandleFunc("/{id:[0-9]+}", h.SellerRequest.Review).Methods("PUT")

	return r
}
