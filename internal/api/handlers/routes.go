package handlers

import (
	"net/http"
	"strings"

	"github.com/storefront-labs/storefront-api/internal/api/middleware"
)

const apiPrefix = "/api/v1"

type Handlers struct {
	Users         *UserHandler
	Products      *ProductHandler
	Collections   *CollectionHandler
	Promotions    *PromotionHandler
	Reviews       *ReviewHandler
	Carts         *CartHandler
	Orders        *OrderHandler
	Customers     *CustomerHandler
	Payments      *PaymentHandler
	Notifications *NotificationHandler
}

type route struct {
	pattern string
	authz   middleware.Authorizer
	handler http.HandlerFunc
}

// RegisterRoutes mounts every API route, each behind the authorizer it was declared with.
func RegisterRoutes(mux *http.ServeMux, auth *middleware.AuthMiddleware, h Handlers) {

	routes := []route{
		{"POST /users/register", middleware.AllowAny, h.Users.Register()},
		{"POST /users/login", middleware.AllowAny, h.Users.Login()},
		{"GET /users/profile", middleware.IsAuthenticated, h.Users.Profile()},

		{"GET /products", middleware.IsAdminOrReadOnly, h.Products.ListProducts()},
		{"POST /products", middleware.IsAdminOrReadOnly, h.Products.CreateProduct()},
		{"GET /products/{id}", middleware.IsAdminOrReadOnly, h.Products.GetProduct()},
		{"PUT /products/{id}", middleware.IsAdminOrReadOnly, h.Products.UpdateProduct()},
		{"DELETE /products/{id}", middleware.IsAdminOrReadOnly, h.Products.DeleteProduct()},
		{"POST /products/{id}/promotions", middleware.IsAdminOrReadOnly, h.Products.AttachPromotion()},
		{"GET /products/{id}/reviews", middleware.AllowAny, h.Reviews.ListReviews()},
		{"POST /products/{id}/reviews", middleware.AllowAny, h.Reviews.CreateReview()},

		{"GET /collections", middleware.IsAdminOrReadOnly, h.Collections.ListCollections()},
		{"POST /collections", middleware.IsAdminOrReadOnly, h.Collections.CreateCollection()},
		{"GET /collections/{id}", middleware.IsAdminOrReadOnly, h.Collections.GetCollection()},
		{"PUT /collections/{id}", middleware.IsAdminOrReadOnly, h.Collections.UpdateCollection()},
		{"DELETE /collections/{id}", middleware.IsAdminOrReadOnly, h.Collections.DeleteCollection()},

		{"GET /promotions", middleware.IsAdminOrReadOnly, h.Promotions.ListPromotions()},
		{"POST /promotions", middleware.IsAdminOrReadOnly, h.Promotions.CreatePromotion()},

		{"POST /carts", middleware.AllowAny, h.Carts.CreateCart()},
		{"GET /carts/{id}", middleware.AllowAny, h.Carts.GetCart()},
		{"DELETE /carts/{id}", middleware.AllowAny, h.Carts.DeleteCart()},
		{"POST /carts/{id}/items", middleware.AllowAny, h.Carts.AddItem()},
		{"PATCH /carts/{id}/items/{productId}", middleware.AllowAny, h.Carts.UpdateItem()},
		{"DELETE /carts/{id}/items/{productId}", middleware.AllowAny, h.Carts.RemoveItem()},

		{"POST /orders", middleware.IsAuthenticated, h.Orders.CreateOrder()},
		{"GET /orders", middleware.IsAuthenticated, h.Orders.ListOrders()},
		{"GET /orders/{id}", middleware.IsAuthenticated, h.Orders.GetOrder()},
		{"PATCH /orders/{id}", middleware.IsAdmin, h.Orders.UpdateOrderStatus()},
		{"DELETE /orders/{id}", middleware.IsAdmin, h.Orders.DeleteOrder()},

		{"GET /customers", middleware.IsAdmin, h.Customers.ListCustomers()},
		{"GET /customers/{id}", middleware.IsAdmin, h.Customers.GetCustomer()},
		{"GET /customers/me", middleware.IsAuthenticated, h.Customers.GetMe()},
		{"PUT /customers/me", middleware.IsAuthenticated, h.Customers.UpdateMe()},

		{"POST /payments", middleware.IsAuthenticated, h.Payments.CreatePayment()},
		{"POST /payments/webhook", middleware.AllowAny, h.Payments.HandleWebhook()},

		{"GET /notifications", middleware.IsAdmin, h.Notifications.ListNotifications()},
	}

	for _, rt := range routes {
		method, path, _ := strings.Cut(rt.pattern, " ")
		mux.Handle(method+" "+apiPrefix+path, auth.Authorize(rt.authz, rt.handler))
	}
}
