package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/solestride/storefront-api/auth"
	cartControllers "github.com/solestride/storefront-api/controllers/cart"
	couponControllers "github.com/solestride/storefront-api/controllers/coupon"
	flashsaleControllers "github.com/solestride/storefront-api/controllers/flashsale"
	newsControllers "github.com/solestride/storefront-api/controllers/news"
	orderControllers "github.com/solestride/storefront-api/controllers/order"
	paymentControllers "github.com/solestride/storefront-api/controllers/payment"
	productcontroller "github.com/solestride/storefront-api/controllers/product"
	userControllers "github.com/solestride/storefront-api/controllers/user"
	warrantyControllers "github.com/solestride/storefront-api/controllers/warranty"
	"github.com/solestride/storefront-api/events"
	"github.com/solestride/storefront-api/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every handler under the /api prefix. User-facing routes
// authenticate via the JWT cookie; admin routes sit behind the X-API-KEY
// header.
func SetupRoutes(
	r *gin.Engine,
	db *gorm.DB,
	payments *paymentControllers.Service,
	hub *orderControllers.Hub,
	cache *productcontroller.Cache,
	pub events.PublisherInterface,
) {
	api := r.Group("/api")

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/register", auth.RegisterHandler(db))
		authGroup.POST("/login", auth.LoginHandler(db))
		authGroup.POST("/refresh", auth.RefreshHandler(db))
		authGroup.POST("/logout", auth.LogoutHandler())
	}

	// Public catalog.
	api.GET("/products", productcontroller.GetProducts(db))
	api.GET("/products/:id", productcontroller.GetProductByID(db, cache))
	api.GET("/flash-sales", flashsaleControllers.GetActiveFlashSales(db))
	api.GET("/coupons/:code", couponControllers.ValidateCoupon(db))
	api.GET("/news", newsControllers.GetPublishedNews(db))
	api.GET("/news/:slug", newsControllers.GetNewsBySlug(db))

	cart := api.Group("/cart", middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetUserCart(db))
		cart.POST("", cartControllers.AddCartItem(db))
		cart.DELETE("", cartControllers.ClearUserCart(db))
		cart.PUT("/item/:itemID", cartControllers.UpdateCartItemQuantity(db))
		cart.DELETE("/item/:itemID", cartControllers.DeleteCartItem(db))
		cart.PUT("/selection", cartControllers.UpdateSelection(db))
		cart.PUT("/shipping", cartControllers.SetShippingInfo(db))
		cart.POST("/coupon", cartControllers.ApplyCoupon(db))
		cart.DELETE("/coupon", cartControllers.RemoveCoupon(db))
	}

	payment := api.Group("/payment")
	{
		payment.POST("/create", middleware.ValidateToken, payments.CreatePaymentHandler())
		payment.GET("/order-history", middleware.ValidateToken, payments.OrderHistoryHandler())
		payment.GET("/detail/:id", middleware.ValidateToken, payments.DetailHandler())
		payment.POST("/cancel-order/:orderID", middleware.ValidateToken, payments.CancelOrderHandler())

		// Gateway callbacks carry their own authentication: the browser
		// returns are resolved heuristically, the ZaloPay IPN is MAC-checked.
		payment.GET("/momo", payments.MoMoReturnHandler())
		payment.GET("/vnpay", payments.VNPayReturnHandler())
		payment.GET("/zalopay", payments.ZaloPayReturnHandler())
		payment.POST("/zalopay", middleware.ZaloPayIPNAuth(), payments.ZaloPayIPNHandler())
	}

	users := api.Group("/users", middleware.ValidateToken)
	{
		users.GET("/me", userControllers.GetProfile(db))
		users.PUT("/me", userControllers.UpdateProfile(db))
	}

	warranties := api.Group("/warranties", middleware.ValidateToken)
	{
		warranties.GET("", warrantyControllers.GetUserWarranties(db))
		warranties.POST("/:id/return", warrantyControllers.RequestReturn(db))
	}

	api.GET("/order/ws", hub.Handler())

	admin := api.Group("/admin", middleware.ValidateAPIKey)
	{
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.GET("/orders/:orderID", orderControllers.GetOrderByIDHandler(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db, hub, pub))

		admin.POST("/products", productcontroller.CreateProduct(db, cache))
		admin.PUT("/products/:id", productcontroller.UpdateProduct(db, cache))
		admin.DELETE("/products/:id", productcontroller.DeleteProduct(db, cache))
		admin.POST("/products/import-excel", productcontroller.ImportProductsFromExcel(db))
		admin.GET("/products/export-excel", productcontroller.ExportProductsToExcel(db))

		admin.GET("/flash-sales", flashsaleControllers.GetAllFlashSales(db))
		admin.POST("/flash-sales", flashsaleControllers.CreateFlashSale(db))
		admin.PUT("/flash-sales/:id", flashsaleControllers.UpdateFlashSale(db))
		admin.DELETE("/flash-sales/:id", flashsaleControllers.DeleteFlashSale(db))

		admin.GET("/coupons", couponControllers.GetAllCoupons(db))
		admin.POST("/coupons", couponControllers.CreateCoupon(db))
		admin.PUT("/coupons/:id", couponControllers.UpdateCoupon(db))
		admin.DELETE("/coupons/:id", couponControllers.DeleteCoupon(db))

		admin.GET("/news", newsControllers.GetAllNews(db))
		admin.POST("/news", newsControllers.CreateNews(db))
		admin.PUT("/news/:id", newsControllers.UpdateNews(db))
		admin.DELETE("/news/:id", newsControllers.DeleteNews(db))

		admin.PUT("/warranties/:id/status", warrantyControllers.ResolveReturn(db))
		admin.GET("/users", userControllers.GetAllUsers(db))
	}
}
