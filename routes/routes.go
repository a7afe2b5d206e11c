package routes

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront/controllers"
	"storefront/middleware"
	"storefront/utils"
)

type Controllers struct {
	Auth        *controllers.AuthController
	User        *controllers.UserController
	Category    *controllers.CategoryController
	Attribute   *controllers.AttributeController
	ProductType *controllers.ProductTypeController
	Product     *controllers.ProductController
	Variant     *controllers.VariantController
	Collection  *controllers.CollectionController
	Cart        *controllers.CartController
	Order       *controllers.OrderController
}

type Options struct {
	Tokens      *utils.TokenIssuer
	GuestCookie middleware.GuestCookie
	UploadDir   string
}

func SetupRoutes(router *gin.Engine, ctrl Controllers, opts Options) {
	requireAuth := middleware.AuthMiddleware(opts.Tokens)
	optionalAuth := middleware.OptionalAuth(opts.Tokens)
	guest := middleware.GuestSession(opts.GuestCookie)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	router.POST("/auth/register", guest, ctrl.Auth.Register)
	router.POST("/auth/login", guest, ctrl.Auth.Login)

	router.GET("/categories", ctrl.Category.GetCategories)
	router.GET("/categories/tree", ctrl.Category.GetCategoryTree)
	router.GET("/categories/:slug", ctrl.Category.GetCategoryBySlug)

	router.GET("/products", ctrl.Product.GetProducts)
	router.GET("/products/facets", ctrl.Product.GetFacets)
	router.GET("/products/:slug", ctrl.Product.GetProductBySlug)

	router.GET("/collections", ctrl.Collection.GetCollections)
	router.GET("/collections/:slug", ctrl.Collection.GetCollectionBySlug)

	shop := router.Group("/")
	shop.Use(optionalAuth, guest)
	{
		shop.GET("/cart", ctrl.Cart.GetCart)
		shop.DELETE("/cart", ctrl.Cart.ClearCart)
		shop.POST("/cart/items", ctrl.Cart.AddItem)
		shop.PATCH("/cart/items/:id", ctrl.Cart.UpdateItem)
		shop.DELETE("/cart/items/:id", ctrl.Cart.RemoveItem)
		shop.POST("/checkout", ctrl.Order.Checkout)
		shop.POST("/orders/lookup", ctrl.Order.LookupOrder)
	}

	auth := router.Group("/")
	auth.Use(requireAuth)
	{
		auth.GET("/auth/profile", ctrl.Auth.GetProfile)
		auth.PATCH("/auth/profile", ctrl.Auth.UpdateProfile)
		auth.POST("/auth/change-password", ctrl.Auth.ChangePassword)
		auth.GET("/orders", ctrl.Order.GetMyOrders)
		auth.GET("/orders/:number", ctrl.Order.GetMyOrder)
	}

	admin := router.Group("/admin")
	admin.Use(requireAuth, middleware.AdminMiddleware())
	{
		admin.GET("/dashboard", ctrl.Order.GetDashboard)

		admin.GET("/users", ctrl.User.GetAllUsers)
		admin.GET("/users/:id", ctrl.User.GetUserByID)
		admin.PATCH("/users/:id/role", ctrl.User.UpdateUserRole)
		admin.DELETE("/users/:id", ctrl.User.DeleteUser)

		admin.GET("/categories", ctrl.Category.AdminGetCategories)
		admin.GET("/categories/:id", ctrl.Category.GetCategoryByID)
		admin.POST("/categories", ctrl.Category.CreateCategory)
		admin.PATCH("/categories/:id", ctrl.Category.UpdateCategory)
		admin.DELETE("/categories/:id", ctrl.Category.DeleteCategory)

		admin.GET("/attributes", ctrl.Attribute.GetAttributes)
		admin.GET("/attributes/:id", ctrl.Attribute.GetAttribute)
		admin.POST("/attributes", ctrl.Attribute.CreateAttribute)
		admin.PATCH("/attributes/:id", ctrl.Attribute.UpdateAttribute)
		admin.DELETE("/attributes/:id", ctrl.Attribute.DeleteAttribute)
		admin.POST("/attributes/:id/values", ctrl.Attribute.AddValue)
		admin.PATCH("/attributes/:id/values/:value_id", ctrl.Attribute.UpdateValue)
		admin.DELETE("/attributes/:id/values/:value_id", ctrl.Attribute.DeleteValue)

		admin.GET("/product-types", ctrl.ProductType.GetProductTypes)
		admin.GET("/product-types/:id", ctrl.ProductType.GetProductType)
		admin.POST("/product-types", ctrl.ProductType.CreateProductType)
		admin.PATCH("/product-types/:id", ctrl.ProductType.UpdateProductType)
		admin.DELETE("/product-types/:id", ctrl.ProductType.DeleteProductType)

		admin.GET("/products", ctrl.Product.AdminGetProducts)
		admin.GET("/products/:id", ctrl.Product.GetProductByID)
		admin.POST("/products", ctrl.Product.CreateProduct)
		admin.PATCH("/products/:id", ctrl.Product.UpdateProduct)
		admin.DELETE("/products/:id", ctrl.Product.DeleteProduct)
		admin.PUT("/products/:id/attributes", ctrl.Product.SetProductAttributes)
		admin.POST("/products/:id/image", ctrl.Product.UploadProductImage)

		admin.GET("/products/:id/variants", ctrl.Variant.GetVariants)
		admin.POST("/products/:id/variants", ctrl.Variant.CreateVariant)
		admin.POST("/products/:id/variants/generate", ctrl.Variant.GenerateVariants)
		admin.PATCH("/variants/bulk", ctrl.Variant.BulkUpdateVariants)
		admin.GET("/variants/:id", ctrl.Variant.GetVariant)
		admin.PATCH("/variants/:id", ctrl.Variant.UpdateVariant)
		admin.DELETE("/variants/:id", ctrl.Variant.DeleteVariant)

		admin.GET("/collections", ctrl.Collection.AdminGetCollections)
		admin.GET("/collections/:id", ctrl.Collection.GetCollectionByID)
		admin.POST("/collections", ctrl.Collection.CreateCollection)
		admin.PATCH("/collections/:id", ctrl.Collection.UpdateCollection)
		admin.DELETE("/collections/:id", ctrl.Collection.DeleteCollection)
		admin.POST("/collections/:id/products", ctrl.Collection.AddProducts)
		admin.DELETE("/collections/:id/products/:product_id", ctrl.Collection.RemoveProduct)

		admin.GET("/orders", ctrl.Order.GetAllOrders)
		admin.GET("/orders/:id", ctrl.Order.GetOrderByID)
		admin.PATCH("/orders/:id/status", ctrl.Order.UpdateOrderStatus)
	}

	if opts.UploadDir != "" {
		router.Static("/uploads", opts.UploadDir)
	}
}
