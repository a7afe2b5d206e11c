package app

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"storefront/config"
	"storefront/controllers"
	"storefront/libs"
	"storefront/middleware"
	"storefront/repositories"
	"storefront/routes"
	"storefront/services"
	"storefront/utils"
)

// App owns the router and every connection opened to build it.
type App struct {
	Router *gin.Engine

	db     *pgxpool.Pool
	redis  *redis.Client
	events libs.Publisher
	log    *zap.Logger
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	if err := config.RunMigrations(cfg, log); err != nil {
		return nil, err
	}

	db, err := config.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.UploadDir, os.ModePerm); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}

	images, err := libs.NewImageStore(
		cfg.CloudinaryURL, cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret,
		cfg.UploadDir, log,
	)
	if err != nil {
		db.Close()
		return nil, err
	}

	redisClient := config.ConnectRedis(ctx, cfg, log)
	a := &App{
		db:     db,
		redis:  redisClient,
		events: newPublisher(cfg, log),
		log:    log,
	}

	cache := libs.NewRedisCache(redisClient, cfg.CacheTTL, log)
	notify := services.NewCatalogNotifier(cache, a.events, log)
	tokens := utils.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)

	users := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	attributeRepo := repositories.NewAttributeRepository(db)
	typeRepo := repositories.NewProductTypeRepository(db)
	productRepo := repositories.NewProductRepository(db)
	variantRepo := repositories.NewVariantRepository(db)
	collectionRepo := repositories.NewCollectionRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	orderRepo := repositories.NewOrderRepository(db)

	categories := services.NewCategoryService(categoryRepo, notify)
	products := services.NewProductService(productRepo, typeRepo, categories, images, notify)
	carts := services.NewCartService(cartRepo, variantRepo, cfg.Currency, log)
	rates := services.ShippingRates{
		Standard:      cfg.StandardShippingFee,
		Express:       cfg.ExpressShippingFee,
		FreeThreshold: cfg.FreeShippingThreshold,
	}

	a.Router = gin.New()
	a.Router.Use(middleware.Recovery(log), middleware.RequestLogger(log))
	a.Router.Use(middleware.CORSMiddleware(cfg.OriginURL))

	routes.SetupRoutes(a.Router, routes.Controllers{
		Auth:        controllers.NewAuthController(services.NewAuthService(users, carts, tokens, log)),
		User:        controllers.NewUserController(services.NewUserService(users, log)),
		Category:    controllers.NewCategoryController(categories),
		Attribute:   controllers.NewAttributeController(services.NewAttributeService(attributeRepo, notify)),
		ProductType: controllers.NewProductTypeController(services.NewProductTypeService(typeRepo, attributeRepo, notify)),
		Product:     controllers.NewProductController(products, cfg.MaxUploadSize),
		Variant:     controllers.NewVariantController(services.NewVariantService(variantRepo, productRepo, typeRepo, notify)),
		Collection:  controllers.NewCollectionController(services.NewCollectionService(collectionRepo, products, notify)),
		Cart:        controllers.NewCartController(carts),
		Order: controllers.NewOrderController(services.NewOrderService(
			orderRepo, carts, newMailer(cfg, log), notify, rates, cfg.Currency,
		)),
	}, routes.Options{
		Tokens: tokens,
		GuestCookie: middleware.GuestCookie{
			Name:   cfg.GuestCookieName,
			TTL:    cfg.GuestCookieTTL,
			Secure: cfg.IsProduction(),
		},
		UploadDir: cfg.UploadDir,
	})

	return a, nil
}

func newMailer(cfg *config.Config, log *zap.Logger) libs.Mailer {
	if cfg.SMTPHost == "" {
		log.Info("SMTP not configured, order confirmations are logged only")
		return libs.NewLogMailer(log)
	}
	mailer, err := libs.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom)
	if err != nil {
		log.Warn("invalid SMTP configuration, order confirmations are logged only", zap.Error(err))
		return libs.NewLogMailer(log)
	}
	return mailer
}

func newPublisher(cfg *config.Config, log *zap.Logger) libs.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		return libs.NopPublisher{}
	}
	publisher, err := libs.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaOrdersTopic, cfg.KafkaCatalogTopic, log)
	if err != nil {
		log.Warn("kafka unavailable, domain events are dropped", zap.Error(err))
		return libs.NopPublisher{}
	}
	log.Info("kafka producer ready", zap.Strings("brokers", cfg.KafkaBrokers))
	return publisher
}

func (a *App) Close() {
	a.events.Close()
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.log.Warn("failed to close redis", zap.Error(err))
		}
	}
	a.db.Close()
	a.log.Info("connections closed")
}
