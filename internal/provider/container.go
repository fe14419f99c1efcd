package provider

import (
	"github.com/brasscraft-shop/internal/authz"
	"github.com/brasscraft-shop/internal/cache"
	"github.com/brasscraft-shop/internal/config"
	"github.com/brasscraft-shop/internal/logger"
	"github.com/brasscraft-shop/internal/models"
	"github.com/brasscraft-shop/internal/queue"
	"github.com/brasscraft-shop/internal/repository"
	"github.com/brasscraft-shop/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	AdminRepo         repository.AdminRepository
	UserRepo          repository.UserRepository
	PasswordResetRepo repository.PasswordResetRepository
	AddressRepo       repository.AddressRepository
	RewardRepo        repository.RewardRepository
	CategoryRepo      repository.CategoryRepository
	ProductRepo       repository.ProductRepository
	VariantRepo       repository.ProductVariantRepository
	PhotoRepo         repository.PhotoRepository
	CartRepo          repository.CartRepository
	WishlistRepo      repository.WishlistRepository
	CouponRepo        repository.CouponRepository
	CouponUsageRepo   repository.CouponUsageRepository
	OrderRepo         repository.OrderRepository
	PreorderRepo      repository.PreorderRepository

	// Services
	AuthzService    *authz.Service
	AuthService     *service.AuthService
	UserAuthService *service.UserAuthService
	EmailService    *service.EmailService
	CaptchaService  *service.CaptchaService
	UploadService   *service.UploadService
	CategoryService *service.CategoryService
	ProductService  *service.ProductService
	PhotoService    *service.PhotoService
	CartService     *service.CartService
	WishlistService *service.WishlistService
	CouponService   *service.CouponService
	CouponAdmin     *service.CouponAdminService
	RewardService   *service.RewardService
	CheckoutService *service.CheckoutService
	OrderService    *service.OrderService
	InvoiceService  *service.InvoiceService
	PreorderService *service.PreorderService
	AddressService  *service.AddressService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config) *Container {
	// 初始化缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		logger.Warnw("provider_init_redis_failed", "error", err)
	}

	// 初始化队列客户端
	var queueClient *queue.Client
	if cfg.Queue.Enabled {
		qc, err := queue.NewClient(&cfg.Queue)
		if err != nil {
			logger.Errorw("provider_init_queue_client_failed", "error", err)
		} else {
			queueClient = qc
		}
	}

	c := &Container{
		Config:      cfg,
		QueueClient: queueClient,
	}

	c.initRepositories()
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.AdminRepo = repository.NewAdminRepository(db)
	c.UserRepo = repository.NewUserRepository(db)
	c.PasswordResetRepo = repository.NewPasswordResetRepository(db)
	c.AddressRepo = repository.NewAddressRepository(db)
	c.RewardRepo = repository.NewRewardRepository(db)
	c.CategoryRepo = repository.NewCategoryRepository(db)
	c.ProductRepo = repository.NewProductRepository(db)
	c.VariantRepo = repository.NewProductVariantRepository(db)
	c.PhotoRepo = repository.NewPhotoRepository(db)
	c.CartRepo = repository.NewCartRepository(db)
	c.WishlistRepo = repository.NewWishlistRepository(db)
	c.CouponRepo = repository.NewCouponRepository(db)
	c.CouponUsageRepo = repository.NewCouponUsageRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.PreorderRepo = repository.NewPreorderRepository(db)
}

func (c *Container) initServices() {
	authzService, err := authz.NewService(models.DB)
	if err != nil {
		logger.Errorw("provider_init_authz_failed", "error", err)
		panic(err)
	}
	c.AuthzService = authzService
	if err := c.AuthzService.BootstrapBuiltinRoles(); err != nil {
		logger.Errorw("provider_bootstrap_builtin_roles_failed", "error", err)
		panic(err)
	}

	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.CaptchaService = service.NewCaptchaService(c.Config.Captcha)
	c.AuthService = service.NewAuthService(&c.Config.JWT, c.AdminRepo)
	c.UserAuthService = service.NewUserAuthService(
		&c.Config.UserJWT,
		c.Config.Security.PasswordPolicy,
		c.UserRepo,
		c.PasswordResetRepo,
		c.QueueClient,
	)
	c.UploadService = service.NewUploadService(c.Config)
	c.CategoryService = service.NewCategoryService(c.CategoryRepo)
	c.ProductService = service.NewProductService(c.ProductRepo, c.VariantRepo, c.CategoryRepo)
	c.PhotoService = service.NewPhotoService(c.PhotoRepo)
	c.CartService = service.NewCartService(c.CartRepo, c.ProductRepo)
	c.WishlistService = service.NewWishlistService(c.WishlistRepo, c.ProductRepo)
	c.CouponService = service.NewCouponService(c.CouponRepo, c.CouponUsageRepo)
	c.CouponAdmin = service.NewCouponAdminService(c.CouponRepo)
	c.RewardService = service.NewRewardService(c.RewardRepo)
	c.CheckoutService = service.NewCheckoutService(
		c.CartRepo,
		c.ProductRepo,
		c.CouponRepo,
		c.CouponUsageRepo,
		c.OrderRepo,
		c.CouponService,
		c.RewardService,
		c.QueueClient,
	)
	c.OrderService = service.NewOrderService(c.OrderRepo, c.QueueClient)
	c.InvoiceService = service.NewInvoiceService(&c.Config.Invoice, c.OrderRepo)
	c.PreorderService = service.NewPreorderService(
		&c.Config.Preorder,
		c.PreorderRepo,
		c.ProductRepo,
		c.VariantRepo,
		c.UserRepo,
		c.QueueClient,
	)
	c.AddressService = service.NewAddressService(c.AddressRepo)
}
