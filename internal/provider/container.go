package provider

import (
	"github.com/coursehub-next/internal/cache"
	"github.com/coursehub-next/internal/config"
	"github.com/coursehub-next/internal/logger"
	"github.com/coursehub-next/internal/models"
	"github.com/coursehub-next/internal/queue"
	"github.com/coursehub-next/internal/repository"
	"github.com/coursehub-next/internal/service"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	QueueClient *queue.Client

	// Repositories
	UserRepo       repository.UserRepository
	CourseRepo     repository.CourseRepository
	LessonRepo     repository.LessonRepository
	OrderRepo      repository.OrderRepository
	EnrollmentRepo repository.EnrollmentRepository
	ReviewRepo     repository.CourseReviewRepository
	ComplaintRepo  repository.ComplaintRepository

	// Services
	UserAuthService     *service.UserAuthService
	EmailService        *service.EmailService
	CourseService       *service.CourseService
	LessonService       *service.LessonService
	OrderService        *service.OrderService
	EnrollmentService   *service.EnrollmentService
	PaymentService      *service.PaymentService
	CourseReviewService *service.CourseReviewService
	ComplaintService    *service.ComplaintService
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

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	db := models.DB
	c.UserRepo = repository.NewUserRepository(db)
	c.CourseRepo = repository.NewCourseRepository(db)
	c.LessonRepo = repository.NewLessonRepository(db)
	c.OrderRepo = repository.NewOrderRepository(db)
	c.EnrollmentRepo = repository.NewEnrollmentRepository(db)
	c.ReviewRepo = repository.NewCourseReviewRepository(db)
	c.ComplaintRepo = repository.NewComplaintRepository(db)
}

func (c *Container) initServices() {
	c.EmailService = service.NewEmailService(&c.Config.Email)
	c.UserAuthService = service.NewUserAuthService(c.UserRepo, c.Config.JWT.SecretKey, c.Config.JWT.ExpireHours)
	c.CourseService = service.NewCourseService(c.CourseRepo, c.ReviewRepo)
	c.LessonService = service.NewLessonService(c.CourseRepo, c.LessonRepo, c.EnrollmentRepo)
	c.OrderService = service.NewOrderService(c.OrderRepo)
	c.EnrollmentService = service.NewEnrollmentService(c.EnrollmentRepo)
	c.CourseReviewService = service.NewCourseReviewService(c.ReviewRepo, c.CourseRepo, c.EnrollmentRepo)
	c.ComplaintService = service.NewComplaintService(c.ComplaintRepo, c.CourseRepo, c.EnrollmentRepo)

	var enqueuer queue.Enqueuer
	if c.QueueClient != nil {
		enqueuer = c.QueueClient
	}
	c.PaymentService = service.NewPaymentService(c.CourseRepo, c.UserRepo, c.OrderRepo, c.EnrollmentRepo, enqueuer)
}
