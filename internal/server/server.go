package server

import (
	"log"
	"strings"
	"time"

	"github.com/Skb111/Community-API-Backend-sub001/internal/cache"
	"github.com/Skb111/Community-API-Backend-sub001/internal/config"
	"github.com/Skb111/Community-API-Backend-sub001/internal/handler"
	"github.com/Skb111/Community-API-Backend-sub001/internal/middleware"
	"github.com/Skb111/Community-API-Backend-sub001/internal/model"
	"github.com/Skb111/Community-API-Backend-sub001/internal/repository"
	"github.com/Skb111/Community-API-Backend-sub001/internal/service"
	"github.com/Skb111/Community-API-Backend-sub001/pkg/storage"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/meilisearch/meilisearch-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Server struct {
	engine      *gin.Engine
	db          *gorm.DB
	redisClient *redis.Client
}

func NewServer(cfg *config.Config, db *gorm.DB) (*Server, error) {
	userRepo := repository.NewUserRepository(db)
	skillRepo := repository.NewSkillRepository(db)
	techRepo := repository.NewTechRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	blogRepo := repository.NewBlogRepository(db)
	learningRepo := repository.NewLearningRepository(db)

	var imageStorage storage.ImageStorage
	if cfg.CloudinaryCloudName != "" {
		var err error
		imageStorage, err = storage.NewCloudinaryStorage(cfg.CloudinaryCloudName, cfg.CloudinaryUploadFolder)
		if err != nil {
			return nil, err
		}
	} else {
		log.Println("CLOUDINARY_CLOUD_NAME not set, image uploads disabled")
	}

	var meiliClient meilisearch.ServiceManager
	if cfg.MeiliMasterKey != "" {
		meiliClient = meilisearch.New(cfg.MeiliSearchHost, meilisearch.WithAPIKey(cfg.MeiliMasterKey))
	} else {
		log.Println("MEILI_MASTER_KEY not set, search indexing disabled")
	}
	searchSvc := service.NewSearchService(meiliClient)

	// Cache degrades to an in-process store when redis is not configured,
	// so a bare development setup still runs.
	var redisClient *redis.Client
	var cacheStore cache.Store
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		redisClient = redis.NewClient(opts)
		cacheStore = cache.NewRedisStore(redisClient)
	} else {
		log.Println("REDIS_URL not set, using in-memory cache")
		cacheStore = cache.NewMemoryStore()
	}

	ttl := cache.TTLPolicy{
		Item:  cfg.CacheItemTTL,
		List:  cfg.CacheListTTL,
		Count: cfg.CacheCountTTL,
		Name:  cfg.CacheNameTTL,
	}
	projectCache := cache.NewProjectCache(cacheStore, ttl)
	techCache := cache.NewTechCache(cacheStore, ttl)
	skillCache := cache.NewSkillCache(cacheStore, ttl)

	authSvc := service.NewAuthService(userRepo, imageStorage, cfg.JWTSecret, cfg.JWTTTL)
	userSvc := service.NewUserService(userRepo, skillRepo, imageStorage)
	techSvc := service.NewTechService(techRepo, userRepo, techCache, projectCache, imageStorage)
	skillSvc := service.NewSkillService(skillRepo, userRepo, skillCache)
	projectSvc := service.NewProjectService(projectRepo, techRepo, userRepo, projectCache, imageStorage, searchSvc)
	blogSvc := service.NewBlogService(blogRepo, userRepo, imageStorage, searchSvc)
	learningSvc := service.NewLearningService(learningRepo, techRepo, userRepo, imageStorage)

	authHandler := handler.NewAuthHandler(authSvc)
	userHandler := handler.NewUserHandler(userSvc)
	techHandler := handler.NewTechHandler(techSvc)
	skillHandler := handler.NewSkillHandler(skillSvc)
	projectHandler := handler.NewProjectHandler(projectSvc)
	blogHandler := handler.NewBlogHandler(blogSvc)
	learningHandler := handler.NewLearningHandler(learningSvc)
	searchHandler := handler.NewSearchHandler(searchSvc)

	router := gin.New()
	setupCORS(router, cfg.AllowedOrigins)
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
	}

	// Public reads
	api.GET("/users/:id", userHandler.GetByID)
	api.GET("/projects", projectHandler.GetAll)
	api.GET("/projects/:id", projectHandler.GetByID)
	api.GET("/techs", techHandler.GetAll)
	api.GET("/techs/:id", techHandler.GetByID)
	api.GET("/skills", skillHandler.GetAll)
	api.GET("/skills/:id", skillHandler.GetByID)
	api.GET("/blogs", blogHandler.GetAll)
	api.GET("/blogs/:id", blogHandler.GetByID)
	api.GET("/learnings", learningHandler.GetAll)
	api.GET("/learnings/:id", learningHandler.GetByID)

	// Writes require a valid token. The services repeat the role and
	// ownership checks, loading the actor's current role from the database.
	protected := api.Group("")
	protected.Use(authMiddleware.RequireAuth())
	{
		protected.GET("/users/me", userHandler.GetMe)
		protected.PUT("/users/me", userHandler.UpdateMe)
		protected.PUT("/users/me/skills", userHandler.ReplaceMySkills)

		protected.POST("/projects", projectHandler.Create)
		protected.PUT("/projects/:id", projectHandler.Update)
		protected.DELETE("/projects/:id", projectHandler.Delete)
		protected.PUT("/projects/:id/techs", projectHandler.ReplaceTechs)
		protected.POST("/projects/:id/techs", projectHandler.AddTechs)
		protected.DELETE("/projects/:id/techs/:techId", projectHandler.RemoveTech)
		protected.PUT("/projects/:id/contributors", projectHandler.ReplaceContributors)
		protected.POST("/projects/:id/contributors", projectHandler.AddContributors)
		protected.DELETE("/projects/:id/contributors/:userId", projectHandler.RemoveContributor)

		protected.POST("/skills", skillHandler.Create)
		protected.PUT("/skills/:id", skillHandler.Update)
		protected.DELETE("/skills/:id", skillHandler.Delete)

		protected.POST("/blogs", blogHandler.Create)
		protected.PUT("/blogs/:id", blogHandler.Update)
		protected.DELETE("/blogs/:id", blogHandler.Delete)

		protected.POST("/learnings/:id/learners/me", learningHandler.Join)
		protected.DELETE("/learnings/:id/learners/me", learningHandler.Leave)

		protected.GET("/search/token", searchHandler.Token)
	}

	adminOnly := protected.Group("")
	adminOnly.Use(authMiddleware.RequireRole(model.RoleAdmin))
	{
		adminOnly.GET("/users", userHandler.GetAll)
		adminOnly.DELETE("/users/:id", userHandler.Delete)

		adminOnly.POST("/techs", techHandler.Create)
		adminOnly.PUT("/techs/:id", techHandler.Update)
		adminOnly.DELETE("/techs/:id", techHandler.Delete)

		adminOnly.POST("/learnings", learningHandler.Create)
		adminOnly.PUT("/learnings/:id", learningHandler.Update)
		adminOnly.DELETE("/learnings/:id", learningHandler.Delete)
		adminOnly.PUT("/learnings/:id/techs", learningHandler.ReplaceTechs)
	}

	rootOnly := protected.Group("")
	rootOnly.Use(authMiddleware.RequireRole(model.RoleRoot))
	rootOnly.PUT("/users/:id/role", userHandler.UpdateRole)

	return &Server{
		engine:      router,
		db:          db,
		redisClient: redisClient,
	}, nil
}

func (s *Server) Run(addr string) error {
	return s.engine.Run(addr)
}

func setupCORS(router *gin.Engine, allowedOrigins string) {
	var origins []string
	if allowedOrigins != "" {
		origins = strings.Split(allowedOrigins, ",")
	} else {
		origins = []string{"http://localhost:3000"}
	}

	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}
