package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/docuvault/docuvault/handlers"
	"github.com/docuvault/docuvault/internal/access"
	"github.com/docuvault/docuvault/internal/auth"
	"github.com/docuvault/docuvault/internal/config"
	"github.com/docuvault/docuvault/internal/database"
	docrepo "github.com/docuvault/docuvault/internal/document/repository"
	"github.com/docuvault/docuvault/internal/document/service"
	"github.com/docuvault/docuvault/internal/models"
	"github.com/docuvault/docuvault/internal/roles"
	"github.com/docuvault/docuvault/internal/users"
	"github.com/docuvault/docuvault/pkg/logger"
	"github.com/docuvault/docuvault/pkg/metrics"
	"github.com/docuvault/docuvault/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// logging can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal
	logger.Init(os.Getenv("LOG_LEVEL"))

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: mongo=%v redis=%v privileged_role=%s", cfg.MongoDB.URI != "", cfg.Redis.Host != "", cfg.Access.PrivilegedRole)

	r := gin.New()

	// Lightweight CORS middleware for dev/test: set common headers and respond to OPTIONS.
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization, x-access-token")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Content-Length")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	})

	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter and token blacklist can use it
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Redis.Host + ":" + cfg.Redis.Port, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// The limiter is attached per group below, after Auth on the protected
	// group, so authenticated traffic is keyed by principal rather than IP.
	var limiter gin.HandlerFunc
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			limiter = middleware.RedisRateLimit(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win)
		} else {
			limiter = middleware.RateLimit(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		}
	}

	// Stores: MongoDB when configured and reachable, in-memory otherwise
	var docRepo docrepo.Repository
	var roleRepo roles.Repository
	var userRepo users.Repository
	var mongoClient *mongo.Client
	ctx := context.Background()
	if cfg.MongoDB.URI != "" {
		mongoClient, err = database.ConnectMongoWithRetry(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout, 5)
		if err != nil {
			logger.Warnf("could not connect to MongoDB: %v — using in-memory stores", err)
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
			db := mongoClient.Database(cfg.MongoDB.Database)
			docRepo = docrepo.NewMongoRepo(db.Collection("documents"))
			roleRepo = roles.NewMongoRepository(db.Collection("roles"))
			userRepo = users.NewMongoRepository(db.Collection("users"))
		}
	}
	if docRepo == nil {
		logger.Warnf("MongoDB not configured; documents will not survive restarts")
		docRepo = docrepo.NewMemoryRepo()
		roleRepo = roles.NewMemoryRepository()
		userRepo = users.NewMemoryRepository()
	}

	// seed the privileged role so the RoleAuth gate has something to admit
	if role, rerr := roleRepo.GetByTitle(ctx, cfg.Access.PrivilegedRole); rerr == nil && role == nil {
		if _, cerr := roleRepo.Create(ctx, &models.Role{Title: cfg.Access.PrivilegedRole}); cerr != nil {
			logger.Warnf("failed to seed privileged role: %v", cerr)
		} else {
			logger.Infof("seeded privileged role %q", cfg.Access.PrivilegedRole)
		}
	}

	policy := access.NewPolicy(cfg.Access.PrivilegedRole)
	docSvc := service.New(docRepo, roleRepo, userRepo, policy)
	userSvc := users.NewService(userRepo, roleRepo)
	blacklist := auth.NewBlacklist(redisClient)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["storage"] = true
		if cfg.MongoDB.URI != "" {
			if mongoClient == nil || mongoClient.Ping(c.Request.Context(), nil) != nil {
				deps["storage"] = false
				ready = false
			}
		}
		deps["redis"] = true
		if cfg.Redis.Host != "" && (cfg.RateLimit.UseRedis || redisClient != nil) {
			deps["redis"] = redisClient != nil && redisClient.Ping(c.Request.Context()).Err() == nil
			if !deps["redis"] {
				ready = false
			}
		}

		status := http.StatusOK
		state := "ready"
		if !ready {
			status = http.StatusServiceUnavailable
			state = "not_ready"
		}
		c.JSON(status, gin.H{"status": state, "deps": deps, "uptime": time.Since(startTime).String()})
	})

	authMW := middleware.Auth(cfg, blacklist)
	public := r.Group("/api")
	api := r.Group("/api", authMW)
	if limiter != nil {
		public.Use(limiter) // keyed per IP, no principal yet
		api.Use(limiter)    // keyed per authenticated principal
	}

	handlers.NewDocumentHandler(docSvc).Register(api, middleware.RoleAccess(cfg.Access.PrivilegedRole))
	handlers.NewRoleHandler(roleRepo).Register(api, middleware.RoleAuth(roleRepo, cfg.Access.PrivilegedRole))
	handlers.NewUserHandler(cfg, userSvc, blacklist).Register(public, api)
	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Starting document service on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
