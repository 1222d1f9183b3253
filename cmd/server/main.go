package main

import (
	"fmt"
	"log"
	"os"

	"github.com/Fatimata-sang/OC-S.F-Project10/internal/authz"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/config"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/handler"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/model"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/router"
	"github.com/Fatimata-sang/OC-S.F-Project10/internal/service"
	"github.com/Fatimata-sang/OC-S.F-Project10/pkg/logger"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	// Load config
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Server.Mode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer zlog.Sync()

	// Database
	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		zlog.Fatal("connect database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Contributor{},
		&model.Issue{},
		&model.Comment{},
	); err != nil {
		zlog.Fatal("auto migrate", zap.Error(err))
	}

	// Redis (optional): backs the logout token denylist.
	var tokenStore service.TokenStore
	if cfg.Redis.Addr != "" {
		tokenStore = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	denylist := service.NewTokenDenylist(tokenStore)

	// Authorization engine over the resource graph
	graph := authz.NewGraph(db)
	engine := authz.NewEngine(graph)

	// Services
	authService := service.NewAuthService(db, denylist, cfg.JWT.Secret, cfg.JWT.ExpireHours)
	userService := service.NewUserService(db)
	projectService := service.NewProjectService(db, engine)
	contributorService := service.NewContributorService(db, engine)
	issueService := service.NewIssueService(db, graph, engine)
	commentService := service.NewCommentService(db, engine, cfg.Server.BaseURL)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, zlog)
	userHandler := handler.NewUserHandler(userService, zlog)
	projectHandler := handler.NewProjectHandler(projectService, zlog)
	contributorHandler := handler.NewContributorHandler(contributorService, zlog)
	issueHandler := handler.NewIssueHandler(issueService, zlog)
	commentHandler := handler.NewCommentHandler(commentService, zlog)

	// Gin engine
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	router.Setup(r, router.Deps{
		DB:                 db,
		Logger:             zlog,
		JWTSecret:          cfg.JWT.Secret,
		Denylist:           denylist,
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		ProjectHandler:     projectHandler,
		ContributorHandler: contributorHandler,
		IssueHandler:       issueHandler,
		CommentHandler:     commentHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info("server starting", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zlog.Fatal("server run", zap.Error(err))
	}
}
