package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"monstermaker/internal/auth"
	"monstermaker/internal/collection"
	"monstermaker/internal/config"
	"monstermaker/internal/laircard"
	"monstermaker/internal/like"
	"monstermaker/internal/middleware"
	"monstermaker/internal/monster"
	"monstermaker/internal/pdf"
	"monstermaker/internal/printview"
	"monstermaker/internal/upload"
	"monstermaker/internal/user"
	"monstermaker/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	gin.SetMode(cfg.GinMode)

	logger, err := newLogger(cfg.GinMode)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		logger.Fatal("create data dir", zap.Error(err))
	}

	db, err := database.Open(cfg.DBPath)
	if err != nil {
		logger.Fatal("open database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		logger.Fatal("migrate", zap.Error(err))
	}

	// Seed gallery monsters if the sample file is present
	seedPath := filepath.Join(filepath.Dir(cfg.DBPath), "monsters.json")
	if _, err := os.Stat(seedPath); err == nil {
		list, err := database.LoadMonstersFromJSON(seedPath)
		if err != nil {
			logger.Fatal("load seed file", zap.Error(err))
		}
		n, err := database.SeedMonsters(db, list)
		if err != nil {
			logger.Fatal("seed monsters", zap.Error(err))
		}
		logger.Info("seeded gallery monsters", zap.Int("count", n))
	}

	secret := []byte(cfg.JWTSecret)
	bridge := pdf.NewClient(cfg.PDFServiceURL)

	userH := &user.Handler{DB: db, JWTSecret: secret}
	monsterH := &monster.Handler{DB: db, UploadDir: cfg.UploadDir}
	collectionH := &collection.Handler{DB: db}
	likeH := &like.Handler{DB: db}
	lairH := &laircard.Handler{DB: db, UploadDir: cfg.UploadDir}
	uploadH := &upload.Handler{Dir: cfg.UploadDir, MaxUploadMB: cfg.MaxUploadMB}
	printH := &printview.Handler{DB: db}
	pdfH := &pdf.Handler{DB: db, Bridge: bridge, InternalBaseURL: cfg.InternalBaseURL, Logger: logger}

	r := gin.New()
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogger(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	r.Static("/uploads", cfg.UploadDir)
	r.Static("/static", "./web/static")

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "pdf_service": bridge.Healthy(c.Request.Context())})
	})

	// AUTH
	r.POST("/auth/register", userH.Register)
	r.POST("/auth/login", userH.Login)

	// PUBLIC MONSTERS
	r.GET("/monsters", monsterH.Search)

	// VIEWER-DEPENDENT (anonymous allowed, owner sees private)
	viewer := r.Group("/", auth.OptionalAuth(secret))
	viewer.GET("/monsters/:id", monsterH.Get)
	viewer.GET("/print/monsters/:id", printH.Show)
	viewer.GET("/monsters/:id/pdf", pdfH.Download)

	// PUBLIC SHARE VIEW
	r.GET("/shared/:token", collectionH.Shared)

	// PROTECTED
	authed := r.Group("/", auth.RequireAuth(secret))
	authed.GET("/me", userH.Me)
	authed.PATCH("/me", userH.UpdateMe)
	authed.GET("/me/monsters", monsterH.ListMine)

	authed.POST("/monsters", monsterH.Create)
	authed.PUT("/monsters/:id", monsterH.Update)
	authed.DELETE("/monsters/:id", monsterH.Delete)
	authed.POST("/monsters/:id/like", likeH.Toggle)

	authed.POST("/collections", collectionH.Create)
	authed.GET("/collections", collectionH.List)
	authed.GET("/collections/:id", collectionH.Get)
	authed.PUT("/collections/:id", collectionH.Update)
	authed.DELETE("/collections/:id", collectionH.Delete)
	authed.POST("/collections/:id/monsters", collectionH.AddMonster)
	authed.DELETE("/collections/:id/monsters/:monsterID", collectionH.RemoveMonster)
	authed.POST("/collections/:id/share", collectionH.GenerateShare)
	authed.DELETE("/collections/:id/share", collectionH.RevokeShare)

	authed.POST("/laircards", lairH.Create)
	authed.GET("/laircards", lairH.ListMine)
	authed.GET("/laircards/:id", lairH.Get)
	authed.PUT("/laircards/:id", lairH.Update)
	authed.DELETE("/laircards/:id", lairH.Delete)

	authed.POST("/uploads", uploadH.Upload)

	logger.Info("HTTP API listening", zap.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newLogger(mode string) (*zap.Logger, error) {
	if mode == "release" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
