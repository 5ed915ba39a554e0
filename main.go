package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/erickweyunga/foodie-collective/internal/admin"
	"github.com/erickweyunga/foodie-collective/internal/db"
	"github.com/erickweyunga/foodie-collective/internal/menu"
	"github.com/erickweyunga/foodie-collective/internal/middleware"
	"github.com/erickweyunga/foodie-collective/internal/order"
	"github.com/erickweyunga/foodie-collective/internal/session"
	"github.com/erickweyunga/foodie-collective/internal/storage"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {

	// ───────────────────────── ENV ─────────────────────────
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	required := []string{
		"JWT_SECRET",
		"ADMIN_PASSPHRASE",
	}
	if os.Getenv("STORE") != "memory" {
		required = append(required, "DATABASE_URL")
	}

	for _, k := range required {
		if os.Getenv(k) == "" {
			log.Fatalf("❌ Missing env var: %s", k)
		}
	}

	// The "today" boundary is local midnight; TZ_LOCATION pins it when
	// the server does not run in the kitchen's timezone.
	loc := time.Local
	if name := os.Getenv("TZ_LOCATION"); name != "" {
		var err error
		loc, err = time.LoadLocation(name)
		if err != nil {
			log.Fatalf("❌ Bad TZ_LOCATION %q: %v", name, err)
		}
	}

	// ───────────────────────── STORE ─────────────────────────
	var repo order.Repository
	if os.Getenv("STORE") == "memory" {
		log.Println("⚠️  Using in-memory store, orders are lost on restart")
		repo = order.NewInMemoryRepository()
	} else {
		pgDB := db.ConnectPostgres()
		defer pgDB.Close()
		repo = order.NewPostgresRepository(pgDB)
	}

	// ───────────────────────── STORAGE ─────────────────────────
	var exportStorage order.Storage
	if storage.Configured() {
		r2Client, err := storage.NewR2Client(context.Background())
		if err != nil {
			log.Fatal("❌ R2 init failed:", err)
		}
		exportStorage = r2Client
	} else {
		log.Println("⚠️  R2 not configured, /admin/export disabled")
	}

	// ───────────────────────── GIN ─────────────────────────
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:5173"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// ───────────────────────── CORE ─────────────────────────
	orderService := order.NewService(repo, exportStorage, loc)
	sessions := session.NewStore()
	board := order.NewBoard(menu.DefaultPricing, loc)
	hub := order.NewHub()

	// Live feed pump: primes the board and keeps every viewer's board
	// in step with the store.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		if err := orderService.RunFeed(ctx, board, hub); err != nil && ctx.Err() == nil {
			log.Fatal("❌ Orders feed stopped:", err)
		}
	}()

	// ───────────────────────── HANDLERS ─────────────────────────
	orderHandler := order.NewHandler(orderService, sessions, board, hub)
	menuHandler := menu.NewHandler(func() time.Time { return time.Now().In(loc) })
	adminHandler := admin.NewHandler()

	// ───────────────────────── MENU ROUTES ─────────────────────────
	menus := r.Group("/menu")
	{
		menus.GET("", menuHandler.GetMenu)
		menus.GET("/special", menuHandler.GetSpecial)
	}

	// ───────────────────────── ORDER ROUTES ─────────────────────────
	orders := r.Group("/orders")
	{
		orders.GET("", orderHandler.GetBoard)
		orders.POST("", orderHandler.Submit)
		orders.POST("/reset", orderHandler.Reset)
		orders.GET("/mine", orderHandler.Mine)
		orders.GET("/stream", orderHandler.Stream)
	}

	r.GET("/session", orderHandler.GetSession)

	// ───────────────────────── ADMIN ROUTES ─────────────────────────
	r.POST("/admin/login", adminHandler.Login)

	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.RequireAdmin())
	{
		adminGroup.DELETE("/orders/:id", orderHandler.DeleteOrder)
		adminGroup.POST("/orders/purge", orderHandler.Purge)
		adminGroup.POST("/export", orderHandler.Export)
	}

	// ───────────────────────── HEALTH ─────────────────────────
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── START ─────────────────────────
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	log.Printf("🚀 API running at http://localhost:%s", port)
	r.Run(":" + port)
}
