package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cratefm/cache"
	"cratefm/config"
	"cratefm/core/auth"
	"cratefm/core/catalog"
	"cratefm/db"
	"cratefm/logger"
	"cratefm/model"
	"cratefm/repository"
	"cratefm/storage"

	"github.com/gorilla/mux"
)

// Start initializes all collaborators and runs the HTTP server until a
// shutdown signal arrives.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})

	// 初始化 MinIO 客户端
	if err := storage.InitMinio(cfg); err != nil {
		logger.Fatal("Failed to initialize MinIO", logger.ErrorField(err))
	}

	// Connect to the database
	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database", logger.ErrorField(err))
	}
	defer db.CloseDB()

	// GORM connection drives schema migration only.
	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("Failed to connect to database with GORM", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.AutoMigrateModels(&model.Album{}, &model.Song{}); err != nil {
		logger.Fatal("Failed to migrate database schema", logger.ErrorField(err))
	}

	// The cache is optional: when Redis is unreachable the service still
	// serves mutations and simply skips evictions.
	if err := cache.ConnectRedis(cfg); err != nil {
		logger.Warn("Redis unavailable, cache evictions will be skipped", logger.ErrorField(err))
	} else {
		logger.Info("Successfully connected to Redis")
		defer cache.CloseRedis()
	}

	albumRepo := repository.NewMySQLAlbumRepository(db.DB)
	songRepo := repository.NewMySQLSongRepository(db.DB)
	uploader := storage.NewMinioUploader(storage.GetMinioClient(), cfg)
	invalidator := cache.NewInvalidator(cache.RedisClient)
	catalogSvc := catalog.NewService(albumRepo, songRepo, uploader, invalidator)
	identityClient := auth.NewClient(cfg.UserServiceURL)

	apiHandler := NewAPIHandler(catalogSvc, identityClient)

	router := NewRouter(apiHandler)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Admin service is running", logger.String("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed", logger.ErrorField(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", logger.ErrorField(err))
	}
	logger.Info("Server exited")
}

// NewRouter mounts the admin routes under /api/v1 with CORS and auth
// middleware applied.
func NewRouter(h *APIHandler) *mux.Router {
	router := mux.NewRouter()

	// CORS 中间件
	router.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS, HEAD")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, token")
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			next.ServeHTTP(w, r)
		})
	})

	api := router.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/album/new", h.AuthMiddleware(h.CreateAlbumHandler)).Methods(http.MethodPost)
	api.HandleFunc("/album/{id}", h.AuthMiddleware(h.DeleteAlbumHandler)).Methods(http.MethodDelete)
	api.HandleFunc("/song/new", h.AuthMiddleware(h.CreateSongHandler)).Methods(http.MethodPost)
	api.HandleFunc("/song/{id}", h.AuthMiddleware(h.SetSongThumbnailHandler)).Methods(http.MethodPost)
	api.HandleFunc("/song/{id}", h.AuthMiddleware(h.DeleteSongHandler)).Methods(http.MethodDelete)

	return router
}
