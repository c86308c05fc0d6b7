package api

import (
	"Blog_Manager/internal/models"
	"Blog_Manager/internal/task"
	"Blog_Manager/pkg/content"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// RegisterRoutes 注册所有API路由
func RegisterRoutes(tm *task.Manager, svc *content.Service, site *models.SiteConfig) *chi.Mux {
	r := chi.NewRouter()

	// --- 中间件 (Middleware) ---
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// 配置CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "ETag"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	handlers := NewAPIHandlers(tm, svc, site)

	// --- API路由 ---
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/site", handlers.HandleGetSite)
		r.Get("/categories", handlers.HandleListCategories)
		r.Get("/categories/{categoryID}/items", handlers.HandleGetCategoryItems)
		r.Post("/categories/{categoryID}/reload", handlers.HandleReloadCategory)
		r.Post("/tasks/preload", handlers.HandleStartPreloadTask)
		r.Get("/tasks/{taskId}", handlers.HandleGetTaskStatus)
		r.Get("/config", handlers.HandleGetConfig)
		r.Put("/config", handlers.HandleUpdateConfig)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	return r
}
