package httpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/frankiefreesbie/glucko-server/internal/auth"
	"github.com/frankiefreesbie/glucko-server/internal/blob"
	"github.com/frankiefreesbie/glucko-server/internal/config"
	"github.com/frankiefreesbie/glucko-server/internal/grocery"
	"github.com/frankiefreesbie/glucko-server/internal/mealplans"
	"github.com/frankiefreesbie/glucko-server/internal/meallog"
	"github.com/frankiefreesbie/glucko-server/internal/recipes"
	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/frankiefreesbie/glucko-server/internal/storage/memory"
	"github.com/frankiefreesbie/glucko-server/internal/storage/postgres"
)

// Server представляет HTTP сервер
type Server struct {
	config         *config.Config
	mux            *http.ServeMux
	storage        storage.Storage
	authMiddleware *auth.Middleware
}

// New создаёт новый HTTP сервер
func New(cfg *config.Config) *Server {
	s := &Server{
		config: cfg,
		mux:    http.NewServeMux(),
	}

	// Инициализируем storage
	s.initStorage()

	// Регистрируем маршруты
	s.routes()
	return s
}

// initStorage инициализирует storage (Memory или Postgres)
func (s *Server) initStorage() {
	if s.config.DatabaseURL == "" {
		log.Println("Используется in-memory storage")
		s.storage = memory.New()
	} else {
		log.Println("Подключение к PostgreSQL...")
		ctx := context.Background()
		pgStorage, err := postgres.New(ctx, s.config.DatabaseURL)
		if err != nil {
			log.Printf("Ошибка подключения к PostgreSQL: %v", err)
			log.Println("Fallback на in-memory storage")
			s.storage = memory.New()
		} else {
			log.Println("PostgreSQL подключен успешно")
			s.storage = pgStorage
		}
	}
}

// routes регистрирует маршруты
func (s *Server) routes() {
	// Health check (no auth required)
	s.mux.HandleFunc("/healthz", s.handleHealthz)

	// Auth API (no auth required)
	authService := auth.NewService(s.config)
	authHandler := auth.NewHandlers(authService)
	s.authMiddleware = auth.NewMiddleware(s.config, authService)

	// POST /v1/auth/dev - local dev token
	s.mux.HandleFunc("POST /v1/auth/dev", authHandler.HandleDevAuth)

	// Recipes API
	recipesService := recipes.NewService(s.storage)
	recipesHandler := recipes.NewHandler(recipesService)

	// GET /v1/recipes - list recipes (?favorites=1 for favorites only)
	s.mux.HandleFunc("GET /v1/recipes", recipesHandler.HandleList)

	// POST /v1/recipes - create recipe
	s.mux.HandleFunc("POST /v1/recipes", recipesHandler.HandleCreate)

	// GET /v1/recipes/{id} - recipe detail with ingredients
	s.mux.HandleFunc("GET /v1/recipes/{id}", recipesHandler.HandleGet)

	// PUT /v1/recipes/{id}/favorite - toggle favorite
	s.mux.HandleFunc("PUT /v1/recipes/{id}/favorite", recipesHandler.HandleSetFavorite)

	// Meal Plans API
	mealPlansService := mealplans.NewService(s.storage, s.storage, mealplans.NewGenerator(nil))
	mealPlansHandler := mealplans.NewHandler(mealPlansService)

	// GET /v1/plan - plan for a date
	s.mux.HandleFunc("GET /v1/plan", mealPlansHandler.HandleGetPlan)

	// POST /v1/plan/generate-week - fill the week of the given date
	s.mux.HandleFunc("POST /v1/plan/generate-week", mealPlansHandler.HandleGenerateWeek)

	// PUT /v1/plan/{date}/{slot} - assign a recipe to a slot
	s.mux.HandleFunc("PUT /v1/plan/{date}/{slot}", mealPlansHandler.HandleSetMeal)

	// DELETE /v1/plan/{date}/{slot} - clear a slot
	s.mux.HandleFunc("DELETE /v1/plan/{date}/{slot}", mealPlansHandler.HandleRemoveMeal)

	// DELETE /v1/plan/{date} - clear a day
	s.mux.HandleFunc("DELETE /v1/plan/{date}", mealPlansHandler.HandleClearDay)

	// POST /v1/plan/{date}/generate - fill a day with random recipes
	s.mux.HandleFunc("POST /v1/plan/{date}/generate", mealPlansHandler.HandleGenerateDay)

	// POST /v1/plan/{date}/{slot}/swap - swap a slot's recipe
	s.mux.HandleFunc("POST /v1/plan/{date}/{slot}/swap", mealPlansHandler.HandleSwapMeal)

	// Grocery API
	blobStore, blobMode, err := blob.NewBlobStore(s.config.Blob, log.Default())
	if err != nil {
		log.Fatalf("blob store initialization failed: %v", err)
	}
	log.Printf("Grocery exports blob mode: %s", blobMode)

	groceryBuilder := grocery.NewBuilder(mealPlansService, recipesService)
	groceryService := grocery.NewService(groceryBuilder, s.storage, s.storage, blobStore, s.config.Blob.S3.PresignTTLSeconds)
	groceryHandler := grocery.NewHandler(groceryService)

	// GET /v1/grocery - list for a date
	s.mux.HandleFunc("GET /v1/grocery", groceryHandler.HandleList)

	// GET /v1/grocery/week - list for 7 days
	s.mux.HandleFunc("GET /v1/grocery/week", groceryHandler.HandleListWeek)

	// PUT /v1/grocery/completion - toggle "bought" mark
	s.mux.HandleFunc("PUT /v1/grocery/completion", groceryHandler.HandleSetCompletion)

	// GET /v1/grocery/share - share message
	s.mux.HandleFunc("GET /v1/grocery/share", groceryHandler.HandleShare)

	// POST /v1/grocery/exports - create txt/pdf export
	s.mux.HandleFunc("POST /v1/grocery/exports", groceryHandler.HandleCreateExport)

	// GET /v1/grocery/exports - list exports
	s.mux.HandleFunc("GET /v1/grocery/exports", groceryHandler.HandleListExports)

	// GET /v1/grocery/exports/{id} - export metadata
	s.mux.HandleFunc("GET /v1/grocery/exports/{id}", groceryHandler.HandleGetExport)

	// GET /v1/grocery/exports/{id}/download - download export
	s.mux.HandleFunc("GET /v1/grocery/exports/{id}/download", groceryHandler.HandleDownloadExport)

	// Meal Log API
	mealLogService := meallog.NewService(s.storage, s.storage)
	mealLogHandler := meallog.NewHandler(mealLogService)

	// POST /v1/meallog - log an eaten meal
	s.mux.HandleFunc("POST /v1/meallog", mealLogHandler.HandleLog)

	// GET /v1/meallog - list journal entries
	s.mux.HandleFunc("GET /v1/meallog", mealLogHandler.HandleList)

	// GET /v1/meallog/points - lifetime points total
	s.mux.HandleFunc("GET /v1/meallog/points", mealLogHandler.HandlePoints)
}

// handleHealthz возвращает статус сервера
func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status": "ok",
	})
}

// Start запускает HTTP сервер
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	// Build middleware chain (outermost first): CORS → Rate Limit → Auth → Router
	var handler http.Handler = s.mux
	if s.authMiddleware != nil && s.config.AuthMode != "none" {
		handler = s.authMiddleware.RequireAuth(handler)
	}
	handler = RateLimitMiddleware(s.config, handler)
	handler = CORSMiddleware(s.config, handler)

	log.Printf("Сервер запущен на http://localhost%s\n", addr)
	log.Printf("Health check: http://localhost%s/healthz\n", addr)
	log.Printf("Recipes API: http://localhost%s/v1/recipes\n", addr)

	return http.ListenAndServe(addr, handler)
}

// Close закрывает storage и освобождает ресурсы
func (s *Server) Close() error {
	if s.storage != nil {
		return s.storage.Close()
	}
	return nil
}
