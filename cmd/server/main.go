package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/yogaflow/backend/internal/auth"
	"github.com/yogaflow/backend/internal/database"
	"github.com/yogaflow/backend/internal/gamification"
	"github.com/yogaflow/backend/internal/middleware"
)

func main() {
	// .env is optional; deployments set the environment directly
	godotenv.Load()

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize handlers
	authHandler := auth.NewHandler(db)
	store := gamification.NewStore(db)
	service := gamification.NewService(store)
	gamHandler := gamification.NewHandler(service)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Public routes
	api.HandleFunc("/auth/register", authHandler.Register).Methods("POST")
	api.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected routes
	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.AuthMiddleware)
	protected.HandleFunc("/auth/me", authHandler.GetCurrentUser).Methods("GET")

	// Gamification routes. The browser client addresses users by their opaque
	// id, so these take user_id in the path rather than from the auth token.
	g := api.PathPrefix("/gamification").Subrouter()
	g.HandleFunc("/progress/{user_id}", gamHandler.GetProgress).Methods("GET")
	g.HandleFunc("/session", gamHandler.SubmitSession).Methods("POST")
	g.HandleFunc("/sessions/{user_id}", gamHandler.GetRecentSessions).Methods("GET")
	g.HandleFunc("/achievements", gamHandler.GetAchievementsCatalog).Methods("GET")
	g.HandleFunc("/achievements/{user_id}", gamHandler.GetUserAchievements).Methods("GET")
	g.HandleFunc("/leaderboard", gamHandler.GetLeaderboard).Methods("GET")
	g.HandleFunc("/daily-challenge", gamHandler.GetDailyChallenge).Methods("GET")
	g.HandleFunc("/daily-challenge/complete", gamHandler.CompleteDailyChallenge).Methods("POST")
	g.HandleFunc("/stats/global", gamHandler.GetGlobalStats).Methods("GET")
	g.HandleFunc("/stats/{user_id}", gamHandler.GetUserStats).Methods("GET")
	g.HandleFunc("/user/create", gamHandler.CreateUser).Methods("POST")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	handler := c.Handler(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
