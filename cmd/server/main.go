package main

import (
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/smart-assistant/backend/internal/challenge"
	"github.com/smart-assistant/backend/internal/config"
	"github.com/smart-assistant/backend/internal/database"
	"github.com/smart-assistant/backend/internal/document"
	"github.com/smart-assistant/backend/internal/llm"
	"github.com/smart-assistant/backend/internal/study"
)

func main() {
	cfg := config.Load()

	if cfg.LLMProvider != "mock" && cfg.APIKey() == "" {
		log.Fatalf("No API key configured for provider %q", cfg.LLMProvider)
	}

	// Initialize database
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The client owns its credential — no process-global configuration.
	client, err := llm.New(cfg.LLMProvider, cfg.APIKey(), cfg.LLMModel)
	if err != nil {
		log.Fatalf("Failed to initialize LLM client: %v", err)
	}
	modelName := llm.ResolveModel(cfg.LLMProvider, cfg.LLMModel)
	log.Printf("LLM adapter: provider=%s model=%s", cfg.LLMProvider, modelName)

	docStore := document.NewStore(db)

	challengeService := challenge.NewService(client, modelName, cfg.ExcerptLimit)
	challengeService.SetCallLog(docStore)

	studyService := study.NewService(client, modelName, cfg.ExcerptLimit)
	studyService.SetCallLog(docStore)

	docHandler := document.NewHandler(docStore)
	challengeHandler := challenge.NewHandler(challengeService, docStore, cfg.SessionKey)
	studyHandler := study.NewHandler(studyService, docStore)

	// Setup router
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()

	// Documents
	api.HandleFunc("/documents", docHandler.Register).Methods("POST")
	api.HandleFunc("/documents", docHandler.List).Methods("GET")
	api.HandleFunc("/documents/{id}", docHandler.Get).Methods("GET")
	api.HandleFunc("/documents/{id}/attempts", docHandler.ListAttempts).Methods("GET")

	// Study
	api.HandleFunc("/documents/{id}/summary", studyHandler.Summarize).Methods("POST")
	api.HandleFunc("/documents/{id}/qa", studyHandler.Ask).Methods("POST")

	// Challenge
	api.HandleFunc("/documents/{id}/challenge/objective", challengeHandler.GenerateObjective).Methods("POST")
	api.HandleFunc("/documents/{id}/challenge/objective/score", challengeHandler.ScoreObjective).Methods("POST")
	api.HandleFunc("/documents/{id}/challenge/subjective", challengeHandler.GenerateSubjective).Methods("POST")
	api.HandleFunc("/documents/{id}/challenge/subjective/grade", challengeHandler.GradeSubjective).Methods("POST")

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

	log.Printf("Server starting on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
