package main

import (
	"log"
	"net/http"
	"os"

	"github.com/closetrack/api-crm/internal/analytics"
	"github.com/closetrack/api-crm/internal/auth"
	"github.com/closetrack/api-crm/internal/deal"
	"github.com/closetrack/api-crm/internal/leadsource"
	"github.com/closetrack/api-crm/internal/note"
	"github.com/closetrack/api-crm/internal/pipelinestatus"
	"github.com/closetrack/api-crm/internal/user"
	"github.com/closetrack/api-crm/internal/utils/db"
	"github.com/closetrack/api-crm/internal/workspace"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	database, err := db.GetDB()
	if err != nil {
		log.Fatal("could not connect to database: ", err)
	}

	if err := migrate(database); err != nil {
		log.Fatal("migration failed: ", err)
	}

	dealRepo := deal.NewRepository(database)
	sourceRepo := leadsource.NewRepository(database)
	statusRepo := pipelinestatus.NewRepository(database)
	workspaceRepo := workspace.NewRepository(database)
	noteRepo := note.NewRepository(database)

	userHandler := user.NewHandler(database)
	wsHandler := workspace.NewHandler(workspaceRepo)
	dealHandler := deal.NewHandler(dealRepo)
	importHandler := deal.NewImportHandler(dealRepo, sourceRepo, statusRepo)
	sourceHandler := leadsource.NewHandler(sourceRepo)
	statusHandler := pipelinestatus.NewHandler(statusRepo)
	noteHandler := note.NewHandler(noteRepo)
	analyticsHandler := analytics.NewHandler(dealRepo)

	r := mux.NewRouter()

	r.HandleFunc("/auth/login", userHandler.Login).Methods("POST")
	r.HandleFunc("/auth/refresh", auth.RefreshHTTPHandler(database)).Methods("POST")
	r.HandleFunc("/auth/logout", auth.LogoutHTTPHandler(database)).Methods("POST")
	r.HandleFunc("/users", userHandler.Create).Methods("POST")

	api := r.NewRoute().Subrouter()
	api.Use(auth.Middleware)

	api.HandleFunc("/users", userHandler.List).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.Get).Methods("GET")
	api.HandleFunc("/users/{id}", userHandler.Update).Methods("PUT")
	api.Handle("/users/{id}", auth.RequireAdmin(http.HandlerFunc(userHandler.Delete))).Methods("DELETE")
	api.Handle("/users/{id}/reset-password", auth.RequireAdmin(http.HandlerFunc(userHandler.ResetPassword))).Methods("POST")

	api.HandleFunc("/workspaces", wsHandler.Create).Methods("POST")
	api.HandleFunc("/workspaces", wsHandler.List).Methods("GET")
	api.HandleFunc("/workspaces/{wid}", wsHandler.RequireMember(wsHandler.Get)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}", wsHandler.RequireWorkspaceAdmin(wsHandler.Update)).Methods("PUT")
	api.HandleFunc("/workspaces/{wid}/members", wsHandler.RequireWorkspaceAdmin(wsHandler.AddMember)).Methods("POST")
	api.HandleFunc("/workspaces/{wid}/members", wsHandler.RequireMember(wsHandler.ListMembers)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}/members/{uid}", wsHandler.RequireWorkspaceAdmin(wsHandler.RemoveMember)).Methods("DELETE")

	api.HandleFunc("/workspaces/{wid}/lead-sources", wsHandler.RequireWorkspaceAdmin(sourceHandler.Create)).Methods("POST")
	api.HandleFunc("/workspaces/{wid}/lead-sources", wsHandler.RequireMember(sourceHandler.List)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}/lead-sources/{id}", wsHandler.RequireMember(sourceHandler.Get)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}/lead-sources/{id}", wsHandler.RequireWorkspaceAdmin(sourceHandler.Update)).Methods("PUT")
	api.HandleFunc("/workspaces/{wid}/lead-sources/{id}", wsHandler.RequireWorkspaceAdmin(sourceHandler.Delete)).Methods("DELETE")

	api.HandleFunc("/workspaces/{wid}/pipeline-statuses", wsHandler.RequireWorkspaceAdmin(statusHandler.Create)).Methods("POST")
	api.HandleFunc("/workspaces/{wid}/pipeline-statuses", wsHandler.RequireMember(statusHandler.List)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}/pipeline-statuses/{id}", wsHandler.RequireWorkspaceAdmin(statusHandler.Update)).Methods("PUT")
	api.HandleFunc("/workspaces/{wid}/pipeline-statuses/{id}", wsHandler.RequireWorkspaceAdmin(statusHandler.Delete)).Methods("DELETE")

	api.HandleFunc("/workspaces/{wid}/deals", wsHandler.RequireMember(dealHandler.Create)).Methods("POST")
	api.HandleFunc("/workspaces/{wid}/deals", wsHandler.RequireMember(dealHandler.List)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}/deals/import", wsHandler.RequireMember(importHandler.Import)).Methods("POST")
	api.HandleFunc("/workspaces/{wid}/deals/import/example", wsHandler.RequireMember(importHandler.Example)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}/deals/import/{token}", wsHandler.RequireMember(importHandler.Run)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}/deals/{id}", wsHandler.RequireMember(dealHandler.Get)).Methods("GET")
	api.HandleFunc("/workspaces/{wid}/deals/{id}", wsHandler.RequireMember(dealHandler.Update)).Methods("PUT")
	api.HandleFunc("/workspaces/{wid}/deals/{id}", wsHandler.RequireMember(dealHandler.Delete)).Methods("DELETE")
	api.HandleFunc("/workspaces/{wid}/deals/{id}/commission", wsHandler.RequireMember(dealHandler.Commission)).Methods("GET")

	api.HandleFunc("/workspaces/{wid}/deals/{id}/notes", wsHandler.RequireMember(noteHandler.Create)).Methods("POST")
	api.HandleFunc("/workspaces/{wid}/deals/{id}/notes", wsHandler.RequireMember(noteHandler.ListByDeal)).Methods("GET")
	api.HandleFunc("/notes/{id}", noteHandler.Update).Methods("PUT")
	api.HandleFunc("/notes/{id}", noteHandler.Delete).Methods("DELETE")

	api.HandleFunc("/workspaces/{wid}/analytics/summary", wsHandler.RequireMember(analyticsHandler.Summary)).Methods("GET")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("listening on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, c.Handler(r)))
}

func migrate(database *gorm.DB) error {
	for _, fn := range []func(*gorm.DB) error{
		user.Migrate,
		auth.Migrate,
		workspace.Migrate,
		pipelinestatus.Migrate,
		leadsource.Migrate,
		deal.Migrate,
		note.Migrate,
	} {
		if err := fn(database); err != nil {
			return err
		}
	}
	return nil
}

func allowedOrigins() []string {
	if origin := os.Getenv("CORS_ORIGIN"); origin != "" {
		return []string{origin}
	}
	return []string{"http://localhost:3000"}
}
