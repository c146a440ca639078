package main

import (
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/fasthttp/router"
	"github.com/joho/godotenv"
	"github.com/valyala/fasthttp"

	"bank-dashboard/internal/handlers"
	"bank-dashboard/internal/ledger"
	"bank-dashboard/internal/middleware"
	"bank-dashboard/internal/services"
	"bank-dashboard/internal/utils"
	"bank-dashboard/internal/worker"
)

func main() {
	if err := godotenv.Load(); err != nil && os.Getenv("ENV") != "docker" {
		log.Println("No .env file, using environment variables")
	}

	ledgerURL := getEnv("LEDGER_URL", "http://127.0.0.1:8000/api")
	listenAddr := getEnv("LISTEN_ADDR", ":8080")
	fetchWorkers := getEnvInt("FETCH_WORKERS", 4)
	fetchQueue := getEnvInt("FETCH_QUEUE", 64)
	requestTimeout := time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 10000)) * time.Millisecond

	client := ledger.NewClient(ledgerURL, requestTimeout)
	utils.LogInfo("Server", "ledger at %s", ledgerURL)

	pool := worker.NewPool(fetchWorkers, fetchQueue)
	pool.Start()

	dashboardService := services.NewDashboardService(client, pool)
	accountService := services.NewAccountService(client, pool)

	dashboardHandler := handlers.NewDashboardHandler(dashboardService, client)
	accountHandler := handlers.NewAccountHandler(accountService)
	transferHandler := handlers.NewTransferHandler(accountService)

	r := router.New()
	r.GET("/health", dashboardHandler.Health)
	r.GET("/api/dashboard", dashboardHandler.Dashboard)
	r.GET("/api/accounts", accountHandler.List)
	r.POST("/api/accounts", accountHandler.Create)
	r.GET("/api/accounts/{number}", accountHandler.Get)
	r.POST("/api/accounts/{number}/deposit", accountHandler.Deposit)
	r.POST("/api/accounts/{number}/withdraw", accountHandler.Withdraw)
	r.POST("/api/accounts/{number}/close", accountHandler.Close)
	r.GET("/api/transactions", transferHandler.Feed)
	r.POST("/api/transfer", transferHandler.Transfer)

	server := &fasthttp.Server{
		Handler: middleware.RequestLog(r.Handler),
		Name:    "bank-dashboard",
	}

	go func() {
		utils.LogInfo("Server", "listening on %s", listenAddr)
		if err := server.ListenAndServe(listenAddr); err != nil {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	shutdownChannel := make(chan os.Signal, 1)
	signal.Notify(shutdownChannel, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChannel

	log.Println("Shutting down server...")
	if err := server.Shutdown(); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	if err := pool.Shutdown(10 * time.Second); err != nil {
		log.Printf("Worker pool shutdown: %v", err)
	}
	log.Println("Server stopped")
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
		log.Printf("Invalid %s=%q, using %d", key, value, fallback)
	}
	return fallback
}
