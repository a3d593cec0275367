package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/prompts"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/server"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/services"
	"github.com/ABHISHEKSUNDARAMOORTHI/Data-Lineage-Mapper/tools"
)

func main() {
	envFile := flag.String("env", ".env", "Path to environment file")
	addr := flag.String("addr", ":8080", "Address for the web UI to listen on")
	enableMCP := flag.Bool("mcp", false, "Serve the lineage tools over MCP stdio instead of the web UI")
	flag.Parse()

	if err := godotenv.Load(*envFile); err != nil {
		log.Printf("Warning: Error loading env file %s: %v\n", *envFile, err)
	}

	// Missing or placeholder credential is fatal before any feature is usable.
	if err := services.CheckCredentials(); err != nil {
		log.Fatalf("🚨 %v", err)
	}

	if *enableMCP || os.Getenv("ENABLE_MCP") == "true" {
		mcpServer := mcpserver.NewMCPServer(
			"data-lineage-mapper",
			"1.0.0",
			mcpserver.WithLogging(),
			mcpserver.WithPromptCapabilities(true),
		)

		tools.RegisterLineageTools(mcpServer)
		prompts.RegisterLineagePrompts(mcpServer)

		if err := mcpserver.ServeStdio(mcpServer); err != nil {
			panic(fmt.Sprintf("Server error: %v", err))
		}
		return
	}

	webServer, err := server.New()
	if err != nil {
		log.Fatalf("Failed to create web server: %v", err)
	}

	httpServer := &http.Server{
		Addr:    *addr,
		Handler: webServer.Router(),
	}

	go func() {
		log.Printf("Starting Data Lineage Mapper on %s", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start web server: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log.Printf("Received signal %v, shutting down...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	log.Println("Server shutdown complete")
}
