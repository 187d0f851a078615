package main

import (
	"context"
	"log"
	"os"

	"github.com/example/task-tracker/config"
	"github.com/example/task-tracker/modules/activity"
	"github.com/example/task-tracker/modules/api"
	"github.com/example/task-tracker/modules/task"
	gfshutdown "github.com/gelmium/graceful-shutdown"
	"github.com/go-monolith/mono"
)

func main() {
	log.Println("=== Task Tracker - Fiber + GORM ===")

	cfg := config.Load()

	logLevel := mono.WithLogLevel(mono.LogLevelInfo)
	if cfg.LogLevel == "error" {
		logLevel = mono.WithLogLevel(mono.LogLevelError)
	}

	// Create mono application
	app, err := mono.NewMonoApplication(
		mono.WithShutdownTimeout(cfg.ShutdownTimeout),
		logLevel,
		mono.WithLogFormat(mono.LogFormatText),
	)
	if err != nil {
		log.Fatalf("Failed to create application: %v", err)
	}

	logger := app.Logger()

	activityModule := activity.NewModule(logger)
	taskModule := task.NewModule(cfg, logger)
	apiModule := api.NewModule(cfg, taskModule, activityModule, logger)

	// Order: the event consumer first, then the store, then the HTTP
	// adapter which needs the started task service.
	app.Register(activityModule)
	app.Register(taskModule)
	app.Register(apiModule)

	if err := app.Start(context.Background()); err != nil {
		log.Fatalf("Failed to start application: %v", err)
	}

	printStartupInfo(cfg)

	// Graceful shutdown
	wait := gfshutdown.GracefulShutdown(
		context.Background(),
		cfg.ShutdownTimeout,
		map[string]gfshutdown.Operation{
			"mono-app": func(ctx context.Context) error {
				log.Println("Graceful shutdown initiated...")
				return app.Stop(ctx)
			},
		},
	)

	exitCode := <-wait
	log.Printf("Application exited with code: %d", exitCode)
	os.Exit(exitCode)
}

func printStartupInfo(cfg config.Config) {
	log.Println("")
	log.Println("Application started successfully!")
	log.Println("")
	log.Printf("Storage: %s", cfg.DBDriver)
	if cfg.DBDriver == config.DriverSQLite {
		log.Printf("  - Database file: %s", cfg.DBPath)
	}
	log.Println("")
	log.Printf("REST API Endpoints (http://localhost:%d):", cfg.HTTPPort)
	log.Println("  GET    /api/task                - List tasks, newest first")
	log.Println("  GET    /api/task/:id            - Get a task by ID")
	log.Println("  POST   /api/task                - Create a task")
	log.Println("  PUT    /api/task/conclude/:id   - Conclude a task")
	log.Println("  PUT    /api/task/edit/:id       - Edit title and description")
	log.Println("  DELETE /api/task/:id            - Delete a task")
	log.Println("  GET    /api/activity            - Recent task activity")
	log.Println("  GET    /health                  - Health check")
	log.Println("")
	log.Println("Request-reply services: services.task.{list,get,create,conclude,edit,delete}, services.activity.recent")
	log.Println("")
	log.Println("Press Ctrl+C to shutdown gracefully")
}
