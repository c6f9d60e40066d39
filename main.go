package main

import (
	"Gin_postgres_redis_library_system/app"
	"Gin_postgres_redis_library_system/config"
	"Gin_postgres_redis_library_system/controllers"
	"Gin_postgres_redis_library_system/routes"
	"context"
	"log"
	"os"
)

func main() {
	config.LoadEnv()

	application := app.MustNew()
	defer application.Close()

	r := application.Router

	// Health
	r.GET("/healthz", func(c *app.Ctx) { c.JSON(200, app.H{"ok": true}) })

	srv := controllers.GetSrv(application)
	app.BootstrapFirstAdmin(context.Background(), application.Config, srv.Repo)

	routes.RegisterRoutes(r, application)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3001"
	}
	log.Printf("listening on :%s", port)
	_ = r.Run(":" + port)
}
