package routes

import (
	"time"

	"Gin_postgres_redis_library_system/app"
	"Gin_postgres_redis_library_system/controllers"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.Engine, a *app.App) {
	s := controllers.GetSrv(a)
	authCtl := controllers.NewAuthController(s)
	bookCtl := controllers.NewBookController(s)
	adminBookCtl := controllers.NewAdminBookController(s)
	adminUserCtl := controllers.NewAdminUserController(s)
	adminBorrowCtl := controllers.NewAdminBorrowController(s)

	authMW := app.AuthRequired(s.AppSess, s.Repo)
	adminMW := app.AdminOnly()
	seenMW := app.TouchLastActivity(s.Repo, a.RDB, 5*time.Minute)
	limitMW := app.RateLimit(a.RDB, a.Config.AuthRateLimit, a.Config.AuthRateWindow)

	// ------------------------------
	// Auth
	// ------------------------------
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", limitMW, authCtl.Signup)
		auth.POST("/signin", limitMW, authCtl.Signin)
	}
	authed := r.Group("/api/auth", authMW, seenMW)
	{
		authed.POST("/signout", authCtl.Signout)
		authed.GET("/whoami", authCtl.WhoAmI)
	}

	// ------------------------------
	// Catalog / borrowing
	// ------------------------------
	books := r.Group("/api/books", authMW, seenMW)
	{
		books.GET("", bookCtl.Search) // ?query=&genre=&availability=&sort=&page=&size=
		books.GET("/genres", bookCtl.Genres)
		books.GET("/popular", bookCtl.Popular)
		books.GET("/:id", bookCtl.Get)
		books.GET("/:id/related", bookCtl.Related)
		books.POST("/:id/borrow", bookCtl.Borrow)
		books.POST("/:id/return", bookCtl.Return)
	}

	me := r.Group("/api/me", authMW, seenMW)
	{
		me.GET("/loans", bookCtl.MyLoans) // ?status=borrowed|returned
		me.PUT("", authCtl.UpdateMe)
	}

	// ------------------------------
	// Admin
	// ------------------------------
	admin := r.Group("/api/admin", authMW, adminMW)
	{
		admin.POST("/books", adminBookCtl.Create)
		admin.PUT("/books/:id", adminBookCtl.Update)
		admin.DELETE("/books/:id", adminBookCtl.Delete)

		admin.GET("/users", adminUserCtl.List) // ?q=&status=&page=&size=
		admin.PATCH("/users/:id/status", adminUserCtl.SetStatus)
		admin.PATCH("/users/:id/role", adminUserCtl.SetRole)
		admin.DELETE("/users/:id", adminUserCtl.Delete)

		admin.GET("/borrow-requests", adminBorrowCtl.List) // ?q=&status=&page=&size=
		admin.PATCH("/borrow-requests/:id/status", adminBorrowCtl.SetStatus)
		admin.GET("/borrow-requests/:id/receipt", adminBorrowCtl.Receipt)

		admin.GET("/dashboard", adminBorrowCtl.Dashboard)
	}
}
