package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	authmw "sekolahku_backend/internals/middlewares/auth"
	"sekolahku_backend/internals/route/details"
)

// SetupRoutes: base routes publik, lalu seluruh engine rekap di bawah
// /api dengan auth guard (JWT) + role guard (teacher/admin).
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app)

	api := app.Group("/api",
		authmw.AuthMiddleware(),
		authmw.OnlyTeacherOrAdmin("mengelola rekap kehadiran & nilai"),
	)
	details.SchoolRoutes(api, db)
}
