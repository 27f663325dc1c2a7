package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attCtrl "sekolahku_backend/internals/features/school/records/attendance/controller"
	attService "sekolahku_backend/internals/features/school/records/attendance/service"
	"sekolahku_backend/internals/features/school/repository"
)

func AttendanceRoutes(r fiber.Router, db *gorm.DB) {
	svc := attService.NewAttendanceService(
		repository.NewAttendanceGorm(db),
		repository.NewClassGorm(db),
	)
	ctl := attCtrl.NewAttendanceController(svc)

	g := r.Group("/attendance")
	g.Post("/", ctl.Post)     // single atau bulk
	g.Get("/", ctl.List)      // register harian
	g.Put("/", ctl.Put)       // update by surrogate id
	g.Delete("/", ctl.Delete) // delete per-hari (semua lesson number)
}
