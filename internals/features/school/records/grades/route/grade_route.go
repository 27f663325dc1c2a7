package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	timetableService "sekolahku_backend/internals/features/school/academics/timetables/service"
	gradeCtrl "sekolahku_backend/internals/features/school/records/grades/controller"
	gradeService "sekolahku_backend/internals/features/school/records/grades/service"
	"sekolahku_backend/internals/features/school/repository"
)

func GradeRoutes(r fiber.Router, db *gorm.DB) {
	slots := timetableService.NewSlotProvisioner(
		repository.NewTimetableGorm(db),
		repository.NewClassGorm(db),
	)
	svc := gradeService.NewGradeService(repository.NewGradeGorm(db), slots)
	ctl := gradeCtrl.NewGradeController(svc)

	g := r.Group("/grades")
	g.Post("/", ctl.Post) // single atau bulk (+ provisioning slot virtual)
	g.Get("/", ctl.List)
	g.Put("/", ctl.Put)
	g.Delete("/", ctl.Delete)
}
