package details

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	attendanceRoute "sekolahku_backend/internals/features/school/records/attendance/route"
	gradeRoute "sekolahku_backend/internals/features/school/records/grades/route"
)

// SchoolRoutes memasang seluruh endpoint engine rekap di bawah group
// yang sudah dilindungi auth + role guard.
func SchoolRoutes(r fiber.Router, db *gorm.DB) {
	attendanceRoute.AttendanceRoutes(r, db)
	gradeRoute.GradeRoutes(r, db)
}
