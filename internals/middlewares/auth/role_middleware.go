package auth

import (
	"github.com/gofiber/fiber/v2"

	"sekolahku_backend/internals/constants"
	helper "sekolahku_backend/internals/helpers"
)

// OnlyTeacherOrAdmin membatasi endpoint tulis rekap ke role teacher/admin.
func OnlyTeacherOrAdmin(action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, _ := c.Locals(helper.LocRole).(string)
		switch role {
		case constants.RoleTeacher, constants.RoleAdmin:
			return c.Next()
		default:
			return fiber.NewError(fiber.StatusForbidden, constants.RoleErrorTeacher(action))
		}
	}
}
