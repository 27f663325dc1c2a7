package constants

import "fmt"

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// RoleErrorTeacher dipakai middleware role untuk pesan 403 yang seragam.
func RoleErrorTeacher(action string) string {
	return fmt.Sprintf("Hanya teacher/admin yang boleh %s", action)
}
