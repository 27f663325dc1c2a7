package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	classmodel "sekolahku_backend/internals/features/school/academics/classes/model"
	timetablemodel "sekolahku_backend/internals/features/school/academics/timetables/model"
	attendancemodel "sekolahku_backend/internals/features/school/records/attendance/model"
	grademodel "sekolahku_backend/internals/features/school/records/grades/model"
)

var DB *gorm.DB

func ConnectDB() {
	log.Println("🔌 Koneksi ke PostgreSQL...")

	sslmode := getenv("DB_SSLMODE", "require")
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&application_name=sekolahku&options=-c statement_timeout=3000",
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_HOST"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_NAME"),
		sslmode,
	)

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // aman untuk PgBouncer
	}), &gorm.Config{})
	if err != nil {
		log.Fatalf("❌ Gagal koneksi ke PostgreSQL:\n%v", err)
	}

	DB = db
	log.Println("✅ Berhasil konek ke PostgreSQL!")
}

func TunePool() {
	sqlDB, err := DB.DB()
	if err != nil {
		log.Println("⚠️ Gagal ambil sql.DB untuk tuning pool:", err)
		return
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
}

// AutoMigrate menjalankan migrasi skema untuk agregat inti.
// Unique index natural-key ikut dibuat dari tag model.
func AutoMigrate() {
	if err := DB.AutoMigrate(
		&classmodel.ClassModel{},
		&timetablemodel.TimetableModel{},
		&attendancemodel.AttendanceModel{},
		&grademodel.GradeModel{},
	); err != nil {
		log.Fatalf("❌ AutoMigrate gagal: %v", err)
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
