package services

import (
	"os"
	"testing"

	"github.com/prasetyawidi/attendance-app/models"
	"github.com/prasetyawidi/attendance-app/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// testFixture holds the seeded rows the engine tests work against.
type testFixture struct {
	Admin    models.User
	Lecturer models.User
	StudentA models.User
	StudentB models.User
	Course   models.Course
	Subject  models.Subject
}

func setupTestDB(t *testing.T) (*gorm.DB, *testFixture) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open in-memory sqlite: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Room{},
		&models.Course{},
		&models.Subject{},
		&models.Enrollment{},
		&models.AttendanceRecord{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	f := &testFixture{
		Admin:    models.User{Name: "Admin", Email: "admin@campus.test", Password: "x", Role: models.RoleAdmin},
		Lecturer: models.User{Name: "Dr. Sari", Email: "sari@campus.test", Password: "x", Role: models.RoleLecturer},
		StudentA: models.User{Name: "Student A", Email: "a@campus.test", Password: "x", Role: models.RoleStudent},
		StudentB: models.User{Name: "Student B", Email: "b@campus.test", Password: "x", Role: models.RoleStudent},
	}
	for _, u := range []*models.User{&f.Admin, &f.Lecturer, &f.StudentA, &f.StudentB} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("seed user: %v", err)
		}
	}

	f.Course = models.Course{Code: "CS101", Title: "Intro to Computing", LecturerID: &f.Lecturer.ID, IsActive: true}
	if err := db.Create(&f.Course).Error; err != nil {
		t.Fatalf("seed course: %v", err)
	}

	f.Subject = models.Subject{CourseID: f.Course.ID, Name: "Algorithms", Code: "ALG"}
	if err := db.Create(&f.Subject).Error; err != nil {
		t.Fatalf("seed subject: %v", err)
	}

	for _, studentID := range []uint{f.StudentA.ID, f.StudentB.ID} {
		enrollment := models.Enrollment{
			StudentID: studentID,
			CourseID:  f.Course.ID,
			Status:    models.EnrollmentStatusEnrolled,
			IsActive:  true,
		}
		if err := db.Create(&enrollment).Error; err != nil {
			t.Fatalf("seed enrollment: %v", err)
		}
	}

	return db, f
}
