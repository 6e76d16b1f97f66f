package cmd

import (
	"fmt"
	"log"

	"github.com/frahmantamala/office-management/internal/auth"
	"github.com/frahmantamala/office-management/internal/department"
	"github.com/frahmantamala/office-management/internal/employee"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample data",
	Long:  `Seed the database with sample data for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		db, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer db.Close()

		gormDB, err := initGorm(db)
		if err != nil {
			log.Fatalf("failed to init orm: %v", err)
		}

		if clearData {
			for _, table := range []string{"employees", "departments", "admins"} {
				if err := gormDB.Exec("DELETE FROM " + table).Error; err != nil {
					log.Fatalf("failed to clear %s: %v", table, err)
				}
			}
			fmt.Println("Cleared existing data")
		}

		seedAdmin(gormDB)
		departments := seedDepartments(gormDB)
		seedEmployees(gormDB, departments)
	},
}

func seedAdmin(db *gorm.DB) {
	adminEmail := "admin@office.local"

	var count int64
	if err := db.Model(&auth.Admin{}).Where("email = ?", adminEmail).Count(&count).Error; err != nil {
		log.Fatalf("failed to check admin: %v", err)
	}
	if count > 0 {
		fmt.Println("Admin already exists:", adminEmail)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := auth.Admin{
		Name:         "Default Admin",
		Email:        adminEmail,
		PasswordHash: string(hash),
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("Seeded admin:", adminEmail)
}

func seedDepartments(db *gorm.DB) map[string]int64 {
	names := []string{"Engineering", "Sales", "Human Resources"}
	ids := make(map[string]int64, len(names))

	for _, name := range names {
		var dept department.Department
		err := db.Where("name = ?", name).First(&dept).Error
		if err == nil {
			ids[name] = dept.ID
			continue
		}

		dept = department.Department{Name: name}
		if err := db.Create(&dept).Error; err != nil {
			log.Fatalf("failed to insert department %s: %v", name, err)
		}
		ids[name] = dept.ID
		fmt.Println("Seeded department:", name)
	}

	return ids
}

func seedEmployees(db *gorm.DB, departments map[string]int64) {
	samples := []employee.Employee{
		{
			Name:         "Budi Santoso",
			Email:        "budi@office.local",
			DepartmentID: departments["Engineering"],
			JobTitle:     "Engineering Manager",
			Location:     employee.Location{Country: "Indonesia", State: "Jakarta", City: "Jakarta"},
		},
		{
			Name:         "Sari Dewi",
			Email:        "sari@office.local",
			DepartmentID: departments["Engineering"],
			JobTitle:     "Software Engineer",
			Location:     employee.Location{Country: "Indonesia", State: "West Java", City: "Bandung"},
		},
		{
			Name:         "Andi Wijaya",
			Email:        "andi@office.local",
			DepartmentID: departments["Sales"],
			JobTitle:     "Account Executive",
			Location:     employee.Location{Country: "Indonesia", State: "Bali", City: "Denpasar"},
		},
	}

	var manager employee.Employee

	for _, sample := range samples {
		var count int64
		if err := db.Model(&employee.Employee{}).Where("email = ?", sample.Email).Count(&count).Error; err != nil {
			log.Fatalf("failed to check employee: %v", err)
		}
		if count > 0 {
			continue
		}

		emp := sample
		if err := db.Create(&emp).Error; err != nil {
			log.Fatalf("failed to insert employee %s: %v", emp.Email, err)
		}
		if emp.JobTitle == "Engineering Manager" {
			manager = emp
		}
		fmt.Println("Seeded employee:", emp.Email)
	}

	// give the engineer a supervisor so the reporting line has an example
	if manager.ID != 0 {
		if err := db.Model(&employee.Employee{}).
			Where("email = ? AND supervisor_id IS NULL", "sari@office.local").
			Update("supervisor_id", manager.ID).Error; err != nil {
			log.Fatalf("failed to set supervisor: %v", err)
		}
	}

	fmt.Println("Sample data seeded successfully")
}
