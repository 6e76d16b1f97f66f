package employee_test

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/department"
	departmentPostgres "github.com/frahmantamala/office-management/internal/department/postgres"
	"github.com/frahmantamala/office-management/internal/employee"
	employeePostgres "github.com/frahmantamala/office-management/internal/employee/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// stubValidator lets each test decide which locations are valid without
// reaching the real geography API.
type stubValidator struct {
	valid bool
}

func (s *stubValidator) ValidateLocation(ctx context.Context, country, state, city string) bool {
	return s.valid
}

var _ = Describe("Employee Service", func() {
	var (
		db          *gorm.DB
		repo        *employeePostgres.Repository
		deptService *department.Service
		validator   *stubValidator
		service     *employee.Service
		ctx         context.Context

		engineering *department.Department
		sales       *department.Department
	)

	validLocation := employee.LocationDTO{Country: "Indonesia", State: "West Java", City: "Bandung"}

	newEmployee := func(name, email string, deptID int64) *employee.EmployeeResponse {
		resp, err := service.Create(ctx, employee.CreateDTO{
			Name:         name,
			Email:        email,
			DepartmentID: deptID,
			JobTitle:     "Engineer",
			Location:     validLocation,
		})
		Expect(err).NotTo(HaveOccurred())
		return resp
	}

	setCreatedAt := func(id int64, at time.Time) {
		Expect(db.Model(&employee.Employee{}).Where("id = ?", id).Update("created_at", at).Error).To(Succeed())
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&department.Department{}, &employee.Employee{})
		Expect(err).NotTo(HaveOccurred())

		repo = employeePostgres.NewRepository(db)
		directory := employeePostgres.NewDepartmentDirectory(db)
		validator = &stubValidator{valid: true}
		service = employee.NewService(repo, directory, validator, slogger)

		deptRepo := departmentPostgres.NewRepository(db)
		deptService = department.NewService(deptRepo, slogger)

		engineering, err = deptService.Create(department.CreateDTO{Name: "Engineering"})
		Expect(err).NotTo(HaveOccurred())
		sales, err = deptService.Create(department.CreateDTO{Name: "Sales"})
		Expect(err).NotTo(HaveOccurred())
	})

	Describe("Create", func() {
		It("creates an employee with a resolved department reference", func() {
			resp := newEmployee("Budi Santoso", "budi@example.com", engineering.ID)

			Expect(resp.ID).NotTo(BeZero())
			Expect(resp.Department).NotTo(BeNil())
			Expect(resp.Department.Name).To(Equal("Engineering"))
			Expect(resp.Supervisor).To(BeNil())
		})

		It("lowercases the email before storing", func() {
			resp := newEmployee("Budi Santoso", "Budi@Example.COM", engineering.ID)
			Expect(resp.Email).To(Equal("budi@example.com"))
		})

		It("rejects an unknown department", func() {
			_, err := service.Create(ctx, employee.CreateDTO{
				Name:         "Budi Santoso",
				Email:        "budi@example.com",
				DepartmentID: 999,
				JobTitle:     "Engineer",
				Location:     validLocation,
			})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(appErr.Message).To(Equal("Department not found"))
		})

		It("rejects an invalid location", func() {
			validator.valid = false

			_, err := service.Create(ctx, employee.CreateDTO{
				Name:         "Budi Santoso",
				Email:        "budi@example.com",
				DepartmentID: engineering.ID,
				JobTitle:     "Engineer",
				Location:     employee.LocationDTO{Country: "Atlantis", State: "Nowhere", City: "Gotham"},
			})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(appErr.Message).To(Equal("Invalid location provided"))
		})

		It("rejects a duplicate email with conflict", func() {
			newEmployee("Budi Santoso", "budi@example.com", engineering.ID)

			_, err := service.Create(ctx, employee.CreateDTO{
				Name:         "Other Budi",
				Email:        "budi@example.com",
				DepartmentID: engineering.ID,
				JobTitle:     "Engineer",
				Location:     validLocation,
			})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusConflict))
		})

		It("rejects a short name and job title", func() {
			_, err := service.Create(ctx, employee.CreateDTO{
				Name:         "B",
				Email:        "budi@example.com",
				DepartmentID: engineering.ID,
				JobTitle:     "E",
				Location:     validLocation,
			})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Update", func() {
		var budi, sari *employee.EmployeeResponse

		BeforeEach(func() {
			budi = newEmployee("Budi Santoso", "budi@example.com", engineering.ID)
			sari = newEmployee("Sari Dewi", "sari@example.com", engineering.ID)
		})

		It("assigns a supervisor", func() {
			resp, err := service.Update(ctx, budi.ID, employee.UpdateDTO{SupervisorID: &sari.ID})
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.Supervisor).NotTo(BeNil())
			Expect(resp.Supervisor.ID).To(Equal(sari.ID))
			Expect(resp.Supervisor.Name).To(Equal("Sari Dewi"))
			Expect(resp.Supervisor.Email).To(Equal("sari@example.com"))
			Expect(resp.Supervisor.JobTitle).To(Equal("Engineer"))
		})

		It("rejects an unknown supervisor", func() {
			ghost := int64(999)
			_, err := service.Update(ctx, budi.ID, employee.UpdateDTO{SupervisorID: &ghost})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(appErr.Message).To(Equal("Supervisor not found"))
		})

		It("rejects self-supervision", func() {
			_, err := service.Update(ctx, budi.ID, employee.UpdateDTO{SupervisorID: &budi.ID})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusBadRequest))
			Expect(appErr.Message).To(Equal("Employee cannot be their own supervisor"))
		})

		It("allows a two-person supervision cycle", func() {
			_, err := service.Update(ctx, budi.ID, employee.UpdateDTO{SupervisorID: &sari.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Update(ctx, sari.ID, employee.UpdateDTO{SupervisorID: &budi.ID})
			Expect(err).NotTo(HaveOccurred())
		})

		It("moves the employee to another department", func() {
			resp, err := service.Update(ctx, budi.ID, employee.UpdateDTO{DepartmentID: &sales.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Department.Name).To(Equal("Sales"))
		})

		It("rejects an unknown department", func() {
			ghost := int64(999)
			_, err := service.Update(ctx, budi.ID, employee.UpdateDTO{DepartmentID: &ghost})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Department not found"))
		})

		It("rejects an invalid location", func() {
			validator.valid = false
			loc := employee.LocationDTO{Country: "Atlantis", State: "Nowhere", City: "Gotham"}
			_, err := service.Update(ctx, budi.ID, employee.UpdateDTO{Location: &loc})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Invalid location provided"))
		})

		It("leaves omitted fields unchanged", func() {
			newName := "Budi S."
			resp, err := service.Update(ctx, budi.ID, employee.UpdateDTO{Name: &newName})
			Expect(err).NotTo(HaveOccurred())

			Expect(resp.Name).To(Equal("Budi S."))
			Expect(resp.Email).To(Equal("budi@example.com"))
			Expect(resp.JobTitle).To(Equal("Engineer"))
			Expect(resp.Department.ID).To(Equal(engineering.ID))
		})

		It("rejects taking another employee's email", func() {
			email := "sari@example.com"
			_, err := service.Update(ctx, budi.ID, employee.UpdateDTO{Email: &email})

			appErr, ok := errors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(http.StatusConflict))
		})

		It("returns not found for a missing employee", func() {
			name := "Ghost"
			_, err := service.Update(ctx, 999, employee.UpdateDTO{Name: &name})
			Expect(err).To(Equal(errors.ErrEmployeeNotFound))
		})
	})

	Describe("Delete", func() {
		It("clears the supervisor reference of direct reports only", func() {
			boss := newEmployee("Boss", "boss@example.com", engineering.ID)
			lead := newEmployee("Lead", "lead@example.com", engineering.ID)
			dev := newEmployee("Dev", "dev@example.com", engineering.ID)

			_, err := service.Update(ctx, lead.ID, employee.UpdateDTO{SupervisorID: &boss.ID})
			Expect(err).NotTo(HaveOccurred())
			_, err = service.Update(ctx, dev.ID, employee.UpdateDTO{SupervisorID: &lead.ID})
			Expect(err).NotTo(HaveOccurred())

			Expect(service.Delete(ctx, boss.ID)).To(Succeed())

			leadAfter, err := service.Get(ctx, lead.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(leadAfter.Supervisor).To(BeNil())

			devAfter, err := service.Get(ctx, dev.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(devAfter.Supervisor).NotTo(BeNil())
			Expect(devAfter.Supervisor.ID).To(Equal(lead.ID))
		})

		It("returns not found for a missing employee", func() {
			Expect(service.Delete(ctx, 999)).To(Equal(errors.ErrEmployeeNotFound))
		})
	})

	Describe("Get", func() {
		It("resolves a dangling department reference to null", func() {
			budi := newEmployee("Budi Santoso", "budi@example.com", engineering.ID)

			Expect(deptService.Delete(engineering.ID)).To(Succeed())

			resp, err := service.Get(ctx, budi.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Department).To(BeNil())
		})

		It("resolves a dangling supervisor reference to null", func() {
			budi := newEmployee("Budi Santoso", "budi@example.com", engineering.ID)
			sari := newEmployee("Sari Dewi", "sari@example.com", engineering.ID)

			_, err := service.Update(ctx, budi.ID, employee.UpdateDTO{SupervisorID: &sari.ID})
			Expect(err).NotTo(HaveOccurred())

			// remove the row directly, bypassing the one-hop clear
			Expect(db.Delete(&employee.Employee{}, sari.ID).Error).To(Succeed())

			resp, err := service.Get(ctx, budi.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(resp.Supervisor).To(BeNil())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
			oldest := newEmployee("Anton Wijaya", "anton@example.com", engineering.ID)
			middle := newEmployee("Bella Kusuma", "bella@example.com", sales.ID)
			newest := newEmployee("Candra Putra", "candra@example.com", engineering.ID)

			setCreatedAt(oldest.ID, base)
			setCreatedAt(middle.ID, base.Add(time.Hour))
			setCreatedAt(newest.ID, base.Add(2*time.Hour))
		})

		It("returns employees newest first", func() {
			results, total, err := service.List(ctx, employee.ListFilter{})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))

			names := make([]string, len(results))
			for i, r := range results {
				names[i] = r.Name
			}
			Expect(names).To(Equal([]string{"Candra Putra", "Bella Kusuma", "Anton Wijaya"}))
		})

		It("pages results", func() {
			results, total, err := service.List(ctx, employee.ListFilter{Page: 2, Limit: 2})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(results).To(HaveLen(1))
			Expect(results[0].Name).To(Equal("Anton Wijaya"))
		})

		It("clamps the limit to 100", func() {
			filter := employee.ListFilter{Limit: 500}
			filter.Normalize()
			Expect(filter.Limit).To(Equal(100))
		})

		It("filters by department", func() {
			results, total, err := service.List(ctx, employee.ListFilter{DepartmentID: sales.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(results[0].Name).To(Equal("Bella Kusuma"))
		})

		It("matches job titles case-insensitively on substrings", func() {
			_, total, err := service.List(ctx, employee.ListFilter{JobTitle: "ENGIN"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
		})

		It("searches across name and email", func() {
			byName, total, err := service.List(ctx, employee.ListFilter{Search: "bella"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(byName[0].Name).To(Equal("Bella Kusuma"))

			byEmail, total, err := service.List(ctx, employee.ListFilter{Search: "candra@"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(1)))
			Expect(byEmail[0].Name).To(Equal("Candra Putra"))
		})

		It("combines department and search filters", func() {
			_, total, err := service.List(ctx, employee.ListFilter{DepartmentID: engineering.ID, Search: "bella"})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(BeZero())
		})

		It("returns an empty page past the end", func() {
			results, total, err := service.List(ctx, employee.ListFilter{Page: 10, Limit: 10})
			Expect(err).NotTo(HaveOccurred())
			Expect(total).To(Equal(int64(3)))
			Expect(results).To(BeEmpty())
		})
	})
})
