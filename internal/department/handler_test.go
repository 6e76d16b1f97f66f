package department_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"

	"github.com/frahmantamala/office-management/internal/department"
	departmentPostgres "github.com/frahmantamala/office-management/internal/department/postgres"
	"github.com/frahmantamala/office-management/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var _ = Describe("Department Handler Integration", func() {
	var (
		db      *gorm.DB
		service *department.Service
		handler *department.Handler
	)

	withIDParam := func(r *http.Request, id string) *http.Request {
		rctx := chi.NewRouteContext()
		rctx.URLParams.Add("id", id)
		return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
	}

	jsonBody := func(payload interface{}) *bytes.Buffer {
		raw, err := json.Marshal(payload)
		Expect(err).NotTo(HaveOccurred())
		return bytes.NewBuffer(raw)
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())

		err = db.AutoMigrate(&department.Department{})
		Expect(err).NotTo(HaveOccurred())

		repo := departmentPostgres.NewRepository(db)
		service = department.NewService(repo, slogger)
		handler = department.NewHandler(service)
	})

	Describe("List", func() {
		It("returns departments ordered by name", func() {
			for _, name := range []string{"Sales", "Engineering", "Marketing"} {
				_, err := service.Create(department.CreateDTO{Name: name})
				Expect(err).NotTo(HaveOccurred())
			}

			req := httptest.NewRequest(http.MethodGet, "/api/departments", nil)
			w := httptest.NewRecorder()
			handler.List(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp transport.APIResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())

			items := resp.Data.([]interface{})
			Expect(items).To(HaveLen(3))
			names := make([]string, len(items))
			for i, item := range items {
				names[i] = item.(map[string]interface{})["name"].(string)
			}
			Expect(names).To(Equal([]string{"Engineering", "Marketing", "Sales"}))
		})

		It("returns an empty list when there are no departments", func() {
			req := httptest.NewRequest(http.MethodGet, "/api/departments", nil)
			w := httptest.NewRecorder()
			handler.List(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp transport.APIResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			Expect(resp.Success).To(BeTrue())
		})
	})

	Describe("Create", func() {
		It("creates a department", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/departments", jsonBody(department.CreateDTO{Name: "Engineering", Description: "Builds the product"}))
			w := httptest.NewRecorder()
			handler.Create(w, req)

			Expect(w.Code).To(Equal(http.StatusCreated))

			var resp transport.APIResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			data := resp.Data.(map[string]interface{})
			Expect(data["name"]).To(Equal("Engineering"))
			Expect(data["id"]).NotTo(BeNil())
		})

		It("rejects a duplicate name with conflict", func() {
			_, err := service.Create(department.CreateDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			req := httptest.NewRequest(http.MethodPost, "/api/departments", jsonBody(department.CreateDTO{Name: "Engineering"}))
			w := httptest.NewRecorder()
			handler.Create(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))
		})

		It("rejects a name shorter than 2 characters", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/departments", jsonBody(department.CreateDTO{Name: "E"}))
			w := httptest.NewRecorder()
			handler.Create(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Get", func() {
		It("returns the department by id", func() {
			created, err := service.Create(department.CreateDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/departments/1", nil), "1")
			w := httptest.NewRecorder()
			handler.Get(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			var resp transport.APIResponse
			Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
			data := resp.Data.(map[string]interface{})
			Expect(int64(data["id"].(float64))).To(Equal(created.ID))
		})

		It("returns 404 for a missing department", func() {
			req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/departments/999", nil), "999")
			w := httptest.NewRecorder()
			handler.Get(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})

		It("returns 400 for a non-numeric id", func() {
			req := withIDParam(httptest.NewRequest(http.MethodGet, "/api/departments/abc", nil), "abc")
			w := httptest.NewRecorder()
			handler.Get(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("Update", func() {
		It("renames a department", func() {
			created, err := service.Create(department.CreateDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			req := withIDParam(httptest.NewRequest(http.MethodPut, "/api/departments/1", jsonBody(department.UpdateDTO{Name: "Platform Engineering"})), "1")
			w := httptest.NewRecorder()
			handler.Update(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			updated, err := service.Get(created.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(updated.Name).To(Equal("Platform Engineering"))
		})

		It("rejects renaming to another department's name", func() {
			_, err := service.Create(department.CreateDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())
			sales, err := service.Create(department.CreateDTO{Name: "Sales"})
			Expect(err).NotTo(HaveOccurred())

			req := withIDParam(httptest.NewRequest(http.MethodPut, "/api/departments/2", jsonBody(department.UpdateDTO{Name: "Engineering"})), "2")
			w := httptest.NewRecorder()
			handler.Update(w, req)

			Expect(w.Code).To(Equal(http.StatusConflict))

			unchanged, err := service.Get(sales.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(unchanged.Name).To(Equal("Sales"))
		})

		It("allows keeping the same name", func() {
			_, err := service.Create(department.CreateDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			req := withIDParam(httptest.NewRequest(http.MethodPut, "/api/departments/1", jsonBody(department.UpdateDTO{Name: "Engineering", Description: "Updated"})), "1")
			w := httptest.NewRecorder()
			handler.Update(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))
		})

		It("returns 404 for a missing department", func() {
			req := withIDParam(httptest.NewRequest(http.MethodPut, "/api/departments/999", jsonBody(department.UpdateDTO{Name: "Ghost"})), "999")
			w := httptest.NewRecorder()
			handler.Update(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})

	Describe("Delete", func() {
		It("deletes a department", func() {
			created, err := service.Create(department.CreateDTO{Name: "Engineering"})
			Expect(err).NotTo(HaveOccurred())

			req := withIDParam(httptest.NewRequest(http.MethodDelete, "/api/departments/1", nil), "1")
			w := httptest.NewRecorder()
			handler.Delete(w, req)

			Expect(w.Code).To(Equal(http.StatusOK))

			_, err = service.Get(created.ID)
			Expect(err).To(HaveOccurred())
		})

		It("returns 404 for a missing department", func() {
			req := withIDParam(httptest.NewRequest(http.MethodDelete, "/api/departments/999", nil), "999")
			w := httptest.NewRecorder()
			handler.Delete(w, req)

			Expect(w.Code).To(Equal(http.StatusNotFound))
		})
	})
})
