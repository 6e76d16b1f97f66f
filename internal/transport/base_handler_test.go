package transport_test

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"

	errors "github.com/frahmantamala/office-management/internal"
	"github.com/frahmantamala/office-management/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("BaseHandler", func() {
	var handler *transport.BaseHandler

	decode := func(w *httptest.ResponseRecorder) transport.APIResponse {
		var resp transport.APIResponse
		Expect(json.NewDecoder(w.Body).Decode(&resp)).To(Succeed())
		return resp
	}

	BeforeEach(func() {
		handler = transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	Describe("HandleServiceError", func() {
		It("uses the status and message of a typed error", func() {
			w := httptest.NewRecorder()
			handler.HandleServiceError(w, errors.ErrDepartmentNotFound)

			Expect(w.Code).To(Equal(http.StatusNotFound))

			resp := decode(w)
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("Department not found"))
		})

		It("answers 500 with a generic message for unknown errors", func() {
			w := httptest.NewRecorder()
			handler.HandleServiceError(w, stderrors.New("connection refused"))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))

			resp := decode(w)
			Expect(resp.Success).To(BeFalse())
			Expect(resp.Message).To(Equal("internal server error"))
			Expect(resp.Error).To(BeEmpty())
		})

		It("echoes the underlying error text when ExposeErrors is set", func() {
			handler.ExposeErrors = true

			w := httptest.NewRecorder()
			handler.HandleServiceError(w, stderrors.New("connection refused"))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))

			resp := decode(w)
			Expect(resp.Message).To(Equal("internal server error"))
			Expect(resp.Error).To(Equal("connection refused"))
		})

		It("never echoes error text for typed errors", func() {
			handler.ExposeErrors = true

			w := httptest.NewRecorder()
			handler.HandleServiceError(w, errors.NewInternalError("failed to list departments", stderrors.New("connection refused")))

			Expect(w.Code).To(Equal(http.StatusInternalServerError))

			resp := decode(w)
			Expect(resp.Message).To(Equal("failed to list departments"))
			Expect(resp.Error).To(BeEmpty())
		})
	})

	Describe("NewPagination", func() {
		It("rounds the page count up", func() {
			p := transport.NewPagination(1, 10, 12)
			Expect(p.Pages).To(Equal(2))
		})

		It("reports zero pages for an empty result", func() {
			p := transport.NewPagination(1, 10, 0)
			Expect(p.Pages).To(Equal(0))
		})
	})
})
