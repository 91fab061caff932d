package employee_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/parc-info/internal/core/database"
	"github.com/frahmantamala/parc-info/internal/employee"
	employeePostgres "github.com/frahmantamala/parc-info/internal/employee/postgres"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gorm.io/gorm"
)

var _ = Describe("Employee Handler Integration", func() {
	var (
		db     *gorm.DB
		router *chi.Mux
	)

	BeforeEach(func() {
		var err error
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())

		lg := logger.Discard()
		handler := employee.NewHandler(transport.NewBaseHandler(lg), employee.NewService(employeePostgres.NewEmployeeRepository(db), lg))
		router = chi.NewRouter()
		router.Get("/api/employees", handler.List)
		router.Post("/api/employees", handler.Create)
		router.Get("/api/employees/{id}", handler.Get)
		router.Put("/api/employees/{id}", handler.Update)
		router.Delete("/api/employees/{id}", handler.Delete)
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	serve := func(method, path, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, path, strings.NewReader(body)).WithContext(context.Background())
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	It("runs the CRUD cycle over HTTP", func() {
		w := serve(http.MethodPost, "/api/employees", `{"name":"Bob","email":"bob@parc.fr","department":"RH","position":"Manager"}`)
		Expect(w.Code).To(Equal(http.StatusCreated))
		var created employee.Employee
		Expect(json.Unmarshal(w.Body.Bytes(), &created)).To(Succeed())

		w = serve(http.MethodPut, "/api/employees/"+created.ID, `{"position":"Directeur"}`)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring(`"position":"Directeur"`))

		w = serve(http.MethodGet, "/api/employees", "")
		Expect(w.Code).To(Equal(http.StatusOK))
		var list []employee.Employee
		Expect(json.Unmarshal(w.Body.Bytes(), &list)).To(Succeed())
		Expect(list).To(HaveLen(1))

		Expect(serve(http.MethodDelete, "/api/employees/"+created.ID, "").Code).To(Equal(http.StatusNoContent))
		Expect(serve(http.MethodGet, "/api/employees/"+created.ID, "").Code).To(Equal(http.StatusNotFound))
	})

	It("returns an empty array rather than null", func() {
		w := serve(http.MethodGet, "/api/employees", "")
		Expect(strings.TrimSpace(w.Body.String())).To(Equal("[]"))
	})

	It("answers 400 on malformed JSON", func() {
		Expect(serve(http.MethodPost, "/api/employees", `{"name":`).Code).To(Equal(http.StatusBadRequest))
	})
})
