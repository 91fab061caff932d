package user_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	"github.com/frahmantamala/parc-info/internal/core/database"
	ticketDatamodel "github.com/frahmantamala/parc-info/internal/core/datamodel/ticket"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/internal/user"
	userPostgres "github.com/frahmantamala/parc-info/internal/user/postgres"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

var _ = Describe("User Handler Integration", func() {
	var (
		db      *gorm.DB
		service *user.Service
		handler *user.Handler
	)

	BeforeEach(func() {
		var err error
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())

		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = user.NewService(userPostgres.NewUserRepository(db), slogger, bcrypt.MinCost)
		handler = user.NewHandler(&transport.BaseHandler{Logger: slogger}, service)
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	It("creates a user and never echoes the password hash", func() {
		body := `{"email":"tech@parc.fr","password":"secret123","role":"technicien","firstName":"Luc"}`
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		Expect(w.Code).To(Equal(http.StatusCreated))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))

		var got map[string]interface{}
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got["email"]).To(Equal("tech@parc.fr"))
		Expect(got["role"]).To(Equal("technicien"))
		Expect(got["isActive"]).To(BeTrue())
	})

	It("answers 400 with field details on invalid input", func() {
		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"email":"bad"}`))
		w := httptest.NewRecorder()

		handler.Create(w, req)

		Expect(w.Code).To(Equal(http.StatusBadRequest))
		Expect(w.Body.String()).To(ContainSubstring(`"field":"email"`))
		Expect(w.Body.String()).To(ContainSubstring(`"field":"password"`))
	})

	It("answers 409 on duplicate email", func() {
		_, err := service.Create(context.Background(), user.CreateUserDTO{Email: "dup@parc.fr", Password: "secret123"})
		Expect(err).NotTo(HaveOccurred())

		req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(`{"email":"dup@parc.fr","password":"secret123"}`))
		w := httptest.NewRecorder()
		handler.Create(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))
	})

	It("answers 404 for an unknown user", func() {
		req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/users/x", nil), "id", "x")
		w := httptest.NewRecorder()

		handler.Get(w, req)

		Expect(w.Code).To(Equal(http.StatusNotFound))
	})

	It("deactivates on DELETE", func() {
		u, err := service.Create(context.Background(), user.CreateUserDTO{Email: "gone@parc.fr", Password: "secret123"})
		Expect(err).NotTo(HaveOccurred())

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/"+u.ID, nil), "id", u.ID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		got, err := service.GetByID(context.Background(), u.ID)
		Expect(err).NotTo(HaveOccurred())
		Expect(got.IsActive).To(BeFalse())
	})

	It("removes the row on DELETE ?hard=true", func() {
		u, err := service.Create(context.Background(), user.CreateUserDTO{Email: "hard@parc.fr", Password: "secret123"})
		Expect(err).NotTo(HaveOccurred())

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/"+u.ID+"?hard=true", nil), "id", u.ID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		Expect(w.Code).To(Equal(http.StatusNoContent))
		_, err = service.GetByID(context.Background(), u.ID)
		Expect(err).To(Equal(user.ErrUserNotFound))
	})

	It("answers 409 USER_IN_USE when a ticket still names the user as creator", func() {
		u, err := service.Create(context.Background(), user.CreateUserDTO{Email: "author@parc.fr", Password: "secret123"})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.Create(&ticketDatamodel.Ticket{
			Title: "Imprimante", Description: "bourrage", CreatedBy: u.ID, Status: "ouvert", Priority: "basse",
		}).Error).To(Succeed())

		req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/users/"+u.ID+"?hard=true", nil), "id", u.ID)
		w := httptest.NewRecorder()
		handler.Delete(w, req)

		Expect(w.Code).To(Equal(http.StatusConflict))
		Expect(w.Body.String()).To(ContainSubstring(`"code":"USER_IN_USE"`))
		_, err = service.GetByID(context.Background(), u.ID)
		Expect(err).NotTo(HaveOccurred())
	})

	It("updates partially", func() {
		u, err := service.Create(context.Background(), user.CreateUserDTO{Email: "p@parc.fr", Password: "secret123"})
		Expect(err).NotTo(HaveOccurred())

		req := withURLParam(httptest.NewRequest(http.MethodPut, "/api/users/"+u.ID, strings.NewReader(`{"lastName":"Martin"}`)), "id", u.ID)
		w := httptest.NewRecorder()
		handler.Update(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		var got user.User
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(*got.LastName).To(Equal("Martin"))
		Expect(got.Email).To(Equal("p@parc.fr"))
	})

	It("lists users", func() {
		for _, email := range []string{"a@parc.fr", "b@parc.fr"} {
			_, err := service.Create(context.Background(), user.CreateUserDTO{Email: email, Password: "secret123"})
			Expect(err).NotTo(HaveOccurred())
		}

		w := httptest.NewRecorder()
		handler.List(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		Expect(w.Code).To(Equal(http.StatusOK))
		var got []user.User
		Expect(json.NewDecoder(w.Body).Decode(&got)).To(Succeed())
		Expect(got).To(HaveLen(2))
	})
})
