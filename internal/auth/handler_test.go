package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/auth"
	"github.com/frahmantamala/parc-info/internal/auth/session"
	"github.com/frahmantamala/parc-info/internal/core/database"
	"github.com/frahmantamala/parc-info/internal/transport"
	"github.com/frahmantamala/parc-info/internal/user"
	userPostgres "github.com/frahmantamala/parc-info/internal/user/postgres"
	"github.com/frahmantamala/parc-info/pkg/logger"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var _ = Describe("Auth HTTP flow", func() {
	var (
		db       *gorm.DB
		users    *user.Service
		router   *chi.Mux
		loggedIn []*http.Cookie
	)

	do := func(method, path, body string, cookies []*http.Cookie) *httptest.ResponseRecorder {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
		}
		for _, c := range cookies {
			req.AddCookie(c)
		}
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	login := func(email string) []*http.Cookie {
		w := do(http.MethodPost, "/api/auth/login", `{"email":"`+email+`","password":"secret123"}`, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		return w.Result().Cookies()
	}

	BeforeEach(func() {
		var err error
		db, err = database.OpenInMemory()
		Expect(err).NotTo(HaveOccurred())
		sqlxDB, err := database.SQLX(db, database.DriverSQLite)
		Expect(err).NotTo(HaveOccurred())

		lg := logger.Discard()
		base := transport.NewBaseHandler(lg)
		users = user.NewService(userPostgres.NewUserRepository(db), lg, bcrypt.MinCost)
		sessions := session.NewManager(session.NewDatabaseStore(sqlxDB), internal.SessionConfig{
			Secret:         "0123456789abcdef0123456789abcdef",
			TTL:            time.Hour,
			CookieName:     "connect.sid",
			CookieHTTPOnly: true,
		})
		handler := auth.NewHandler(base, auth.NewService(users, lg), sessions)
		rbac := auth.NewRBACAuthorization(auth.DefaultPolicy(), lg)

		router = chi.NewRouter()
		router.Post("/api/auth/login", handler.Login)
		router.Post("/api/auth/register", handler.Register)
		router.Post("/api/auth/logout", handler.Logout)
		router.Group(func(pr chi.Router) {
			pr.Use(handler.RequireAuthenticated, rbac.Middleware())
			pr.Get("/api/auth/user", handler.CurrentUser)
			pr.Get("/api/users", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
			pr.With(rbac.RequireRole(user.RoleTechnician)).Get("/api/tech-only", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			})
		})

		for _, dto := range []user.CreateUserDTO{
			{Email: "admin@parc.fr", Password: "secret123", Role: "admin"},
			{Email: "tech@parc.fr", Password: "secret123", Role: "technicien"},
		} {
			_, err := users.Create(context.Background(), dto)
			Expect(err).NotTo(HaveOccurred())
		}
		loggedIn = nil
	})

	AfterEach(func() {
		Expect(database.Close(db)).To(Succeed())
	})

	It("logs in and returns the redacted user with a session cookie", func() {
		w := do(http.MethodPost, "/api/auth/login", `{"email":"admin@parc.fr","password":"secret123"}`, nil)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).NotTo(ContainSubstring("password"))

		var resp auth.Response
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.User.Email).To(Equal("admin@parc.fr"))
		Expect(resp.User.Role).To(Equal(user.RoleAdmin))
		Expect(w.Result().Cookies()).NotTo(BeEmpty())
	})

	It("answers 401 on a wrong password without a cookie", func() {
		w := do(http.MethodPost, "/api/auth/login", `{"email":"admin@parc.fr","password":"wrong"}`, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(w.Result().Cookies()).To(BeEmpty())
	})

	It("answers 401 for a deactivated account", func() {
		tech, err := users.FindByEmail(context.Background(), "tech@parc.fr")
		Expect(err).NotTo(HaveOccurred())
		Expect(users.Deactivate(context.Background(), tech.ID)).To(Succeed())

		w := do(http.MethodPost, "/api/auth/login", `{"email":"tech@parc.fr","password":"secret123"}`, nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("requires a session for protected routes", func() {
		w := do(http.MethodGet, "/api/auth/user", "", nil)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("returns the current user once logged in", func() {
		loggedIn = login("tech@parc.fr")
		w := do(http.MethodGet, "/api/auth/user", "", loggedIn)
		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("tech@parc.fr"))
	})

	It("revokes access when the user is deactivated mid-session", func() {
		loggedIn = login("tech@parc.fr")
		tech, err := users.FindByEmail(context.Background(), "tech@parc.fr")
		Expect(err).NotTo(HaveOccurred())
		Expect(users.Deactivate(context.Background(), tech.ID)).To(Succeed())

		w := do(http.MethodGet, "/api/auth/user", "", loggedIn)
		Expect(w.Code).To(Equal(http.StatusUnauthorized))
	})

	It("enforces the capability table", func() {
		Expect(do(http.MethodGet, "/api/users", "", login("tech@parc.fr")).Code).To(Equal(http.StatusForbidden))
		Expect(do(http.MethodGet, "/api/users", "", login("admin@parc.fr")).Code).To(Equal(http.StatusOK))
	})

	It("enforces ad-hoc role guards", func() {
		Expect(do(http.MethodGet, "/api/tech-only", "", login("admin@parc.fr")).Code).To(Equal(http.StatusForbidden))
		Expect(do(http.MethodGet, "/api/tech-only", "", login("tech@parc.fr")).Code).To(Equal(http.StatusOK))
	})

	It("registers and logs the new user in", func() {
		w := do(http.MethodPost, "/api/auth/register", `{"email":"new@parc.fr","password":"secret123","firstName":"Ana"}`, nil)
		Expect(w.Code).To(Equal(http.StatusOK))

		var resp auth.Response
		Expect(json.Unmarshal(w.Body.Bytes(), &resp)).To(Succeed())
		Expect(resp.User.Role).To(Equal(user.RoleUser))

		me := do(http.MethodGet, "/api/auth/user", "", w.Result().Cookies())
		Expect(me.Code).To(Equal(http.StatusOK))
	})

	It("rejects a duplicate registration with 400", func() {
		w := do(http.MethodPost, "/api/auth/register", `{"email":"admin@parc.fr","password":"secret123"}`, nil)
		Expect(w.Code).To(Equal(http.StatusBadRequest))
	})

	It("logs out and invalidates the session", func() {
		loggedIn = login("tech@parc.fr")

		w := do(http.MethodPost, "/api/auth/logout", "", loggedIn)
		Expect(w.Code).To(Equal(http.StatusOK))

		Expect(do(http.MethodGet, "/api/auth/user", "", loggedIn).Code).To(Equal(http.StatusUnauthorized))
	})
})
