package auth_test

import (
	"context"
	"errors"
	"testing"

	appErrors "github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/auth"
	"github.com/frahmantamala/parc-info/internal/user"
	"github.com/frahmantamala/parc-info/pkg/logger"
	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"golang.org/x/crypto/bcrypt"
)

func TestAuth(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Auth Module Suite")
}

type mockUserService struct {
	byID       map[string]*user.User
	shouldFail bool
	failError  error
}

func newMockUserService() *mockUserService {
	return &mockUserService{byID: make(map[string]*user.User)}
}

func (m *mockUserService) SetShouldFail(shouldFail bool, err error) {
	m.shouldFail = shouldFail
	m.failError = err
}

func (m *mockUserService) add(email, password string, role user.Role, active bool) *user.User {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	u := &user.User{ID: uuid.NewString(), Email: email, PasswordHash: string(hash), Role: role, IsActive: active}
	m.byID[u.ID] = u
	return u
}

func (m *mockUserService) FindByEmail(_ context.Context, email string) (*user.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, u := range m.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (m *mockUserService) GetByID(_ context.Context, id string) (*user.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	u, ok := m.byID[id]
	if !ok {
		return nil, user.ErrUserNotFound
	}
	return u, nil
}

func (m *mockUserService) Create(_ context.Context, dto user.CreateUserDTO) (*user.User, error) {
	if m.shouldFail {
		return nil, m.failError
	}
	for _, u := range m.byID {
		if u.Email == dto.Email {
			return nil, user.ErrDuplicateEmail()
		}
	}
	return m.add(dto.Email, dto.Password, user.Role(dto.Role), true), nil
}

var _ = Describe("Auth Service", func() {
	var (
		ctx     context.Context
		users   *mockUserService
		service *auth.Service
	)

	BeforeEach(func() {
		ctx = context.Background()
		users = newMockUserService()
		service = auth.NewService(users, logger.Discard())
	})

	Describe("Login", func() {
		It("returns the user for valid credentials", func() {
			existing := users.add("tech@parc.fr", "secret123", user.RoleTechnician, true)

			u, err := service.Login(ctx, auth.LoginDTO{Email: "tech@parc.fr", Password: "secret123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.ID).To(Equal(existing.ID))
		})

		It("uses the same error for unknown email, wrong password and inactive account", func() {
			users.add("tech@parc.fr", "secret123", user.RoleTechnician, true)
			users.add("off@parc.fr", "secret123", user.RoleUser, false)

			_, errUnknown := service.Login(ctx, auth.LoginDTO{Email: "nobody@parc.fr", Password: "secret123"})
			_, errWrong := service.Login(ctx, auth.LoginDTO{Email: "tech@parc.fr", Password: "nope"})
			_, errInactive := service.Login(ctx, auth.LoginDTO{Email: "off@parc.fr", Password: "secret123"})

			Expect(errUnknown).To(Equal(appErrors.ErrInvalidCredentials))
			Expect(errWrong).To(Equal(appErrors.ErrInvalidCredentials))
			Expect(errInactive).To(Equal(appErrors.ErrInvalidCredentials))
		})

		It("requires email and password", func() {
			_, err := service.Login(ctx, auth.LoginDTO{})
			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
		})

		It("surfaces lookup failures", func() {
			users.SetShouldFail(true, errors.New("db down"))
			_, err := service.Login(ctx, auth.LoginDTO{Email: "a@parc.fr", Password: "x"})
			Expect(err).To(MatchError("db down"))
		})
	})

	Describe("Register", func() {
		It("creates a plain user", func() {
			u, err := service.Register(ctx, auth.RegisterDTO{Email: "new@parc.fr", Password: "secret123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Role).To(Equal(user.RoleUser))
		})

		It("trims and lowercases the email before validating it", func() {
			u, err := service.Register(ctx, auth.RegisterDTO{Email: "  New@Parc.fr ", Password: "secret123"})
			Expect(err).NotTo(HaveOccurred())
			Expect(u.Email).To(Equal("new@parc.fr"))
		})

		It("rejects a taken email as a field error", func() {
			users.add("new@parc.fr", "secret123", user.RoleUser, true)

			_, err := service.Register(ctx, auth.RegisterDTO{Email: "new@parc.fr", Password: "secret123"})
			appErr, ok := appErrors.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.StatusCode).To(Equal(400))
			details := appErr.Details.(appErrors.ValidationErrors)
			Expect(details.Errors[0].Field).To(Equal("email"))
			Expect(details.Errors[0].Code).To(Equal(string(appErrors.ErrCodeDuplicateEmail)))
		})
	})

	Describe("CurrentUser", func() {
		It("rejects unknown and inactive users as unauthorized", func() {
			off := users.add("off@parc.fr", "secret123", user.RoleUser, false)

			_, err := service.CurrentUser(ctx, "missing")
			Expect(err).To(Equal(appErrors.ErrUnauthorized))

			_, err = service.CurrentUser(ctx, off.ID)
			Expect(err).To(Equal(appErrors.ErrUnauthorized))

			_, err = service.CurrentUser(ctx, "")
			Expect(err).To(Equal(appErrors.ErrUnauthorized))
		})
	})
})
