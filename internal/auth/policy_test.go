package auth_test

import (
	"net/http"

	"github.com/frahmantamala/parc-info/internal/auth"
	"github.com/frahmantamala/parc-info/internal/user"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Policy", func() {
	policy := auth.DefaultPolicy()

	DescribeTable("capability table",
		func(role user.Role, method, pattern string, allowed bool) {
			Expect(policy.Authorize(role, method, pattern)).To(Equal(allowed))
		},
		Entry("users are admin only", user.RoleTechnician, http.MethodGet, "/api/users", false),
		Entry("admin lists users", user.RoleAdmin, http.MethodGet, "/api/users", true),
		Entry("users by id are admin only", user.RoleUser, http.MethodPut, "/api/users/{id}", false),
		Entry("anyone reads alerts", user.RoleUser, http.MethodGet, "/api/alerts", true),
		Entry("technician creates alerts", user.RoleTechnician, http.MethodPost, "/api/alerts", true),
		Entry("plain user cannot create alerts", user.RoleUser, http.MethodPost, "/api/alerts", false),
		Entry("technician cannot delete alerts", user.RoleTechnician, http.MethodDelete, "/api/alerts/{id}", false),
		Entry("admin deletes alerts", user.RoleAdmin, http.MethodDelete, "/api/alerts/{id}", true),
		Entry("technician updates maintenance", user.RoleTechnician, http.MethodPut, "/api/maintenance/{id}", true),
		Entry("technician cannot delete maintenance", user.RoleTechnician, http.MethodDelete, "/api/maintenance/{id}", false),
		Entry("plain user cannot assign technicians", user.RoleUser, http.MethodPost, "/api/maintenance/{id}/technicians/{technicianId}", false),
		Entry("technician unlinks equipment", user.RoleTechnician, http.MethodDelete, "/api/maintenance/{id}/equipment/{equipmentId}", true),
		Entry("anyone lists maintenance technicians", user.RoleUser, http.MethodGet, "/api/maintenance/{id}/technicians", true),
		Entry("plain user cannot import", user.RoleUser, http.MethodPost, "/api/settings/import", false),
		Entry("plain user exports", user.RoleUser, http.MethodGet, "/api/settings/export/{type}", true),
		Entry("unlisted routes are open", user.RoleUser, http.MethodDelete, "/api/equipment/{id}", true),
		Entry("mounted patterns are folded", user.RoleUser, http.MethodGet, "/api/*/users/", false),
	)
})
