package nullable_test

import (
	"encoding/json"
	"testing"

	"github.com/frahmantamala/parc-info/internal/core/common/nullable"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestNullable(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Nullable Suite")
}

type patch struct {
	AssignedTo nullable.Value[string] `json:"assignedTo"`
	MaxUsers   nullable.Value[int]    `json:"maxUsers"`
}

var _ = Describe("Value", func() {
	It("tells absent, null and present apart", func() {
		var p patch
		Expect(json.Unmarshal([]byte(`{"assignedTo":null,"maxUsers":5}`), &p)).To(Succeed())
		Expect(p.AssignedTo.Set).To(BeTrue())
		Expect(p.AssignedTo.IsNull()).To(BeTrue())
		Expect(*p.MaxUsers.Ptr).To(Equal(5))

		var empty patch
		Expect(json.Unmarshal([]byte(`{}`), &empty)).To(Succeed())
		Expect(empty.AssignedTo.Set).To(BeFalse())
	})

	It("applies only present fields", func() {
		current := "emp-1"
		dst := &current

		nullable.Value[string]{}.Apply(&dst)
		Expect(*dst).To(Equal("emp-1"))

		nullable.Of("emp-2").Apply(&dst)
		Expect(*dst).To(Equal("emp-2"))

		nullable.Null[string]().Apply(&dst)
		Expect(dst).To(BeNil())
	})

	It("rejects a value of the wrong type", func() {
		var p patch
		Expect(json.Unmarshal([]byte(`{"maxUsers":"many"}`), &p)).NotTo(Succeed())
	})
})
