package internal_test

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"testing"

	errors "github.com/frahmantamala/parc-info/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestInternal(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Internal Suite")
}

var _ = Describe("AppError", func() {
	It("maps each constructor to its status", func() {
		Expect(errors.NewValidationError("bad", errors.ErrCodeInvalidBody).StatusCode).To(Equal(http.StatusBadRequest))
		Expect(errors.NewNotFoundError("gone", errors.ErrCodeUserNotFound).StatusCode).To(Equal(http.StatusNotFound))
		Expect(errors.NewConflictError("dup", errors.ErrCodeDuplicateEmail).StatusCode).To(Equal(http.StatusConflict))
		Expect(errors.ErrForbidden.StatusCode).To(Equal(http.StatusForbidden))
		Expect(errors.NewInternalError("boom", nil).StatusCode).To(Equal(http.StatusInternalServerError))
	})

	It("does not mutate sentinels when a cause is attached", func() {
		cause := stderrors.New("db down")
		wrapped := errors.ErrUnauthorized.WithCause(cause)

		Expect(stderrors.Is(wrapped, cause)).To(BeTrue())
		Expect(errors.ErrUnauthorized.Cause).To(BeNil())
	})

	It("uses the field messages for validation errors", func() {
		err := errors.NewValidationFieldError("email", "email is required", errors.ErrCodeValidationFailed)
		Expect(err.Error()).To(Equal("email is required"))

		multi := err.WithDetails(errors.ValidationErrors{Errors: []errors.ValidationError{
			{Field: "email", Message: "email is required"},
			{Field: "password", Message: "password is too short"},
		}})
		Expect(multi.GetDetailedMessage()).To(Equal("email is required; password is too short"))
	})

	It("keeps the cause out of the JSON body", func() {
		_, body := errors.NewInternalError("failed to save", stderrors.New("pq: secret")).ToHTTPResponse()
		raw, err := json.Marshal(body)
		Expect(err).NotTo(HaveOccurred())
		Expect(string(raw)).To(ContainSubstring(`"code":"INTERNAL_ERROR"`))
		Expect(string(raw)).NotTo(ContainSubstring("secret"))
	})

	It("finds wrapped app errors", func() {
		appErr, ok := errors.IsAppError(stderrors.Join(stderrors.New("x"), errors.ErrForbidden))
		Expect(ok).To(BeTrue())
		Expect(appErr.Code).To(Equal(errors.ErrCodeForbidden))
	})
})

var _ = Describe("request context", func() {
	It("is anonymous by default", func() {
		Expect(errors.UserIDFromContext(context.Background())).To(BeEmpty())
		Expect(errors.RoleFromContext(context.Background())).To(BeEmpty())
	})

	It("carries the caller", func() {
		ctx := errors.ContextWithUser(context.Background(), "u1", "technicien")
		Expect(errors.UserIDFromContext(ctx)).To(Equal("u1"))
		Expect(errors.RoleFromContext(ctx)).To(Equal("technicien"))

		ctx = errors.ContextWithUserID(ctx, "u2")
		Expect(errors.UserIDFromContext(ctx)).To(Equal("u2"))
		Expect(errors.RoleFromContext(ctx)).To(Equal("technicien"))
	})
})
