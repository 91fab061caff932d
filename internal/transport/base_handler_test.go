package transport_test

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/frahmantamala/parc-info/internal"
	"github.com/frahmantamala/parc-info/internal/transport"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestTransport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Transport Suite")
}

var errUnset = &internal.AppError{Type: internal.ErrorTypeInternal, Code: "UNSET", Message: "no status"}

var _ = Describe("HandleServiceError", func() {
	var h *transport.BaseHandler

	BeforeEach(func() {
		h = transport.NewBaseHandler(slog.New(slog.NewTextHandler(io.Discard, nil)))
	})

	decode := func(rec *httptest.ResponseRecorder) internal.Response {
		var body internal.Response
		Expect(json.NewDecoder(rec.Body).Decode(&body)).To(Succeed())
		return body
	}

	It("answers 500 for an error without status and leaves the value untouched", func() {
		rec := httptest.NewRecorder()
		h.HandleServiceError(rec, errUnset)

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(errUnset.StatusCode).To(BeZero())

		rec = httptest.NewRecorder()
		h.HandleServiceError(rec, errUnset)
		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
	})

	It("writes client errors as they are", func() {
		rec := httptest.NewRecorder()
		h.HandleServiceError(rec, internal.NewNotFoundError("ticket not found", internal.ErrCodeTicketNotFound))

		Expect(rec.Code).To(Equal(http.StatusNotFound))
		Expect(decode(rec).Error.Message).To(Equal("ticket not found"))
	})

	It("hides the message of plain errors", func() {
		rec := httptest.NewRecorder()
		h.HandleServiceError(rec, errors.New("pq: connection refused"))

		Expect(rec.Code).To(Equal(http.StatusInternalServerError))
		Expect(decode(rec).Error.Message).To(Equal("internal server error"))
	})
})
