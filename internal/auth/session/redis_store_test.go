package session_test

import (
	"context"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/frahmantamala/parc-info/internal/auth/session"
	"github.com/go-redis/redis/v8"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("RedisStore", func() {
	const prefix = "parc:sess:"

	var (
		ctx    context.Context
		server *miniredis.Miniredis
		client *redis.Client
		store  *session.RedisStore
	)

	BeforeEach(func() {
		ctx = context.Background()
		server = miniredis.RunT(GinkgoT())
		client = redis.NewClient(&redis.Options{Addr: server.Addr()})
		DeferCleanup(client.Close)
		store = session.NewRedisStore(client, prefix)
	})

	newSession := func(id string, ttl time.Duration) *session.Session {
		now := time.Now().UTC()
		return &session.Session{ID: id, UserID: "user-1", CreatedAt: now, ExpiresAt: now.Add(ttl)}
	}

	It("round trips a session under the prefixed key", func() {
		Expect(store.Save(ctx, newSession("sid-1", time.Hour))).To(Succeed())

		Expect(server.Exists(prefix + "sid-1")).To(BeTrue())
		Expect(server.Exists("sid-1")).To(BeFalse())

		got, err := store.Get(ctx, "sid-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).NotTo(BeNil())
		Expect(got.ID).To(Equal("sid-1"))
		Expect(got.UserID).To(Equal("user-1"))
	})

	It("sets the key TTL from the expiry", func() {
		Expect(store.Save(ctx, newSession("sid-1", time.Hour))).To(Succeed())

		Expect(server.TTL(prefix + "sid-1")).To(BeNumerically("~", time.Hour, time.Minute))
	})

	It("lets redis drop the key once the TTL has passed", func() {
		Expect(store.Save(ctx, newSession("sid-1", time.Minute))).To(Succeed())
		server.FastForward(2 * time.Minute)

		got, err := store.Get(ctx, "sid-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNil())
	})

	It("deletes the key when saving an already expired session", func() {
		Expect(store.Save(ctx, newSession("sid-1", time.Hour))).To(Succeed())

		Expect(store.Save(ctx, newSession("sid-1", -time.Second))).To(Succeed())
		Expect(server.Exists(prefix + "sid-1")).To(BeFalse())
	})

	It("returns nil for an unknown id", func() {
		got, err := store.Get(ctx, "missing")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNil())
	})

	It("destroys a session", func() {
		Expect(store.Save(ctx, newSession("sid-1", time.Hour))).To(Succeed())
		Expect(store.Destroy(ctx, "sid-1")).To(Succeed())

		got, err := store.Get(ctx, "sid-1")
		Expect(err).NotTo(HaveOccurred())
		Expect(got).To(BeNil())
	})

	It("surfaces connection errors", func() {
		down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
		DeferCleanup(down.Close)
		_, err := session.NewRedisStore(down, prefix).Get(ctx, "sid-1")
		Expect(err).To(MatchError(ContainSubstring("get session")))
	})
})
