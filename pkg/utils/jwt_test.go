package utils

import (
	"errors"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("JWTManager", func() {
	var manager *JWTManager

	BeforeEach(func() {
		manager = NewJWTManager("test-secret", time.Hour)
	})

	It("round-trips the identity claims", func() {
		token, issued, err := manager.CreateToken(1234567890123456789, "admin", "Ana", "ana@example.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(issued.ID).NotTo(BeEmpty())

		claims, err := manager.ValidateToken(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.UserID).To(Equal(int64(1234567890123456789)))
		Expect(claims.Role).To(Equal("admin"))
		Expect(claims.ID).To(Equal(issued.ID))
		Expect(claims.Remaining(time.Now())).To(BeNumerically(">", 59*time.Minute))
	})

	It("issues a distinct jti per token", func() {
		_, a, err := manager.CreateToken(1, "admin", "", "")
		Expect(err).NotTo(HaveOccurred())
		_, b, err := manager.CreateToken(1, "admin", "", "")
		Expect(err).NotTo(HaveOccurred())
		Expect(a.ID).NotTo(Equal(b.ID))
	})

	It("reports expired tokens", func() {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, _, err := expired.CreateToken(1, "admin", "", "")
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.ValidateToken(token)
		Expect(err).To(MatchError(ErrTokenExpired))
		Expect(errors.Is(err, ErrUnauthorized)).To(BeTrue())
	})

	It("reports malformed tokens", func() {
		_, err := manager.ValidateToken("not-a-token")
		Expect(err).To(MatchError(ErrTokenMalformed))
	})

	It("rejects tokens signed with another secret", func() {
		other := NewJWTManager("other-secret", time.Hour)
		token, _, err := other.CreateToken(1, "admin", "", "")
		Expect(err).NotTo(HaveOccurred())

		_, err = manager.ValidateToken(token)
		Expect(err).To(MatchError(ErrTokenInvalid))
	})
})

var _ = Describe("password hashing", func() {
	It("accepts the original password only", func() {
		hash, err := HashPassword("s3cret!")
		Expect(err).NotTo(HaveOccurred())
		Expect(ComparePasswords(hash, "s3cret!")).To(Succeed())
		Expect(ComparePasswords(hash, "wrong")).NotTo(Succeed())
	})
})
