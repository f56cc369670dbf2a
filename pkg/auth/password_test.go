package auth_test

import (
	"errors"
	"testing"

	"github.com/evaltrack/evaltrack/pkg/auth"
	"github.com/evaltrack/evaltrack/pkg/utils/try"
)

func TestValidatePassword(t *testing.T) {
	for password, wantErr := range map[string]error{
		"":         auth.ErrPasswordTooShort,
		"hunter2":  auth.ErrPasswordTooShort,
		"hunter22": nil,
		"correct horse battery staple": nil,
	} {
		t.Run("password "+password, func(t *testing.T) {
			if err := auth.ValidatePassword(password); !errors.Is(err, wantErr) {
				t.Errorf("unmatch: error for %q: (actual, expected) = (%v, %v)", password, err, wantErr)
			}
		})
	}
}

func TestHashPassword(t *testing.T) {

	t.Run("a hash verifies its own password and nothing else", func(t *testing.T) {
		hashed := try.To(auth.HashPassword("correct horse")).OrFatal(t)

		if hashed == "correct horse" {
			t.Error("password should not be stored cleartext")
		}
		if !auth.VerifyPassword(hashed, "correct horse") {
			t.Error("the original password should verify")
		}
		if auth.VerifyPassword(hashed, "wrong horse") {
			t.Error("a different password should not verify")
		}
	})

	t.Run("hashing is salted: same password, different digests", func(t *testing.T) {
		a := try.To(auth.HashPassword("correct horse")).OrFatal(t)
		b := try.To(auth.HashPassword("correct horse")).OrFatal(t)
		if a == b {
			t.Error("two hashes of one password should differ")
		}
	})
}
