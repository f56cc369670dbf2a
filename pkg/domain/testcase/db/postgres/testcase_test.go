package postgres_test

import (
	"context"
	"errors"
	"testing"

	"github.com/evaltrack/evaltrack/pkg/domain"
	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	"github.com/evaltrack/evaltrack/pkg/domain/evaltrack/db/postgres/testenv"
	kpgtc "github.com/evaltrack/evaltrack/pkg/domain/testcase/db/postgres"
	kpgusr "github.com/evaltrack/evaltrack/pkg/domain/user/db/postgres"
	"github.com/evaltrack/evaltrack/pkg/utils/cmp"
	"github.com/evaltrack/evaltrack/pkg/utils/pointer"
	"github.com/evaltrack/evaltrack/pkg/utils/try"
)

func TestTestCase_Scope(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	ctx := context.Background()
	pool := poolBroaker.GetPool(ctx, t)

	users := kpgusr.New(pool)
	testCases := kpgtc.New(pool)

	alice := try.To(users.Register(ctx, "alice@example.com", "hashed")).OrFatal(t)
	bob := try.To(users.Register(ctx, "bob@example.com", "hashed")).OrFatal(t)

	private := try.To(testCases.Register(
		ctx, alice.Id, domain.TestCaseParam{
			Name: "alice private", Type: domain.LLM, ExpectedOutput: "42",
		},
	)).OrFatal(t)
	global := try.To(testCases.Register(
		ctx, bob.Id, domain.TestCaseParam{
			Name: "bob global", Type: domain.LLM, ExpectedOutput: "42", IsGlobal: true,
		},
	)).OrFatal(t)

	t.Run("the owner can read their own test case", func(t *testing.T) {
		got := try.To(testCases.Get(ctx, private.Id, alice.Id)).OrFatal(t)
		if !got.Equal(*private) {
			t.Errorf("unmatch: (actual, expected) = (%+v, %+v)", got, private)
		}
	})

	t.Run("other users cannot read a private test case", func(t *testing.T) {
		if _, err := testCases.Get(ctx, private.Id, bob.Id); !errors.Is(err, kerr.ErrMissing) {
			t.Errorf("private test case leaked to another user: %v", err)
		}
	})

	t.Run("anyone can read a global test case", func(t *testing.T) {
		got := try.To(testCases.Get(ctx, global.Id, alice.Id)).OrFatal(t)
		if !got.Equal(*global) {
			t.Errorf("unmatch: (actual, expected) = (%+v, %+v)", got, global)
		}
	})

	t.Run("only the owner can write a global test case", func(t *testing.T) {
		delta := domain.TestCaseDelta{Name: pointer.Ref("hijacked")}
		if _, err := testCases.Update(ctx, global.Id, alice.Id, delta); !errors.Is(err, kerr.ErrMissing) {
			t.Errorf("non-owner update of a global test case should be denied: %v", err)
		}
		if _, err := testCases.Delete(ctx, global.Id, alice.Id); !errors.Is(err, kerr.ErrMissing) {
			t.Errorf("non-owner delete of a global test case should be denied: %v", err)
		}

		// the record is untouched, and the owner still can write it.
		updated := try.To(testCases.Update(
			ctx, global.Id, bob.Id, domain.TestCaseDelta{Name: pointer.Ref("bob global v2")},
		)).OrFatal(t)
		if updated.Name != "bob global v2" {
			t.Errorf("unmatch: name after owner update: %s", updated.Name)
		}
	})

	t.Run("Find lists own test cases only, FindGlobal lists global ones", func(t *testing.T) {
		own := try.To(testCases.Find(ctx, alice.Id)).OrFatal(t)
		ownIds := []string{}
		for _, tc := range own {
			ownIds = append(ownIds, tc.Id)
		}
		if !cmp.SliceEq(ownIds, []string{private.Id}) {
			t.Errorf("unmatch: alice's own test cases: %v", ownIds)
		}

		globals := try.To(testCases.FindGlobal(ctx)).OrFatal(t)
		globalIds := []string{}
		for _, tc := range globals {
			globalIds = append(globalIds, tc.Id)
		}
		if !cmp.SliceEq(globalIds, []string{global.Id}) {
			t.Errorf("unmatch: global test cases: %v", globalIds)
		}
	})
}
