package postgres_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"github.com/evaltrack/evaltrack/pkg/domain"
	kerr "github.com/evaltrack/evaltrack/pkg/domain/errors"
	"github.com/evaltrack/evaltrack/pkg/domain/errors/dberrors"
	"github.com/evaltrack/evaltrack/pkg/domain/evaltrack/db/postgres/testenv"
	kpgexp "github.com/evaltrack/evaltrack/pkg/domain/experiment/db/postgres"
	kpgrun "github.com/evaltrack/evaltrack/pkg/domain/run/db/postgres"
	kpgtr "github.com/evaltrack/evaltrack/pkg/domain/testresult/db/postgres"
	kpgusr "github.com/evaltrack/evaltrack/pkg/domain/user/db/postgres"
	"github.com/evaltrack/evaltrack/pkg/utils/cmp"
	"github.com/evaltrack/evaltrack/pkg/utils/try"
)

func TestTestResult_RegisterBatch(t *testing.T) {
	poolBroaker := testenv.NewPoolBroaker(context.Background(), t)

	t.Run("a batch naming a foreign or unknown run persists nothing", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)

		users := kpgusr.New(pool)
		experiments := kpgexp.New(pool)
		runs := kpgrun.New(pool)
		testResults := kpgtr.New(pool)

		alice := try.To(users.Register(ctx, "alice@example.com", "hashed")).OrFatal(t)
		bob := try.To(users.Register(ctx, "bob@example.com", "hashed")).OrFatal(t)

		aliceExp := try.To(experiments.Register(
			ctx, alice.Id, domain.ExperimentParam{Name: "alice's"},
		)).OrFatal(t)
		aliceRun := try.To(runs.Register(
			ctx, alice.Id, domain.RunParam{ExperimentId: aliceExp.Id},
		)).OrFatal(t)

		bobExp := try.To(experiments.Register(
			ctx, bob.Id, domain.ExperimentParam{Name: "bob's"},
		)).OrFatal(t)
		bobRun := try.To(runs.Register(
			ctx, bob.Id, domain.RunParam{ExperimentId: bobExp.Id},
		)).OrFatal(t)

		unknownRunId := "run_00000000"
		batch := []domain.TestResultParam{
			{RunId: aliceRun.Id, TestCaseId: "tc_00000000", Name: "ok", Success: true},
			{RunId: bobRun.Id, TestCaseId: "tc_00000000", Name: "foreign", Success: true},
			{RunId: unknownRunId, TestCaseId: "tc_00000000", Name: "unknown", Success: true},
		}

		_, err := testResults.RegisterBatch(ctx, alice.Id, batch)
		missingRuns := dberrors.MissingRuns{}
		if !errors.As(err, &missingRuns) {
			t.Fatalf("unexpected error: %v", err)
		}
		wantMissing := []string{bobRun.Id, unknownRunId}
		sort.Strings(wantMissing)
		if !cmp.SliceEq(missingRuns.RunIds, wantMissing) {
			t.Errorf(
				"unmatch: denied run ids: (actual, expected) = (%v, %v)",
				missingRuns.RunIds, wantMissing,
			)
		}

		// nothing of the batch has landed, not even the authorized item.
		var count int
		if err := pool.QueryRow(
			ctx, `select count(*) from "test_results"`,
		).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("a denied batch left %d rows behind", count)
		}
	})

	t.Run("an authorized batch persists every item", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)

		users := kpgusr.New(pool)
		experiments := kpgexp.New(pool)
		runs := kpgrun.New(pool)
		testResults := kpgtr.New(pool)

		alice := try.To(users.Register(ctx, "alice@example.com", "hashed")).OrFatal(t)
		experiment := try.To(experiments.Register(
			ctx, alice.Id, domain.ExperimentParam{Name: "alice's"},
		)).OrFatal(t)
		run1 := try.To(runs.Register(
			ctx, alice.Id, domain.RunParam{ExperimentId: experiment.Id},
		)).OrFatal(t)
		run2 := try.To(runs.Register(
			ctx, alice.Id, domain.RunParam{ExperimentId: experiment.Id},
		)).OrFatal(t)

		batch := []domain.TestResultParam{
			{RunId: run1.Id, TestCaseId: "tc_00000000", Name: "first", Success: true},
			{RunId: run2.Id, TestCaseId: "tc_00000000", Name: "second", Success: false},
			{RunId: run1.Id, TestCaseId: "tc_11111111", Name: "third", Success: true},
		}

		registered := try.To(testResults.RegisterBatch(ctx, alice.Id, batch)).OrFatal(t)
		if len(registered) != len(batch) {
			t.Fatalf("unmatch: registered test results: %+v", registered)
		}
		for nth, tr := range registered {
			got := try.To(testResults.Get(ctx, tr.Id, alice.Id)).OrFatal(t)
			if !got.Equal(tr) {
				t.Errorf(
					"unmatch: %dth test result: (actual, expected) = (%+v, %+v)",
					nth, got, tr,
				)
			}
		}
	})

	t.Run("a single register against a foreign run writes nothing", func(t *testing.T) {
		ctx := context.Background()
		pool := poolBroaker.GetPool(ctx, t)

		users := kpgusr.New(pool)
		experiments := kpgexp.New(pool)
		runs := kpgrun.New(pool)
		testResults := kpgtr.New(pool)

		alice := try.To(users.Register(ctx, "alice@example.com", "hashed")).OrFatal(t)
		bob := try.To(users.Register(ctx, "bob@example.com", "hashed")).OrFatal(t)

		bobExp := try.To(experiments.Register(
			ctx, bob.Id, domain.ExperimentParam{Name: "bob's"},
		)).OrFatal(t)
		bobRun := try.To(runs.Register(
			ctx, bob.Id, domain.RunParam{ExperimentId: bobExp.Id},
		)).OrFatal(t)

		_, err := testResults.Register(ctx, alice.Id, domain.TestResultParam{
			RunId: bobRun.Id, TestCaseId: "tc_00000000", Name: "sneaky", Success: true,
		})
		if !errors.Is(err, kerr.ErrMissing) {
			t.Errorf("unexpected error: %v", err)
		}

		var count int
		if err := pool.QueryRow(
			ctx, `select count(*) from "test_results"`,
		).Scan(&count); err != nil {
			t.Fatal(err)
		}
		if count != 0 {
			t.Errorf("a denied register left %d rows behind", count)
		}
	})
}
