package postgres

import (
	"github.com/evaltrack/evaltrack/pkg/domain"
)

// RowScanner is the part of pgx.Row / pgx.Rows used by the scan helpers.
type RowScanner interface {
	Scan(dest ...any) error
}

// Column lists matching the Scan* helpers below. Keep them in sync.
const (
	ExperimentColumns = `"id", "name", "description", "user_id", "config", "created_at", "updated_at"`

	RunColumns = `"id", "experiment_id", "git_commit", "status", "hyperparameters", "started_at", "finished_at", "created_at"`

	TestCaseColumns = `"id", "name", "type", "input", "expected_output", "context", "retrieval_context", "additional_metadata", "user_id", "is_global", "created_at", "updated_at"`

	TestResultColumns = `"id", "run_id", "test_case_id", "name", "success", "conversational", "multimodal", "input", "actual_output", "expected_output", "context", "retrieval_context", "metrics_data", "additional_metadata", "executed_at"`

	UserColumns = `"id", "email", "hashed_password", "is_active", "is_superuser", "is_verified", "created_at", "updated_at"`
)

func ScanExperiment(r RowScanner) (*domain.Experiment, error) {
	var e domain.Experiment
	var config []byte
	if err := r.Scan(
		&e.Id, &e.Name, &e.Description, &e.UserId, &config,
		&e.CreatedAt, &e.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(config, &e.Config); err != nil {
		return nil, err
	}
	return &e, nil
}

func ScanRun(r RowScanner) (*domain.Run, error) {
	var run domain.Run
	var status string
	var hyperparameters []byte
	if err := r.Scan(
		&run.Id, &run.ExperimentId, &run.GitCommit, &status, &hyperparameters,
		&run.StartedAt, &run.FinishedAt, &run.CreatedAt,
	); err != nil {
		return nil, err
	}
	s, err := domain.AsRunStatus(status)
	if err != nil {
		return nil, err
	}
	run.Status = s
	if err := UnmarshalJSONB(hyperparameters, &run.Hyperparameters); err != nil {
		return nil, err
	}
	return &run, nil
}

func ScanTestCase(r RowScanner) (*domain.TestCase, error) {
	var tc domain.TestCase
	var typ string
	var input, context, retrievalContext, additionalMetadata []byte
	if err := r.Scan(
		&tc.Id, &tc.Name, &typ, &input, &tc.ExpectedOutput,
		&context, &retrievalContext, &additionalMetadata,
		&tc.UserId, &tc.IsGlobal, &tc.CreatedAt, &tc.UpdatedAt,
	); err != nil {
		return nil, err
	}
	t, err := domain.AsTestCaseType(typ)
	if err != nil {
		return nil, err
	}
	tc.Type = t
	if err := UnmarshalJSONB(input, &tc.Input); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(context, &tc.Context); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(retrievalContext, &tc.RetrievalContext); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(additionalMetadata, &tc.AdditionalMetadata); err != nil {
		return nil, err
	}
	return &tc, nil
}

func ScanTestResult(r RowScanner) (*domain.TestResult, error) {
	var tr domain.TestResult
	var input, actualOutput, context, retrievalContext, metricsData, additionalMetadata []byte
	if err := r.Scan(
		&tr.Id, &tr.RunId, &tr.TestCaseId, &tr.Name,
		&tr.Success, &tr.Conversational, &tr.Multimodal,
		&input, &actualOutput, &tr.ExpectedOutput,
		&context, &retrievalContext, &metricsData, &additionalMetadata,
		&tr.ExecutedAt,
	); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(input, &tr.Input); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(actualOutput, &tr.ActualOutput); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(context, &tr.Context); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(retrievalContext, &tr.RetrievalContext); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(metricsData, &tr.MetricsData); err != nil {
		return nil, err
	}
	if err := UnmarshalJSONB(additionalMetadata, &tr.AdditionalMetadata); err != nil {
		return nil, err
	}
	return &tr, nil
}

func ScanUser(r RowScanner) (*domain.User, error) {
	var u domain.User
	if err := r.Scan(
		&u.Id, &u.Email, &u.HashedPassword,
		&u.IsActive, &u.IsSuperuser, &u.IsVerified,
		&u.CreatedAt, &u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
