package db

import (
	expdb "github.com/evaltrack/evaltrack/pkg/domain/experiment/db"
	rundb "github.com/evaltrack/evaltrack/pkg/domain/run/db"
	tcdb "github.com/evaltrack/evaltrack/pkg/domain/testcase/db"
	trdb "github.com/evaltrack/evaltrack/pkg/domain/testresult/db"
	usrdb "github.com/evaltrack/evaltrack/pkg/domain/user/db"
)

// Database bundles the per-entity persistence interfaces.
type Database interface {
	Experiments() expdb.ExperimentInterface
	Runs() rundb.RunInterface
	TestCases() tcdb.TestCaseInterface
	TestResults() trdb.TestResultInterface
	Users() usrdb.UserInterface
	Close() error
}
