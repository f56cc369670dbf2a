package postgres

import (
	"context"
	_ "embed"

	"github.com/jackc/pgx/v4/pgxpool"

	dbInterface "github.com/evaltrack/evaltrack/pkg/domain/evaltrack/db"
	expdb "github.com/evaltrack/evaltrack/pkg/domain/experiment/db"
	kpgexp "github.com/evaltrack/evaltrack/pkg/domain/experiment/db/postgres"
	rundb "github.com/evaltrack/evaltrack/pkg/domain/run/db"
	kpgrun "github.com/evaltrack/evaltrack/pkg/domain/run/db/postgres"
	tcdb "github.com/evaltrack/evaltrack/pkg/domain/testcase/db"
	kpgtc "github.com/evaltrack/evaltrack/pkg/domain/testcase/db/postgres"
	trdb "github.com/evaltrack/evaltrack/pkg/domain/testresult/db"
	kpgtr "github.com/evaltrack/evaltrack/pkg/domain/testresult/db/postgres"
	usrdb "github.com/evaltrack/evaltrack/pkg/domain/user/db"
	kpgusr "github.com/evaltrack/evaltrack/pkg/domain/user/db/postgres"
)

// Schema is the DDL for every table this database uses. It is
// idempotent; New applies it on every connect.
//
//go:embed schema.sql
var Schema string

type evalDBPostgres struct {
	pool        *pgxpool.Pool
	experiments expdb.ExperimentInterface
	runs        rundb.RunInterface
	testCases   tcdb.TestCaseInterface
	testResults trdb.TestResultInterface
	users       usrdb.UserInterface
}

// New connects to postgres at url, brings the schema up to date and
// returns the Database backed by it.
func New(ctx context.Context, url string) (dbInterface.Database, error) {
	pool, err := pgxpool.Connect(ctx, url)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, Schema); err != nil {
		pool.Close()
		return nil, err
	}

	return &evalDBPostgres{
		pool:        pool,
		experiments: kpgexp.New(pool),
		runs:        kpgrun.New(pool),
		testCases:   kpgtc.New(pool),
		testResults: kpgtr.New(pool),
		users:       kpgusr.New(pool),
	}, nil
}

func (d *evalDBPostgres) Experiments() expdb.ExperimentInterface {
	return d.experiments
}

func (d *evalDBPostgres) Runs() rundb.RunInterface {
	return d.runs
}

func (d *evalDBPostgres) TestCases() tcdb.TestCaseInterface {
	return d.testCases
}

func (d *evalDBPostgres) TestResults() trdb.TestResultInterface {
	return d.testResults
}

func (d *evalDBPostgres) Users() usrdb.UserInterface {
	return d.users
}

func (d *evalDBPostgres) Close() error {
	d.pool.Close()
	return nil
}
