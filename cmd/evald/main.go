package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/evaltrack/evaltrack/cmd/evald/handlers"
	"github.com/evaltrack/evaltrack/pkg/auth"
	kcb "github.com/evaltrack/evaltrack/pkg/configs/backend"
	dbInterface "github.com/evaltrack/evaltrack/pkg/domain/evaltrack/db"
	kpg "github.com/evaltrack/evaltrack/pkg/domain/evaltrack/db/postgres"
	"github.com/evaltrack/evaltrack/pkg/utils/echoutil"
	"github.com/evaltrack/evaltrack/pkg/utils/filewatch"
)

func main() {

	configPath := flag.String("config-path", "", "backend config path")
	loglevel := flag.String("loglevel", "info", "log level. debug|info|warn|error|off")
	pcert := flag.String("cert", "", "certification file for TLS")
	pkey := flag.String("certkey", "", "key of certification file for TLS")
	flag.Parse()

	e := echo.New()
	e.Pre(middleware.AddTrailingSlash())

	// set log
	echoutil.SetLevel(e, *loglevel)
	e.HTTPErrorHandler = func(err error, ctx echo.Context) {
		e.DefaultHTTPErrorHandler(err, ctx)
		e.Logger.Error(err)
	}
	e.Use(echoutil.LogHandlerFunc)

	// read configfile
	conf, err := kcb.LoadBackendConfig(*configPath)
	if err != nil {
		log.Fatalf("can not read configration: %s", err)
	}

	{
		// quit for restart when the config file is rewritten.
		ctx, cancel, err := filewatch.UntilModifyContext(context.Background(), *configPath)
		if err != nil {
			log.Fatalf("can not watch configration: %s", err)
		}
		defer cancel()
		context.AfterFunc(ctx, func() {
			log.Println("config file is updated. quit to restart server.")
			graceful, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := e.Shutdown(graceful); err != nil {
				log.Printf("error on shutdown by config update: %s", err)
			}
		})
	}

	if 0 < len(conf.AllowOrigins) {
		e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins:     conf.AllowOrigins,
			AllowCredentials: true,
		}))
	}

	// get dbaccesor
	ctx := context.Background()
	db, err := getDBAccesor(ctx, conf.Database)
	if err != nil {
		log.Fatalf("can not connect database: %s", err.Error())
	}
	defer db.Close()

	if su := conf.Superuser; su != nil {
		hashed, err := auth.HashPassword(su.Password)
		if err != nil {
			log.Fatalf("can not hash superuser password: %s", err)
		}
		if _, err := db.Users().EnsureSuperuser(ctx, su.Email, hashed); err != nil {
			log.Fatalf("can not bootstrap superuser %s: %s", su.Email, err)
		}
		log.Printf("superuser is ready: %s", su.Email)
	}

	jwt := auth.NewJWT(db.Users(), conf.Auth)

	// handlers
	e.GET("/health", handlers.HealthHandler())

	api := e.Group("/api")
	api.POST("/auth/register/", handlers.UserRegisterHandler(db.Users()))
	api.POST("/auth/jwt/login/", handlers.UserLoginHandler(db.Users(), jwt))

	authed := api.Group("", auth.Middleware(jwt))
	authed.POST("/auth/jwt/logout/", handlers.UserLogoutHandler(jwt))
	authed.GET("/users/me/", handlers.UserMeHandler())
	authed.DELETE("/users/by-email/:email/", handlers.UserDeleteByEmailHandler(db.Users(), "email"))

	{
		authed.POST("/experiments/", handlers.ExperimentCreateHandler(db.Experiments()))
		authed.GET("/experiments/", handlers.ExperimentFindHandler(db.Experiments()))
		authed.GET("/experiments/:experimentId/", handlers.ExperimentGetHandler(db.Experiments(), "experimentId"))
		authed.PUT("/experiments/:experimentId/", handlers.ExperimentUpdateHandler(db.Experiments(), "experimentId"))
		authed.DELETE("/experiments/:experimentId/", handlers.ExperimentDeleteHandler(db.Experiments(), "experimentId"))
	}

	{
		authed.POST("/runs/", handlers.RunCreateHandler(db.Runs()))
		authed.GET("/runs/:runId/", handlers.RunGetHandler(db.Runs(), "runId"))
		authed.PUT("/runs/:runId/", handlers.RunUpdateHandler(db.Runs(), "runId"))
		authed.DELETE("/runs/:runId/", handlers.RunDeleteHandler(db.Runs(), "runId"))
	}

	{
		authed.POST("/test-cases/", handlers.TestCaseCreateHandler(db.TestCases()))
		authed.GET("/test-cases/", handlers.TestCaseFindHandler(db.TestCases()))
		authed.GET("/test-cases/global/", handlers.TestCaseFindGlobalHandler(db.TestCases()))
		authed.GET("/test-cases/type/:testCaseType/", handlers.TestCaseFindByTypeHandler(db.TestCases(), "testCaseType"))
		authed.GET("/test-cases/:testCaseId/", handlers.TestCaseGetHandler(db.TestCases(), "testCaseId"))
		authed.PUT("/test-cases/:testCaseId/", handlers.TestCaseUpdateHandler(db.TestCases(), "testCaseId"))
		authed.DELETE("/test-cases/:testCaseId/", handlers.TestCaseDeleteHandler(db.TestCases(), "testCaseId"))
	}

	{
		authed.POST("/test-results/", handlers.TestResultCreateHandler(db.TestResults()))
		authed.POST("/test-results/batch/", handlers.TestResultCreateBatchHandler(db.TestResults()))
		authed.GET("/test-results/:testResultId/", handlers.TestResultGetHandler(db.TestResults(), "testResultId"))
	}

	log.Println("registred routes:")
	for _, r := range e.Routes() {
		log.Println(r.Method, r.Path)
	}

	cert, key := *pcert, *pkey
	if cert != "" && key != "" {
		e.Logger.Fatal(e.StartTLS(":"+conf.Port, cert, key))
	} else {
		e.Logger.Fatal(e.Start(":" + conf.Port))
	}
}

func getDBAccesor(ctx context.Context, dburi string) (dbInterface.Database, error) {
	return kpg.New(ctx, dburi)
}
