// Package api contains all endpoints available
package api

import (
	"bitwise74/drive-api/db"
	"bitwise74/drive-api/middleware"
	"bitwise74/drive-api/security"
	"bitwise74/drive-api/service"
	"bitwise74/drive-api/storage"
	"fmt"
	"time"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/gorm"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	DB       *gorm.DB
	Router   *gin.Engine
	Argon    *security.ArgonHash
	Tokens   *security.Tokens
	Sessions *service.Sessions
	Storage  storage.Storage
}

func NewRouter() (*API, error) {
	a := &API{}

	db, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}
	a.DB = db

	makeLogger()

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{"http://localhost:5173"},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetUint("userID"); v != 0 {
					fields = append(fields, zap.Uint("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true
	a.Router.MaxMultipartMemory = 5 << 20

	a.Argon = security.NewArgon()
	a.Tokens = security.NewTokens(
		[]byte(viper.GetString("jwt.secret")),
		viper.GetDuration("jwt.access_ttl"),
	)
	a.Sessions = service.NewSessions(db, viper.GetDuration("jwt.refresh_ttl"))

	store, err := storage.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage backend, %w", err)
	}
	a.Storage = store

	jwt := middleware.NewJWTMiddleware(db, a.Tokens)
	maxUploadSize := viper.GetInt64("upload.max_size")

	main := router.Group("/api")
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)

		// HEAD /api/validate		-> Validates an access token
		main.HEAD("/validate", jwt, a.Validate)
	}

	auth := main.Group("/auth", middleware.BodySizeLimiter(1<<20))
	{
		// POST /api/auth/register 	-> Registers a new user
		auth.POST("/register", a.AuthRegister)

		// POST /api/auth/login 	-> Logs in a user and returns a token pair
		auth.POST("/login", a.AuthLogin)

		// POST /api/auth/refresh 	-> Rotates a refresh token for a new pair
		auth.POST("/refresh", a.AuthRefresh)
	}

	users := main.Group("/users", middleware.BodySizeLimiter(1<<20))
	{
		// GET /api/users		-> Returns the profile of the current user
		users.GET("", jwt, a.UserFetch)
	}

	files := main.Group("/files")
	{
		// GET /api/files 		-> Returns a user's files with pagination
		files.GET("", jwt, a.FileList)

		// GET /api/files/:id/download	-> Streams a file owned by a user
		files.GET("/:id/download", jwt, a.FileDownload)

		// POST /api/files         	-> Uploads a new file and stores it in the database
		files.POST("", jwt, middleware.BodySizeLimiter(maxUploadSize), a.FileUpload)

		// DELETE /api/files/:id	-> Deletes a file owned by a user
		files.DELETE("/:id", jwt, a.FileDelete)
	}

	service.SessionCleanup(time.Hour, db)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	if lvl, err := zapcore.ParseLevel(viper.GetString("app.log_level")); err == nil {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}
