package core

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// Database engines
const (
	EngineMongo    = "mongo"
	EnginePostgres = "postgres"
	EngineMemory   = "memory"
)

type (
	Config struct {
		AppName      string
		Build        string
		Env          string
		Debug        bool
		TestMode     bool
		SecretKey    string
		RollbarToken string
		WorkDir      string

		Server   ServerConfig
		Database DatabaseConfig
		Stripe   StripeConfig
	}

	ServerConfig struct {
		Addr               string
		Host               string
		DebugHost          string
		ShutdownTimeout    time.Duration
		JWTExpirationDelta time.Duration
		GuardAdminRoutes   bool
		DisableReqLogs     bool
	}

	DatabaseConfig struct {
		Engine     string
		URI        string // mongo connection string; built from the fields below when empty
		Name       string
		User       string
		Password   string
		Host       string
		Port       string
		DisableTLS bool
	}

	StripeConfig struct {
		SecretKey string
	}
)

func (db DatabaseConfig) Address() string {
	return net.JoinHostPort(db.Host, db.Port)
}

// MongoURI returns the configured URI, or an Atlas SRV URI built from the credentials.
func (db DatabaseConfig) MongoURI() string {
	if db.URI != "" {
		return db.URI
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority", db.User, db.Password, db.Host)
}

// NewConfig loads the configuration from defaults, an optional `.env.<env>` file and the environment.
func NewConfig() *Config {
	conf, err := loadConfig()
	if err != nil {
		panic(errors.Wrap(err, "loading config"))
	}
	return conf
}

func loadConfig() (*Config, error) {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("testMode", false)
	v.SetDefault("appName", "SkillBoost")
	v.SetDefault("build", "develop")
	v.SetDefault("secretKey", "w3b$-7uq)rnc8+kp1=xa&v0(q#2m9!z*h4$skillboost")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.debugHost", ":4000")
	v.SetDefault("server.shutdownTimeout", 5*time.Second)
	v.SetDefault("server.jwtExpirationDelta", time.Hour)
	v.SetDefault("server.guardAdminRoutes", true)
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("database.engine", EngineMongo)
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "SkillBoostDB")
	v.SetDefault("database.user", "")
	v.SetDefault("database.password", "")
	v.SetDefault("database.host", "cluster0.fsmcn5d.mongodb.net")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.disableTLS", false)
	v.SetDefault("stripe.secretKey", "")

	env := strings.ToUpper(os.Getenv("ENV")) // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
		v.SetDefault("database.engine", EngineMemory)
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Wrap(err, "getting working directory")
	}

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err = os.Stat(dotEnvPath); err == nil {
		if err = godotenv.Load(dotEnvPath); err != nil {
			return nil, errors.Wrapf(err, "loading %s", dotEnvPath)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrapf(err, "stat %s", dotEnvPath)
	}

	// nested keys are read from eg. SERVER_JWTEXPIRATIONDELTA
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// variable names of the existing deployment
	_ = v.BindEnv("server.addr", "SERVER_ADDR", "PORT")
	_ = v.BindEnv("secretKey", "SECRETKEY", "ACCESS_TOKEN_SECRET")
	_ = v.BindEnv("database.user", "DATABASE_USER", "DB_USER")
	_ = v.BindEnv("database.password", "DATABASE_PASSWORD", "DB_PASS")
	_ = v.BindEnv("stripe.secretKey", "STRIPE_SECRETKEY", "STRIPE_SECRET_KEY")

	addr := v.GetString("server.addr")
	if addr != "" && !strings.Contains(addr, ":") { // PORT=5000
		addr = ":" + addr
	}

	return &Config{
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		SecretKey:    v.GetString("secretKey"),
		RollbarToken: v.GetString("rollbarToken"),
		WorkDir:      wd,
		Server: ServerConfig{
			Addr:               addr,
			Host:               v.GetString("server.host"),
			DebugHost:          v.GetString("server.debugHost"),
			ShutdownTimeout:    v.GetDuration("server.shutdownTimeout"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
			GuardAdminRoutes:   v.GetBool("server.guardAdminRoutes"),
			DisableReqLogs:     v.GetBool("server.disableReqLogs"),
		},
		Database: DatabaseConfig{
			Engine:     strings.ToLower(v.GetString("database.engine")),
			URI:        v.GetString("database.uri"),
			Name:       v.GetString("database.name"),
			User:       v.GetString("database.user"),
			Password:   v.GetString("database.password"),
			Host:       v.GetString("database.host"),
			Port:       v.GetString("database.port"),
			DisableTLS: v.GetBool("database.disableTLS"),
		},
		Stripe: StripeConfig{
			SecretKey: v.GetString("stripe.secretKey"),
		},
	}, nil
}
