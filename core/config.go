package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Conf holds the application configuration. It is loaded once at startup
// from the environment (with an optional .env file) and never mutated after.
var Conf *Config

type Config struct {
	Env      string
	Debug    bool
	TestMode bool
	AppName  string
	Build    string
	WorkDir  string

	SecretKey []byte

	Server struct {
		Addr               string
		Host               string
		AllowedOrigins     []string
		JWTExpirationDelta time.Duration
	}

	Database struct {
		URI  string
		Name string
	}

	// The whole system has exactly one identity; the password only gates
	// access to it. ID is the subject claim placed in issued tokens and the
	// createdBy reference stamped on attendance records.
	Admin struct {
		ID           string
		Password     string
		PasswordHash string // bcrypt; takes precedence over Password when set
	}

	Mail struct {
		DefaultFromEmail string
		SendgridAPIKey   string
		PastorEmail      string
		ReportRecipients []string
	}

	RollbarToken string
}

func init() {
	Conf = loadConfig()
}

func loadConfig() *Config {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "ChurchAdmin")
	v.SetDefault("build", "dev")
	v.SetDefault("secretKey", "+f3yz(m&2l-churchadmin-dev-key-r0ck&of@ges!")
	v.SetDefault("serverAddr", ":8000")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("allowedOrigins", "http://localhost:3000")
	v.SetDefault("jwtExpirationDelta", 24*time.Hour)
	v.SetDefault("databaseUri", "mongodb://localhost:27017")
	v.SetDefault("databaseName", "churchadmin")
	v.SetDefault("adminId", "000000000000000000000001")
	v.SetDefault("adminPassword", "")
	v.SetDefault("adminPasswordHash", "")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("sendgridApiKey", "")
	v.SetDefault("pastorEmail", "pastor@localhost")
	v.SetDefault("reportRecipients", "pastor@localhost")
	v.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	wd := Getwd()
	dotEnvPath := filepath.Join(wd, "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	conf := &Config{
		Env:          env,
		Debug:        v.GetBool("debug"),
		TestMode:     v.GetBool("testMode"),
		AppName:      v.GetString("appName"),
		Build:        v.GetString("build"),
		WorkDir:      wd,
		SecretKey:    []byte(v.GetString("secretKey")),
		RollbarToken: v.GetString("rollbarToken"),
	}
	conf.Server.Addr = v.GetString("serverAddr")
	conf.Server.Host = v.GetString("serverHost")
	conf.Server.AllowedOrigins = splitAndTrim(v.GetString("allowedOrigins"))
	conf.Server.JWTExpirationDelta = v.GetDuration("jwtExpirationDelta")
	conf.Database.URI = v.GetString("databaseUri")
	conf.Database.Name = v.GetString("databaseName")
	conf.Admin.ID = v.GetString("adminId")
	conf.Admin.Password = v.GetString("adminPassword")
	conf.Admin.PasswordHash = v.GetString("adminPasswordHash")
	conf.Mail.DefaultFromEmail = v.GetString("defaultFromEmail")
	conf.Mail.SendgridAPIKey = v.GetString("sendgridApiKey")
	conf.Mail.PastorEmail = v.GetString("pastorEmail")
	conf.Mail.ReportRecipients = splitAndTrim(v.GetString("reportRecipients"))
	return conf
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	res := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			res = append(res, p)
		}
	}
	return res
}
