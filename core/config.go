package core

import (
	"fmt"
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	DatabaseConfig struct {
		Engine        string
		Name          string
		User          string
		Password      string
		AdminUser     string
		AdminPassword string
		Host          string
		Port          int
		DisableTLS    bool
	}

	ServerConfig struct {
		Host string
		Port int

		// External identity provider: tokens presented as "Authorization: Bearer"
		// are verified against this issuer and signing secret. Token issuance
		// happens elsewhere.
		IdentityIssuer string
		IdentitySecret string
	}

	Config struct {
		AppName           string
		Env               string
		Debug             bool
		TestMode          bool
		Build             string
		SecretKey         string
		SessionCookieName string
		SessionMaxAge     time.Duration
		FrontendBaseURL   string
		DefaultFromEmail  string
		SendgridApiKey    string
		RollbarToken      string

		Server   ServerConfig
		Database DatabaseConfig
	}
)

func (c DatabaseConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c *Config) DefaultFromAddr() mail.Address {
	return mail.Address{Name: c.AppName, Address: c.DefaultFromEmail}
}

// NewConfig loads the app configuration from the environment.
// A config/.env.<env> file is loaded first if it exists.
func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetTypeByDefaultValue(true)

	// defaults
	v.SetDefault("debug", true)
	v.SetDefault("appName", "CodewiseHub")
	v.SetDefault("secretKey", "p0q5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("sessionCookieName", "connect.sid")
	v.SetDefault("sessionMaxAge", 7*24*time.Hour)
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "noreply@localhost")
	v.SetDefault("serverHost", "localhost")
	v.SetDefault("serverPort", 8000)
	v.SetDefault("identityIssuer", "https://identity.codewisehub.com")
	v.SetDefault("dbEngine", "postgres")
	v.SetDefault("dbName", "codewisehub")
	v.SetDefault("dbHost", "localhost")
	v.SetDefault("dbPort", 5432)
	v.SetDefault("dbDisableTLS", true)

	env := os.Getenv("ENV") // DEV (local; default), TEST, QA, PROD
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}
	v.AutomaticEnv()

	conf := &Config{
		AppName:           v.GetString("appName"),
		Env:               env,
		Debug:             v.GetBool("debug"),
		TestMode:          v.GetBool("testMode"),
		Build:             v.GetString("build"),
		SecretKey:         v.GetString("secretKey"),
		SessionCookieName: v.GetString("sessionCookieName"),
		SessionMaxAge:     v.GetDuration("sessionMaxAge"),
		FrontendBaseURL:   v.GetString("frontendBaseURL"),
		DefaultFromEmail:  v.GetString("defaultFromEmail"),
		SendgridApiKey:    v.GetString("sendgridApiKey"),
		RollbarToken:      v.GetString("rollbarToken"),
		Server: ServerConfig{
			Host:           v.GetString("serverHost"),
			Port:           v.GetInt("serverPort"),
			IdentityIssuer: v.GetString("identityIssuer"),
			IdentitySecret: v.GetString("identitySecret"),
		},
		Database: DatabaseConfig{
			Engine:        v.GetString("dbEngine"),
			Name:          v.GetString("dbName"),
			User:          v.GetString("dbUser"),
			Password:      v.GetString("dbPassword"),
			AdminUser:     v.GetString("dbAdminUser"),
			AdminPassword: v.GetString("dbAdminPassword"),
			Host:          v.GetString("dbHost"),
			Port:          v.GetInt("dbPort"),
			DisableTLS:    v.GetBool("dbDisableTLS"),
		},
	}
	return conf, nil
}
