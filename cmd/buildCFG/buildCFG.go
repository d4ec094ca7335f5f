package buildCFG

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"
	"github.com/wb-go/wbf/dbpg"

	"campusevents/internal/mailer"
)

type ServerConfig struct {
	Port string
	Mode string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	server := ServerConfig{
		Port: cfg.GetString("server.port"),
		Mode: cfg.GetString("server.mode"),
	}
	if server.Port == "" {
		server.Port = "5000"
	}
	if server.Mode == "" {
		server.Mode = "release"
	}
	log.Info().Str("port", server.Port).Str("mode", server.Mode).Msg("server config loaded")
	return server
}

func BuildDBConfig(cfg *config.Config, log *zerolog.Logger) (string, []string, *dbpg.Options, error) {
	masterDSN := cfg.GetString("db.master_dsn")
	if masterDSN == "" {
		return "", nil, nil, fmt.Errorf("db.master_dsn is required")
	}

	var slaveDSNs []string
	for _, dsn := range strings.Split(cfg.GetString("db.slave_dsns"), ",") {
		if dsn = strings.TrimSpace(dsn); dsn != "" {
			slaveDSNs = append(slaveDSNs, dsn)
		}
	}

	opts := &dbpg.Options{
		MaxOpenConns:    cfg.GetInt("db.max_open_conns"),
		MaxIdleConns:    cfg.GetInt("db.max_idle_conns"),
		ConnMaxLifetime: time.Duration(cfg.GetInt("db.conn_max_lifetime_seconds")) * time.Second,
	}

	log.Info().Int("slaves", len(slaveDSNs)).Msg("DB config loaded")
	return masterDSN, slaveDSNs, opts, nil
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
}

func BuildAuthConfig(cfg *config.Config, log *zerolog.Logger) (AuthConfig, error) {
	secret := cfg.GetString("auth.jwt_secret")
	if secret == "" {
		return AuthConfig{}, fmt.Errorf("auth.jwt_secret is required")
	}

	ttlHours := cfg.GetInt("auth.token_ttl_hours")
	if ttlHours <= 0 {
		ttlHours = 24
	}

	log.Info().Int("token_ttl_hours", ttlHours).Msg("auth config loaded")
	return AuthConfig{
		JWTSecret: secret,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}, nil
}

type RabbitConfig struct {
	Enabled  bool
	Url      string
	Exchange string
	Queue    string
}

func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) (RabbitConfig, error) {
	rabbit := RabbitConfig{
		Enabled:  cfg.GetBool("rabbitmq.enabled"),
		Url:      cfg.GetString("rabbitmq.url"),
		Exchange: cfg.GetString("rabbitmq.exchange"),
		Queue:    cfg.GetString("rabbitmq.queue"),
	}
	if rabbit.Enabled && rabbit.Url == "" {
		return RabbitConfig{}, fmt.Errorf("rabbitmq.url is required when rabbitmq is enabled")
	}

	log.Info().Bool("enabled", rabbit.Enabled).Msg("RabbitMQ config loaded")
	return rabbit, nil
}

func BuildSMTPConfig(cfg *config.Config) mailer.Config {
	return mailer.Config{
		Host:     cfg.GetString("smtp.host"),
		Port:     cfg.GetString("smtp.port"),
		From:     cfg.GetString("smtp.from"),
		Password: cfg.GetString("smtp.password"),
	}
}

type FeedbackConfig struct {
	RequireAttendance bool
}

func BuildFeedbackConfig(cfg *config.Config) FeedbackConfig {
	return FeedbackConfig{RequireAttendance: cfg.GetBool("feedback.require_attendance")}
}
