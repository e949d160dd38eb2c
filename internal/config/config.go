package config

import (
	"os"
	"path"
	"time"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Public  Public
	private Private
}

type Public struct {
	Server       Server       `yaml:"server"`
	Redis        Redis        `yaml:"redis"`
	Verification Verification `yaml:"verification"`
	Logging      Logging      `yaml:"logging"`

	SessionTTLSeconds      int      `yaml:"session_ttl_seconds"`
	PasswordMinLength      int      `yaml:"password_min_length"`
	CleanupIntervalSeconds int      `yaml:"cleanup_interval_seconds"`
	SecureCookies          bool     `yaml:"secure_cookies"`
	AllowedOrigins         []string `yaml:"allowed_origins"`
}

type Server struct {
	Port int `yaml:"port"`
}

type Redis struct {
	// Empty Addr means the in-process cooldown tracker is used instead.
	Addr string `yaml:"addr"`
	DB   int    `yaml:"db"`
}

type Verification struct {
	CodeLength            int `yaml:"code_length"`
	CodeTTLSeconds        int `yaml:"code_ttl_seconds"`
	ResendCooldownSeconds int `yaml:"resend_cooldown_seconds"`
	ResetGrantTTLSeconds  int `yaml:"reset_grant_ttl_seconds"`
}

type Logging struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

type Pg struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Dbname   string `yaml:"dbname"`
}

type Email struct {
	SMTPHost   string `yaml:"smtp_host"`
	SMTPPort   int    `yaml:"smtp_port"`
	Username   string `yaml:"username"`
	Password   string `yaml:"password"`
	From       string `yaml:"from"`
	SenderName string `yaml:"sender_name"`
}

type Google struct {
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	RedirectURL  string `yaml:"redirect_url"`
}

type Private struct {
	JwtKey        string `yaml:"jwt_key"`
	RedisPassword string `yaml:"redis_password"`
	Pg            Pg     `yaml:"pg"`
	Email         Email  `yaml:"email"`
	Google        Google `yaml:"google"`
}

// accessors so private values never leak through anything that serializes Public

func (c *Config) JwtKey() string {
	return c.private.JwtKey
}

func (c *Config) RedisPassword() string {
	return c.private.RedisPassword
}

func (c *Config) Pg() Pg {
	return c.private.Pg
}

func (c *Config) Email() Email {
	return c.private.Email
}

func (c *Config) Google() Google {
	return c.private.Google
}

func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.Public.SessionTTLSeconds) * time.Second
}

func (c *Config) CodeTTL() time.Duration {
	return time.Duration(c.Public.Verification.CodeTTLSeconds) * time.Second
}

func (c *Config) ResendCooldown() time.Duration {
	return time.Duration(c.Public.Verification.ResendCooldownSeconds) * time.Second
}

func (c *Config) ResetGrantTTL() time.Duration {
	return time.Duration(c.Public.Verification.ResetGrantTTLSeconds) * time.Second
}

func (c *Config) CleanupInterval() time.Duration {
	return time.Duration(c.Public.CleanupIntervalSeconds) * time.Second
}

func mustLoadPath(configPath string, output interface{}) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		panic("can't read config file")
	}

	if err := yaml.Unmarshal(configFile, output); err != nil {
		panic("can't unmarshal config file")
	}
}

// New assembles a config from already-loaded sections. Used by tests and
// tools that bypass the yaml files.
func New(public Public, private Private) *Config {
	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func MustLoad(configFolder string) *Config {
	var public Public
	mustLoadPath(path.Join(configFolder, "public.yaml"), &public)

	var private Private
	mustLoadPath(path.Join(configFolder, "private.yaml"), &private)

	cfg := &Config{public, private}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	v := &c.Public.Verification
	if v.CodeLength == 0 {
		v.CodeLength = 6
	}
	if v.CodeTTLSeconds == 0 {
		v.CodeTTLSeconds = 300
	}
	if v.ResendCooldownSeconds == 0 {
		v.ResendCooldownSeconds = 60
	}
	if v.ResetGrantTTLSeconds == 0 {
		v.ResetGrantTTLSeconds = 600
	}
	if c.Public.SessionTTLSeconds == 0 {
		c.Public.SessionTTLSeconds = int((24 * time.Hour).Seconds())
	}
	if c.Public.PasswordMinLength == 0 {
		c.Public.PasswordMinLength = 8
	}
	if c.Public.CleanupIntervalSeconds == 0 {
		c.Public.CleanupIntervalSeconds = int(time.Hour.Seconds())
	}
	if c.Public.Server.Port == 0 {
		c.Public.Server.Port = 8080
	}
}
