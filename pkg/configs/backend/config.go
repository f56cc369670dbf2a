package backend

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// BackendConfig is everything the server needs, loaded once at startup
// and passed by reference to the components that need it.
type BackendConfig struct {
	// port to listen on, e.g. "8000"
	Port string `yaml:"port"`

	// postgres connection string
	Database string `yaml:"database"`

	Auth AuthConfig `yaml:"auth"`

	// origins allowed by CORS. Empty = same-origin only.
	AllowOrigins []string `yaml:"allowOrigins"`

	// optional account created (or promoted) as superuser at startup.
	Superuser *SuperuserConfig `yaml:"superuser"`
}

type AuthConfig struct {
	// HMAC secret for session tokens
	SecretKey string `yaml:"secretKey"`

	// token lifetime in seconds. default = 3600.
	TokenLifetimeSeconds int `yaml:"tokenLifetimeSeconds"`

	// name of the session cookie. default = "auth".
	CookieName string `yaml:"cookieName"`

	// set Secure on the session cookie
	SecureCookie bool `yaml:"secureCookie"`
}

func (a AuthConfig) TokenLifetime() time.Duration {
	return time.Duration(a.TokenLifetimeSeconds) * time.Second
}

type SuperuserConfig struct {
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

func LoadBackendConfig(filepath string) (*BackendConfig, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, err
	}
	return Unmarshal(content)
}

func Unmarshal(conf []byte) (*BackendConfig, error) {
	var out BackendConfig
	if err := yaml.Unmarshal(conf, &out); err != nil {
		return nil, err
	}

	if out.Port == "" {
		out.Port = "8000"
	}
	if out.Database == "" {
		return nil, errors.New("config: database is required")
	}
	if out.Auth.SecretKey == "" {
		return nil, errors.New("config: auth.secretKey is required")
	}
	if out.Auth.TokenLifetimeSeconds <= 0 {
		out.Auth.TokenLifetimeSeconds = 3600
	}
	if out.Auth.CookieName == "" {
		out.Auth.CookieName = "auth"
	}
	if su := out.Superuser; su != nil {
		if su.Email == "" || su.Password == "" {
			return nil, fmt.Errorf("config: superuser needs both email and password")
		}
	}

	return &out, nil
}
