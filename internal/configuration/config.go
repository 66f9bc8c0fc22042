package configuration

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const FilePath = "configuration/configuration.yaml"

type Config struct {
	ScasClientSettings ScasClientSettings `yaml:"scas_client_settings"`
	ReportSettings     ReportSettings     `yaml:"report_settings"`
}

type ScasClientSettings struct {
	BaseUrl         string `yaml:"base_url"`
	Realm           string `yaml:"realm"`
	ClientId        string `yaml:"client_id"`
	OfflineTokenEnv string `yaml:"offline_token_env"`
	TimeoutSeconds  int    `yaml:"timeout_seconds"`
}

type ReportSettings struct {
	SeverityColumn string `yaml:"severity_column"`
}

func Default() *Config {
	return &Config{
		ScasClientSettings: ScasClientSettings{
			BaseUrl:         "https://scas.internal.ericsson.com",
			Realm:           "SCA",
			ClientId:        "scas-ext-client-direct",
			OfflineTokenEnv: "SCAS_OFFLINE_TOKEN",
			TimeoutSeconds:  60,
		},
		ReportSettings: ReportSettings{
			SeverityColumn: "Severity",
		},
	}
}

// Load reads the yaml file at path over the defaults. A missing file is
// not an error.
func Load(path string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return nil, fmt.Errorf("configuration error: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("error unmarshalling configuration: %w", err)
	}

	if config.ScasClientSettings.TimeoutSeconds <= 0 {
		return nil, fmt.Errorf("configuration error: timeout_seconds must be positive, got %d", config.ScasClientSettings.TimeoutSeconds)
	}

	return config, nil
}

func (s ScasClientSettings) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (s ScasClientSettings) openIdConnectUrl() string {
	return fmt.Sprintf("%s/auth/realms/%s/protocol/openid-connect", strings.TrimSuffix(s.BaseUrl, "/"), s.Realm)
}

func (s ScasClientSettings) TokenUrl() string {
	return s.openIdConnectUrl() + "/token"
}

func (s ScasClientSettings) UserInfoUrl() string {
	return s.openIdConnectUrl() + "/userinfo"
}

// AccountUrl is where a user revokes the offline tokens issued to them.
func (s ScasClientSettings) AccountUrl() string {
	return fmt.Sprintf("%s/auth/realms/%s/account/#/applications", strings.TrimSuffix(s.BaseUrl, "/"), s.Realm)
}

func (s ScasClientSettings) SearchUrl() string {
	return strings.TrimSuffix(s.BaseUrl, "/") + "/ordering/components/search"
}
