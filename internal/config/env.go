package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"

	"github.com/aleister1102/companywatch/internal/common/errorwrapper"
	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from the given .env files into the process
// environment without overriding variables that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return errorwrapper.WrapError(err, "failed to load env file "+f)
		}
	}
	return nil
}

// ApplyEnvOverrides copies the credential, entity and interval variables from
// the environment into cfg when they are set.
func ApplyEnvOverrides(cfg *GlobalConfig) error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		cfg.RegistryConfig.APIKey = v
	}
	if v := os.Getenv(EnvCompanyNumber); v != "" {
		cfg.MonitorConfig.CompanyNumber = v
	}
	if v := os.Getenv(EnvPollIntervalSeconds); v != "" {
		seconds, err := strconv.Atoi(v)
		if err != nil {
			return errorwrapper.NewValidationError(EnvPollIntervalSeconds, v, "must be an integer number of seconds")
		}
		cfg.MonitorConfig.PollIntervalSeconds = seconds
	}
	return nil
}
