package config

import (
	"fmt"
	"strings"
)

const (
	FileName       = ".uploader"
	IgnoreFileName = ".gitignore"

	EnvDomain = "UPLOADER_DOMAIN"
	EnvAuth   = "UPLOADER_AUTH"

	DefaultBuildCommand = "npm run build"
	DefaultDirectory    = "build"

	notSet = "not set"
)

// Config is the persisted settings record. Empty strings mean unset.
type Config struct {
	BuildCommand string `yaml:"build_command,omitempty"`
	Directory    string `yaml:"directory,omitempty"`
	Domain       string `yaml:"domain,omitempty"`
	Auth         string `yaml:"auth,omitempty"`
}

func (c *Config) SetDefaults() {
	c.BuildCommand = DefaultBuildCommand
	c.Directory = DefaultDirectory
}

// NormalizeDomain makes sure the domain carries a URL scheme. A bare host
// gets https.
func (c *Config) NormalizeDomain() {
	if c.Domain != "" && !strings.HasPrefix(c.Domain, "http") {
		c.Domain = "https://" + c.Domain
	}
}

// String renders the record for the config summary printed at startup. The
// auth value is never shown.
func (c *Config) String() string {
	return fmt.Sprintf("\tDomain: %s,\n\tOutput Directory: %s,\n\tBuild Command: %s\n",
		orNotSet(c.Domain), orNotSet(c.Directory), orNotSet(c.BuildCommand))
}

func orNotSet(v string) string {
	if v == "" {
		return notSet
	}

	return v
}
