// Package config builds the run configuration once at the process boundary.
// Core packages receive a Config and never read the environment themselves.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"dario.cat/mergo"
	"github.com/kelseyhightower/envconfig"
	"github.com/titanous/json5"
)

// Credentials for the dashboard account.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Missing reports whether either credential is absent.
func (c Credentials) Missing() bool {
	return c.Email == "" || c.Password == ""
}

// Config is everything one run needs. Export paths are optional: a format is
// written only when its path is set.
type Config struct {
	Credentials

	// Filter retains only tunnels whose name contains this keyword,
	// case-insensitively. Empty means no filtering.
	Filter string

	OutJSON string
	OutCSV  string
	OutHTML string
}

// FromEnv reads credentials from CPOLAR_EMAIL / CPOLAR_PASSWORD.
func FromEnv() (Credentials, error) {
	var c Credentials
	if err := envconfig.Process("cpolar", &c); err != nil {
		return Credentials{}, err
	}
	return c, nil
}

func splitExt(f string) (string, string) {
	for i := len(f) - 1; i >= 0; i-- {
		if f[i] == '.' {
			return f[0:i], f[i+1:]
		}
	}
	return f, ""
}

// ReadFile reads a json5 configuration file, merged with a `.local.` overlay
// when one exists next to it (`config.json5` + `config.local.json5`, the
// overlay winning). Returns os.ErrNotExist when neither file exists; a file
// that exists but is empty counts as found and yields the zero value.
func ReadFile[T any](name string) (T, error) {
	var out T
	allNotFound := true

	dirname := filepath.Dir(name)
	basename := filepath.Base(name)
	prefixname, ext := splitExt(basename)

	defaultFile, err := os.ReadFile(name)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if err == nil {
		// an existing but empty file counts as found and yields the zero
		// config
		allNotFound = false
	}
	if len(defaultFile) > 0 {
		if err := json5.Unmarshal(defaultFile, &out); err != nil {
			return out, err
		}
	}

	localFilepath := filepath.Join(
		dirname,
		fmt.Sprintf("%s.local.%s", prefixname, ext),
	)
	localFile, err := os.ReadFile(localFilepath)
	if err != nil && !os.IsNotExist(err) {
		return out, err
	}
	if err == nil {
		allNotFound = false
	}
	if len(localFile) > 0 {
		var override T
		if err := json5.Unmarshal(localFile, &override); err != nil {
			return out, err
		}
		if err := mergo.Merge(&out, override, mergo.WithOverride); err != nil {
			return out, err
		}
	}

	if allNotFound {
		return out, os.ErrNotExist
	}

	return out, nil
}
