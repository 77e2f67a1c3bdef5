package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// Environment variables read by suideploy.
const (
	EnvPrivateKey = "PRIVATE_KEY"
	EnvUpgradeCap = "UPGRADE_CAP"
	EnvPackageID  = "PACKAGE_ID"
	EnvHome       = "SUIDEPLOY_HOME"
	EnvRPCURL     = "SUIDEPLOY_RPC_URL"
	EnvNoColor    = "NO_COLOR"
)

// DotEnvFile is loaded from the working directory before anything else.
const DotEnvFile = ".env"

// LoadDotEnv loads path into the process environment. Variables that are
// already set are left alone, and a missing file is not an error.
func LoadDotEnv(path string) error {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}

// DefaultHomeDir returns $SUIDEPLOY_HOME, or ~/.suideploy.
func DefaultHomeDir() string {
	if home := os.Getenv(EnvHome); home != "" {
		return home
	}
	userHome, err := os.UserHomeDir()
	if err != nil {
		return ".suideploy"
	}
	return filepath.Join(userHome, ".suideploy")
}
