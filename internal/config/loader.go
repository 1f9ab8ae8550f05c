// Copyright 2025 InterviewAce Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config defines the data structures for application configuration.
// This file implements the hierarchical TOML loader: a base `.env.toml` is
// read first and an environment-specific `.env.<runtime>.toml` is decoded on
// top of it, overwriting whatever it declares. The config directory and the
// runtime name come from environment variables, which lets the test suite
// point the loader at its own fixtures.
package config

import (
	"errors"
	"log"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Constants for configuration file resolution.
const (
	ConfigFileBaseName  = ".env"            // The base name for configuration files (e.g., ".env.toml").
	ConfigFileExtension = ".toml"           // The file extension for configuration files.
	ConfigSeparator     = "."               // The separator used in config file names (e.g., ".env.local.toml").
	EnvConfigFilePrefix = "IA_CONFIG_PREFIX" // Environment variable naming the config directory.
	EnvConfigRuntime    = "IA_RUNTIME"       // Environment variable naming the runtime context (e.g., "local", "test").
)

// fileExists checks if a file exists at the given path.
func fileExists(in string) bool {
	_, err := os.Stat(in)
	return !errors.Is(err, os.ErrNotExist)
}

// LoadConfig populates the given configuration struct from TOML files. It
// first decodes the base configuration file, then decodes the
// environment-specific override file on top of it if one exists. Missing
// files are not an error: the struct keeps whatever defaults it was
// constructed with.
//
// Inputs:
//   - baseConfig: a pointer to the target configuration struct.
func LoadConfig(baseConfig interface{}) {
	// Read the directory path for config files from the environment.
	configurationFilePrefix := os.Getenv(EnvConfigFilePrefix)
	if len(configurationFilePrefix) > 0 && !strings.HasSuffix(configurationFilePrefix, string(os.PathSeparator)) {
		configurationFilePrefix = configurationFilePrefix + string(os.PathSeparator)
	}

	// Read the runtime environment (e.g., "local", "test"), defaulting to
	// "local" when unset.
	runtimeEnvironment := os.Getenv(EnvConfigRuntime)
	if runtimeEnvironment == "" {
		runtimeEnvironment = "local"
	}

	// Construct the base file path (e.g., "configs/.env.toml") and the
	// override path (e.g., "configs/.env.test.toml").
	baseConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigFileExtension
	envConfigFileName := configurationFilePrefix + ConfigFileBaseName + ConfigSeparator + runtimeEnvironment + ConfigFileExtension

	if fileExists(baseConfigFileName) {
		if _, err := toml.DecodeFile(baseConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode base configuration file %s with error: %s", baseConfigFileName, err)
		}
	}

	// Values in the environment file overwrite the base values.
	if fileExists(envConfigFileName) {
		if _, err := toml.DecodeFile(envConfigFileName, baseConfig); err != nil {
			log.Fatalf("failed to decode environment configuration file: %s with error: %s", envConfigFileName, err)
		}
	}
}
