/*
 * Copyright (c) 2026 The MiniDB Authors.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package config loads the configuration shared by the MiniDB front ends.

Configuration is read from an optional YAML file, overridable through
environment variables prefixed MINIDB_ (e.g. MINIDB_LOG_LEVEL=debug).
Every key has a sensible default, so both front ends run with no
config file at all.

Example minidb.yaml:

	log_level: info
	log_json: false

	shell:
	  prompt: "minidb> "
	  history_file: "~/.minidb_history"

	web:
	  listen: ":8080"
	  seed_demo_data: true
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// ShellConfig holds interactive shell settings.
type ShellConfig struct {
	Prompt      string `mapstructure:"prompt"`
	HistoryFile string `mapstructure:"history_file"`
}

// WebConfig holds web console settings.
type WebConfig struct {
	Listen       string `mapstructure:"listen"`
	SeedDemoData bool   `mapstructure:"seed_demo_data"`
}

// Config is the root configuration for the MiniDB front ends.
type Config struct {
	LogLevel string      `mapstructure:"log_level"`
	LogJSON  bool        `mapstructure:"log_json"`
	Shell    ShellConfig `mapstructure:"shell"`
	Web      WebConfig   `mapstructure:"web"`
}

// setDefaults registers the default value for every key.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log_level", "info")
	v.SetDefault("log_json", false)
	v.SetDefault("shell.prompt", "minidb> ")
	v.SetDefault("shell.history_file", "~/.minidb_history")
	v.SetDefault("web.listen", ":8080")
	v.SetDefault("web.seed_demo_data", true)
}

// Load reads configuration from the given file path. An empty path
// loads defaults and environment overrides only; a missing file at an
// explicit path is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("MINIDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	return &cfg, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
