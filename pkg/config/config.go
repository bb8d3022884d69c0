package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

var (
	envFilePath string
	loadOnce    sync.Once
	loadErr     error
)

// MustNew panics when the environment cannot satisfy T. Intended for
// process startup, where a missing required variable should abort.
func MustNew[T any](prefix string) *T {
	conf, err := New[T](prefix)
	if err != nil {
		panic(err)
	}
	return conf
}

// New populates T from the process environment via envconfig. The first
// call exports an optional dotenv file so its settings are visible: the
// -env flag names one explicitly, otherwise ./.env is picked up when
// present.
func New[T any](prefix string) (*T, error) {
	loadOnce.Do(func() { loadErr = exportDotenv() })
	if loadErr != nil {
		return nil, loadErr
	}

	var conf T
	if err := envconfig.Process(prefix, &conf); err != nil {
		return nil, err
	}
	return &conf, nil
}

// exportDotenv promotes every dotenv setting to a real environment
// variable. A missing default ./.env is fine; a missing explicitly
// flagged file is not.
func exportDotenv() error {
	if flag.Lookup("env") == nil {
		flag.StringVar(&envFilePath, "env", "", "path to dotenv file")
	}
	if !flag.Parsed() {
		flag.Parse()
	}

	path := strings.TrimSpace(envFilePath)
	explicit := path != ""
	if !explicit {
		path = ".env"
	}

	viper.SetConfigFile(path)
	if err := viper.ReadInConfig(); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load env file %s: %w", path, err)
	}

	for k, v := range viper.AllSettings() {
		if err := os.Setenv(strings.ToUpper(k), fmt.Sprint(v)); err != nil {
			return err
		}
	}
	return nil
}
