package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var (
	once     sync.Once
	instance *Config
)

// Default locations of env files, first match wins for each key.
var DefaultEnvFiles = []string{"./configs/.env", "./.env"}

type Config struct {
	lookup func(string) (string, bool)
}

// New loads env files once per process. Missing files are skipped, a file
// that exists but can't be parsed is fatal.
func New(files ...string) *Config {
	once.Do(func() {
		if len(files) == 0 {
			files = DefaultEnvFiles
		}
		for _, f := range files {
			err := godotenv.Load(f)
			if err != nil && !errors.Is(err, fs.ErrNotExist) {
				log.Fatal("loading envs error: ", err)
			}
		}
		instance = &Config{lookup: os.LookupEnv}
	})
	return instance
}

// FromMap builds a config that reads only from m. Used in tests.
func FromMap(m map[string]string) *Config {
	return &Config{lookup: func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}}
}

func (c *Config) GetString(key string) string {
	v, _ := c.lookup(key)
	return v
}

func (c *Config) GetStringOr(key, def string) string {
	v, ok := c.lookup(key)
	if !ok || strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func (c *Config) GetBool(key string, def bool) bool {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	b, err := strconv.ParseBool(strings.TrimSpace(v))
	if err != nil {
		log.Printf("config: %s=%q is not a bool, using %v", key, v, def)
		return def
	}
	return b
}

func (c *Config) GetDuration(key string, def time.Duration) time.Duration {
	v, ok := c.lookup(key)
	if !ok {
		return def
	}
	d, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil || d <= 0 {
		log.Printf("config: %s=%q is not a positive duration, using %s", key, v, def)
		return def
	}
	return d
}
