package config

import (
	"os"

	"github.com/apex/log"
)

var configer Configer = &DotenvConfig{}

// MustLoadFromDotenv loads the .env file named by TASKFORGE_DOTENV, or ".env"
// in the working directory. A missing file is fine; every key then comes from
// the process environment.
func MustLoadFromDotenv() Configer {
	path := os.Getenv("TASKFORGE_DOTENV")
	if path == "" {
		path = ".env"
	}

	c := NewDotenvConfig(path)
	if _, err := os.Stat(path); err == nil {
		if err := c.Load(); err != nil {
			log.Fatalf("Failed loading dotenv file %s: %s", path, err)
		}
	}

	SetConfig(c)
	return c
}

func SetConfig(c Configer) {
	configer = c
}

func GetConfig() Configer {
	return configer
}

func LoadFromPath(path string) error {
	return configer.LoadFromPath(path)
}

func Load() error {
	return configer.Load()
}

func GetKey(key string) string {
	return configer.GetKey(key)
}

func MustGetKey(key string) string {
	return configer.MustGetKey(key)
}

func GetKeyWithDefault(key, defaultValue string) string {
	return configer.GetKeyWithDefault(key, defaultValue)
}

func GetIntKey(key string) int {
	return configer.GetIntKey(key)
}

func MustGetIntKey(key string) int {
	return configer.MustGetIntKey(key)
}

func GetIntKeyWithDefault(key string, defaultValue int) int {
	return configer.GetIntKeyWithDefault(key, defaultValue)
}
