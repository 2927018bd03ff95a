// Package config reads taskforge configuration keys (TASKFORGE_PORT,
// TASKFORGE_DB, ...) through the Configer interface. The daemon loads a
// DotenvConfig at startup; tests substitute a MapConfig.
package config

type Configer interface {
	LoadFromPath(path string) error
	Load() error
	GetKey(key string) string
	MustGetKey(key string) string
	GetKeyWithDefault(key, defaultValue string) string
	GetIntKey(key string) int
	MustGetIntKey(key string) int
	GetIntKeyWithDefault(key string, defaultValue int) int
}
