// Package clicontext holds the global flags shared by every srpcalc command.
package clicontext

import "sync"

// Global holds flags that affect all commands.
type Global struct {
	// Verbose enables debug logging on stderr.
	Verbose bool

	// ConfigPath overrides the default config file location.
	ConfigPath string
}

var (
	globalContext = &Global{}
	mu            sync.RWMutex
)

// Set replaces the global context.
func Set(ctx *Global) {
	mu.Lock()
	defer mu.Unlock()
	globalContext = ctx
}

// Get returns a copy of the global context.
func Get() Global {
	mu.RLock()
	defer mu.RUnlock()
	return *globalContext
}

// Verbose reports whether debug logging is on.
func Verbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return globalContext.Verbose
}

// SetVerbose sets the verbose flag.
func SetVerbose(value bool) {
	mu.Lock()
	defer mu.Unlock()
	globalContext.Verbose = value
}

// ConfigPath returns the config file set with --config, or "".
func ConfigPath() string {
	mu.RLock()
	defer mu.RUnlock()
	return globalContext.ConfigPath
}

// SetConfigPath sets the config file path.
func SetConfigPath(path string) {
	mu.Lock()
	defer mu.Unlock()
	globalContext.ConfigPath = path
}
