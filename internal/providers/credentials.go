package providers

import (
	"fmt"
	"os"
	"strings"
)

// CredentialSource resolves credential values by name. Adapters query it on
// every invocation, never at startup.
type CredentialSource interface {
	Lookup(key string) (string, bool)
}

// EnvCredentials reads credentials from the process environment.
type EnvCredentials struct{}

func (EnvCredentials) Lookup(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	return value, ok && value != ""
}

// StaticCredentials serves credentials from a fixed map.
type StaticCredentials map[string]string

func (c StaticCredentials) Lookup(key string) (string, bool) {
	value, ok := c[key]
	return value, ok && value != ""
}

type credentials map[string]string

func resolveCredentials(source CredentialSource, authType string, keys []string) (credentials, error) {
	values := make(credentials, len(keys))
	var missing []string

	for _, key := range keys {
		value, ok := source.Lookup(key)
		if !ok {
			missing = append(missing, key)
			continue
		}
		values[key] = value
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing %s credentials: %s not set",
			ErrConfiguration, authType, strings.Join(missing, ", "))
	}

	return values, nil
}
