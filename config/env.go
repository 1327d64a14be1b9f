package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
)

const (
	EnvPrefix           = "MONGOLENS_"
	EnvNestingSeparator = "__"
)

// ApplyEnvOverrides loads the optional env files (".env" when none are given) and
// overlays every MONGOLENS_* variable onto cfg. Nested keys use a double underscore:
// MONGOLENS_POOL__MAX_CLIENTS=10 sets pool.max_clients.
func ApplyEnvOverrides(cfg *ServiceConfig, envFiles ...string) error {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load env file: %w", err)
	}

	overrides := envToMap(os.Environ(), EnvPrefix)
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "yaml",
		WeaklyTypedInput: true,
		Result:           cfg,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return fmt.Errorf("failed to build env decoder: %w", err)
	}

	if err := decoder.Decode(overrides); err != nil {
		return fmt.Errorf("failed to apply env overrides: %w", err)
	}
	return nil
}

func envToMap(environ []string, prefix string) map[string]interface{} {
	out := make(map[string]interface{})
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, prefix) {
			continue
		}

		path := strings.Split(strings.ToLower(strings.TrimPrefix(key, prefix)), strings.ToLower(EnvNestingSeparator))
		node := out
		for i, part := range path {
			if part == "" {
				break
			}
			if i == len(path)-1 {
				node[part] = value
				break
			}
			child, ok := node[part].(map[string]interface{})
			if !ok {
				child = make(map[string]interface{})
				node[part] = child
			}
			node = child
		}
	}
	return out
}
