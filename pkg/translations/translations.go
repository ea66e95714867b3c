package translations

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

// TranslationHelperFunc returns the override for key, or defaultValue.
type TranslationHelperFunc func(key string, defaultValue string) string

// ConfigFileName is the JSON file, looked up in the working directory, that
// holds description overrides.
const ConfigFileName = "projects-mcp-server-config"

func NullTranslationHelper(_ string, defaultValue string) string {
	return defaultValue
}

// TranslationHelper returns a helper that resolves tool strings from
// GITHUB_MCP_<KEY> env vars or the JSON config file, and a function that
// dumps every key seen so far to that file.
func TranslationHelper() (TranslationHelperFunc, func() error) {
	var mu sync.Mutex
	translationKeyMap := map[string]string{}

	v := viper.New()
	v.SetEnvPrefix("GITHUB_MCP")
	v.AutomaticEnv()
	v.SetConfigName(ConfigFileName)
	v.SetConfigType("json")
	v.AddConfigPath(".")
	// a missing config file just means no overrides
	_ = v.ReadInConfig()

	helper := func(key string, defaultValue string) string {
		key = strings.ToUpper(key)

		mu.Lock()
		defer mu.Unlock()

		if value, exists := translationKeyMap[key]; exists {
			return value
		}
		if value := v.GetString(key); value != "" {
			translationKeyMap[key] = value
			return value
		}
		translationKeyMap[key] = defaultValue
		return defaultValue
	}

	dump := func() error {
		mu.Lock()
		defer mu.Unlock()
		return DumpTranslationKeyMap(ConfigFileName+".json", translationKeyMap)
	}

	return helper, dump
}

// DumpTranslationKeyMap writes the key map as indented JSON to path.
func DumpTranslationKeyMap(path string, translationKeyMap map[string]string) error {
	b, err := json.MarshalIndent(translationKeyMap, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal translation key map: %w", err)
	}
	if err := os.WriteFile(path, b, 0600); err != nil {
		return fmt.Errorf("failed to write translation key map: %w", err)
	}
	return nil
}
