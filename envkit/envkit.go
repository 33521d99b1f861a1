package envkit

import (
	"fmt"
	"os"
	"strings"
)

func String(name string, defaultValue string) string {
	v := os.Getenv(name)
	if v == "" {
		v = defaultValue
	}
	return v
}

func StringRequired(name string, usefallback bool, fallback string) string {
	v := os.Getenv(name)
	if v != "" {
		return v
	}

	if usefallback {
		return fallback
	}

	panic(fmt.Sprintf("unspecified environment variable: %v", name))
}

// Bool reads name as a boolean. Unset or unrecognized values give defaultValue.
func Bool(name string, defaultValue bool) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "true", "1", "on", "yes":
		return true
	case "false", "0", "off", "no":
		return false
	}
	return defaultValue
}
