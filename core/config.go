package core

import (
	"strconv"
	"strings"

	"github.com/gobuffalo/envy"

	"github.com/devblok/vkbind/native"
)

// InstanceConfiguration describes the instance to create
type InstanceConfiguration struct {
	AppName       string
	AppVersion    Version
	EngineName    string
	EngineVersion Version
	// APIVersion defaults to DefaultAPIVersion when zero
	APIVersion Version

	Capabilities []Capability
	Layers       []string

	// DebugMode enables ext_debug_report and refuses to destroy an
	// instance while logical devices created from it are alive
	DebugMode bool

	// DisabledValidationChecks needs ext_validation_flags
	DisabledValidationChecks []native.ValidationCheck
}

// Environment variables read by LoadInstanceConfiguration
const (
	EnvAppName            = "VKBIND_APP_NAME"
	EnvAppVersion         = "VKBIND_APP_VERSION"
	EnvEngineName         = "VKBIND_ENGINE_NAME"
	EnvEngineVersion      = "VKBIND_ENGINE_VERSION"
	EnvAPIVersion         = "VKBIND_API_VERSION"
	EnvCapabilities       = "VKBIND_CAPABILITIES"
	EnvLayers             = "VKBIND_LAYERS"
	EnvDebug              = "VKBIND_DEBUG"
	EnvDisabledValidation = "VKBIND_DISABLED_VALIDATION"
)

// LoadInstanceConfiguration reads an InstanceConfiguration from the
// environment and any .env file envy has loaded. Unset or empty variables
// keep the values of base. Unknown capability names fail here, before any
// instance is created.
func LoadInstanceConfiguration(base InstanceConfiguration) (InstanceConfiguration, error) {
	const op = "core.LoadInstanceConfiguration"
	cfg := base
	if raw := envy.Get(EnvAppName, ""); raw != "" {
		cfg.AppName = raw
	}
	if raw := envy.Get(EnvEngineName, ""); raw != "" {
		cfg.EngineName = raw
	}

	versions := []struct {
		key string
		dst *Version
	}{
		{EnvAppVersion, &cfg.AppVersion},
		{EnvEngineVersion, &cfg.EngineVersion},
		{EnvAPIVersion, &cfg.APIVersion},
	}
	for _, v := range versions {
		raw := envy.Get(v.key, "")
		if raw == "" {
			continue
		}
		parsed, err := ParseVersion(raw)
		if err != nil {
			return base, generalError(op, "%s: %v", v.key, err)
		}
		*v.dst = parsed
	}

	if raw := envy.Get(EnvCapabilities, ""); raw != "" {
		caps, err := ParseCapabilities(splitList(raw))
		if err != nil {
			return base, err
		}
		cfg.Capabilities = caps
	}
	if raw := envy.Get(EnvLayers, ""); raw != "" {
		cfg.Layers = splitList(raw)
	}
	if raw := envy.Get(EnvDebug, ""); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return base, generalError(op, "%s: %q is not a boolean", EnvDebug, raw)
		}
		cfg.DebugMode = debug
	}
	if raw := envy.Get(EnvDisabledValidation, ""); raw != "" {
		var checks []native.ValidationCheck
		for _, name := range splitList(raw) {
			switch strings.ToLower(name) {
			case "all":
				checks = append(checks, native.ValidationCheckAll)
			case "shaders":
				checks = append(checks, native.ValidationCheckShaders)
			default:
				return base, generalError(op, "%s: unknown validation check %q", EnvDisabledValidation, name)
			}
		}
		cfg.DisabledValidationChecks = checks
	}
	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, s := range strings.Split(raw, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
