package state

// GlobalOptions contains global config values that apply to all sub-commands.
type GlobalOptions struct {
	Quiet     bool
	NoColor   bool
	LogOutput string
	LogFormat string
	Verbose   bool
}

// GetDefaultGlobalOptions returns the default global options.
func GetDefaultGlobalOptions() GlobalOptions {
	return GlobalOptions{
		LogOutput: "stderr",
	}
}

func consolidateGlobalOptions(defaults GlobalOptions, env map[string]string) GlobalOptions {
	result := defaults

	if val, ok := env["PLAYWRIGHT_LOG_OUTPUT"]; ok {
		result.LogOutput = val
	}
	if val, ok := env["PLAYWRIGHT_LOG_FORMAT"]; ok {
		result.LogFormat = val
	}
	if env["PLAYWRIGHT_NO_COLOR"] != "" {
		result.NoColor = true
	}
	// Support https://no-color.org/, even an empty value should disable
	// the color output.
	if _, ok := env["NO_COLOR"]; ok {
		result.NoColor = true
	}
	return result
}
