package wage

import (
	"errors"
	"fmt"
)

// ErrNoWageData reports that the upstream carried no rows at any applicable
// scope (metro, state, or national) for the requested occupation.
var ErrNoWageData = errors.New("no wage data available")

// MissingAreaError reports a strict metro-level request for an area the
// upstream does not cover. It never demotes to state or national data; the
// caller decides whether a broader scope is acceptable.
type MissingAreaError struct {
	AreaCode  string    // normalized 5-digit CBSA code that was requested
	Available []string  // normalized codes the upstream did return, for diagnostics
	Attempts  []Attempt // per-candidate fetch log, when resolution went through the fetcher
}

func (e *MissingAreaError) Error() string {
	return "MISSING_CBSA_" + e.AreaCode
}

// ValidationError reports a missing or malformed request parameter.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required parameter: %s", e.Field)
}

// ConfigError reports absent upstream credentials. The message deliberately
// names the setting, never its value.
type ConfigError struct {
	Setting string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("upstream credentials not configured: %s", e.Setting)
}
