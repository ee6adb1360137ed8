package config

import (
	"fmt"
	"slices"
	"strings"
)

var (
	logFormats        = []string{"text", "json"}
	collisionPolicies = []string{"last", "first", "error"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if !slices.Contains(logFormats, strings.ToLower(c.Log.Format)) {
		return fmt.Errorf("log.format must be one of %v (got %q)", logFormats, c.Log.Format)
	}

	if err := c.Convert.validate(); err != nil {
		return fmt.Errorf("convert: %w", err)
	}

	return nil
}

func (c *ConvertConfig) validate() error {
	if strings.TrimSpace(c.OutputDir) == "" {
		return fmt.Errorf("output_dir must not be empty")
	}
	if c.OutputSuffix == "" {
		return fmt.Errorf("output_suffix must not be empty")
	}
	if strings.ContainsAny(c.OutputSuffix, `/\`) {
		return fmt.Errorf("output_suffix must not contain path separators (got %q)", c.OutputSuffix)
	}
	if c.Indent < 1 || c.Indent > 8 {
		return fmt.Errorf("indent must be between 1 and 8 (got %d)", c.Indent)
	}
	if !slices.Contains(collisionPolicies, c.CollisionPolicy) {
		return fmt.Errorf("collision_policy must be one of %v (got %q)", collisionPolicies, c.CollisionPolicy)
	}
	if !c.SkipEncodingRepair && strings.TrimSpace(c.SourceCharset) == "" {
		return fmt.Errorf("source_charset is required unless skip_encoding_repair is set")
	}
	for from, to := range c.SpecialCases {
		if from == "" || to == "" {
			return fmt.Errorf("special_cases entries need a non-empty name and replacement (got %q: %q)", from, to)
		}
	}
	return nil
}
