package parser

// Config is the option set held by a parser. Fields left at their zero
// value in a patch are ignored by Merge, so patches compose additively.
type Config struct {
	// SourceType forces the Program sourceType ("script" or "module").
	// Empty means the parser decides per source.
	SourceType string `yaml:"sourceType,omitempty" json:"sourceType,omitempty"`

	// ECMAVersion is advisory for JavaScript-like parsers.
	ECMAVersion int `yaml:"ecmaVersion,omitempty" json:"ecmaVersion,omitempty"`

	// Locations controls whether nodes carry source ranges. Defaults on.
	Locations *bool `yaml:"locations,omitempty" json:"locations,omitempty"`

	// Ranges controls whether nodes keep their raw source snippet.
	Ranges *bool `yaml:"ranges,omitempty" json:"ranges,omitempty"`

	// PreserveParens keeps parenthesized expressions as Generic wrapper
	// nodes instead of unwrapping them.
	PreserveParens *bool `yaml:"preserveParens,omitempty" json:"preserveParens,omitempty"`
}

// DefaultConfig returns the config parsers start from.
func DefaultConfig() Config {
	return Config{Locations: Bool(true)}
}

// Merge copies the set fields of patch into c. Unset fields (zero values,
// nil pointers) leave c untouched.
func (c *Config) Merge(patch Config) {
	if patch.SourceType != "" {
		c.SourceType = patch.SourceType
	}
	if patch.ECMAVersion != 0 {
		c.ECMAVersion = patch.ECMAVersion
	}
	if patch.Locations != nil {
		c.Locations = patch.Locations
	}
	if patch.Ranges != nil {
		c.Ranges = patch.Ranges
	}
	if patch.PreserveParens != nil {
		c.PreserveParens = patch.PreserveParens
	}
}

// LocationsEnabled reports whether nodes should carry source ranges.
func (c Config) LocationsEnabled() bool {
	return c.Locations == nil || *c.Locations
}

// RangesEnabled reports whether nodes should keep raw snippets.
func (c Config) RangesEnabled() bool {
	return c.Ranges != nil && *c.Ranges
}

// Bool returns a pointer to v, for building Config patches.
func Bool(v bool) *bool { return &v }
