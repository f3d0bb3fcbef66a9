package build

// DefaultField is the banner token used when a Tool does not set one:
// the second token of "<name> <version> (<extra>)".
const DefaultField = 2

// Tool describes how to ask a toolchain component for its version banner.
type Tool struct {
	// Command is the executable to run.
	Command string `yaml:"command" mapstructure:"command"`
	// Args are passed to the command, usually a version flag.
	Args []string `yaml:"args" mapstructure:"args"`
	// Field is the 1-based whitespace-delimited token of the first output line
	// holding the version. Zero selects DefaultField.
	Field int `yaml:"field,omitempty" mapstructure:"field"`
	// TrimPrefix is removed from the selected token, e.g. "go" in "go1.25.1".
	TrimPrefix string `yaml:"trim_prefix,omitempty" mapstructure:"trim_prefix"`
}

// FieldIndex returns the effective 1-based token position.
func (t Tool) FieldIndex() int {
	if t.Field <= 0 {
		return DefaultField
	}

	return t.Field
}

// GoCompiler asks the go command for its version: "go version go1.25.1 linux/amd64".
func GoCompiler() Tool {
	return Tool{
		Command:    "go",
		Args:       []string{"version"},
		Field:      3, //nolint:mnd // Third token of the go version banner.
		TrimPrefix: "go",
	}
}

// Make asks GNU make for its version: "GNU Make 4.4.1".
func Make() Tool {
	return Tool{
		Command: "make",
		Args:    []string{"--version"},
		Field:   3, //nolint:mnd // Third token of the GNU Make banner.
	}
}
