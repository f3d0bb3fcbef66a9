package stamp

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/oshokin/go-template/internal/config"
	"github.com/oshokin/go-template/internal/domain/build"
)

// Names of the linker-flag targets inside the version package.
const (
	versionVariable          = "version"
	goVersionVariable        = "goVersion"
	buildToolVersionVariable = "buildToolVersion"
)

// Environment variable names printed by FormatEnv.
const (
	envVersion          = "BUILD_VERSION"
	envGoVersion        = "BUILD_GO_VERSION"
	envBuildToolVersion = "BUILD_TOOL_VERSION"
)

// render writes res to out in the requested format.
func render(out io.Writer, format Format, cfg *config.Config, res *Result) error {
	info := res.Stamp.Info

	var err error

	switch format {
	case FormatVersion:
		_, err = fmt.Fprintln(out, info.Version)
	case FormatLDFlags:
		_, err = fmt.Fprintln(out, LDFlags(cfg.Package, info))
	case FormatEnv:
		_, err = io.WriteString(out, Env(info))
	case FormatTable:
		renderTable(out, res)
	default:
		err = fmt.Errorf("%w: %q", errUnknownFormat, format)
	}

	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// LDFlags renders the -X linker flags that set the version package variables.
func LDFlags(pkg string, info build.Info) string {
	flags := []string{
		ldflag(pkg, versionVariable, info.Version),
		ldflag(pkg, goVersionVariable, info.GoVersion),
		ldflag(pkg, buildToolVersionVariable, info.BuildToolVersion),
	}

	return strings.Join(flags, " ")
}

// ldflag renders a single quoted -X assignment.
func ldflag(pkg, name, value string) string {
	return fmt.Sprintf("-X '%s.%s=%s'", pkg, name, value)
}

// Env renders KEY=VALUE lines, one per embedded string.
func Env(info build.Info) string {
	var builder strings.Builder

	for _, kv := range [][2]string{
		{envVersion, info.Version},
		{envGoVersion, info.GoVersion},
		{envBuildToolVersion, info.BuildToolVersion},
	} {
		builder.WriteString(kv[0])
		builder.WriteString("=")
		builder.WriteString(kv[1])
		builder.WriteString("\n")
	}

	return builder.String()
}

// renderTable prints the stamp and its provenance as a rounded table.
func renderTable(out io.Writer, res *Result) {
	source := "resolved"

	switch {
	case res.Cached:
		source = "cache"
	case !res.CacheEnabled:
		source = "resolved (cache disabled)"
	}

	t := table.NewWriter()
	t.SetOutputMirror(out)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendRow(table.Row{"Version", res.Stamp.Info.Version})
	t.AppendRow(table.Row{"Go", res.Stamp.Info.GoVersion})
	t.AppendRow(table.Row{"Build tool", strings.TrimSpace(res.Stamp.BuildTool + " " + res.Stamp.Info.BuildToolVersion)})
	t.AppendRow(table.Row{"Base version", res.Stamp.BaseVersion})
	t.AppendRow(table.Row{"Source", source})
	t.SetStyle(table.StyleRounded)
	t.Render()
}
