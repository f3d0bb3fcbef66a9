package resolver

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-ps"

	"github.com/oshokin/go-template/internal/domain/build"
	"github.com/oshokin/go-template/internal/logger"
)

// maxParentHops bounds the walk up the process tree.
const maxParentHops = 8

// ProcessFinder looks a process up by PID. It returns nil without an error
// when the process does not exist, like ps.FindProcess.
type ProcessFinder func(pid int) (ps.Process, error)

// knownBuildTools maps build driver executables to their version queries.
func knownBuildTools() map[string]build.Tool {
	return map[string]build.Tool{
		"make":  build.Make(),
		"gmake": {Command: "gmake", Args: []string{"--version"}, Field: 3},
		// just 1.36.0
		"just": {Command: "just", Args: []string{"--version"}, Field: 2},
		// Task version: v3.40.0 (h1:...)
		"task": {Command: "task", Args: []string{"--version"}, Field: 3, TrimPrefix: "v"},
		// Mage Build Tool v1.15.0
		"mage": {Command: "mage", Args: []string{"-version"}, Field: 4, TrimPrefix: "v"},
	}
}

// DetectBuildTool walks up the chain of parent processes and returns the
// version query of the first known build driver, so that "make build"
// reports make while "task build" reports task. Shells, the go command and
// anything unrecognized are skipped. When nothing is found, fallback is returned.
func DetectBuildTool(ctx context.Context, find ProcessFinder, fallback build.Tool) build.Tool {
	if find == nil {
		find = ps.FindProcess
	}

	known := knownBuildTools()
	pid := os.Getppid()

	for range maxParentHops {
		if pid <= 1 {
			break
		}

		process, err := find(pid)
		if err != nil || process == nil {
			break
		}

		name := executableName(process.Executable())
		if tool, ok := known[name]; ok {
			logger.DebugKV(ctx, "Detected build tool", "name", name, "pid", pid)
			return tool
		}

		pid = process.PPid()
	}

	logger.DebugKV(ctx, "No build tool among parent processes, using fallback", "command", fallback.Command)

	return fallback
}

// executableName normalizes a process executable to a lookup key.
func executableName(executable string) string {
	name := strings.ToLower(filepath.Base(executable))

	return strings.TrimSuffix(name, ".exe")
}
