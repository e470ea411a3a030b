package entity

// BuildResult is the outcome of running the configured build command.
type BuildResult struct {
	Command  string // The command that was run, empty if none was configured
	ExitCode int    // Process exit code, zero for success
	Err      error  // Set when the command could not be started at all
}

// Success reports whether the build may be deployed.
func (r BuildResult) Success() bool {
	return r.Err == nil && r.ExitCode == 0
}
