package runtime

var (
	// Version Build Var
	Version   string
	GitCommit string
)

// VersionString returns the build version, "dev" for local builds.
func VersionString() string {
	if Version == "" {
		return "dev"
	}
	return Version
}
