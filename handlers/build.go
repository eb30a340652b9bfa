package handlers

const (
	// DefaultBuildNumber is used when BUILD_NUMBER is unset or empty.
	DefaultBuildNumber = "001"
	// DefaultCommitSHA is used when COMMIT_SHA is unset or empty.
	DefaultCommitSHA = "unknown"
)

// BuildIdentity identifies the build this process was started from.
type BuildIdentity struct {
	BuildNumber string
	CommitSHA   string
}

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ResolveBuildIdentity reads BUILD_NUMBER and COMMIT_SHA through lookup,
// falling back to the defaults for unset or empty values.
func ResolveBuildIdentity(lookup LookupFunc) BuildIdentity {
	return BuildIdentity{
		BuildNumber: envOr(lookup, "BUILD_NUMBER", DefaultBuildNumber),
		CommitSHA:   envOr(lookup, "COMMIT_SHA", DefaultCommitSHA),
	}
}

func envOr(lookup LookupFunc, key string, fallback string) string {
	if lookup == nil {
		return fallback
	}
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return fallback
}
