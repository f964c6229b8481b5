// Package misc keeps program identification which is set at build time.
package misc

var (
	appName = "tpager"
	version = "dev"
	gitHash = "unknown"
)

// GetAppName returns program name used for logs, reports and temporary files.
func GetAppName() string {
	return appName
}

// GetVersion returns program version, set with -ldflags "-X textpager/misc.version=...".
func GetVersion() string {
	return version
}

// GetGitHash returns commit hash program was built from.
func GetGitHash() string {
	return gitHash
}
