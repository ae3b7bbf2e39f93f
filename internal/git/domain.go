package git

// PublishRequest describes a snapshot of files to be pushed as a single
// commit to a remote branch.
type PublishRequest struct {
	RemoteURL string            // Remote repository URL
	Branch    string            // Target branch, overwritten on every publish
	Files     map[string][]byte // Forward-slash relative paths
	Message   string            // Commit message (optional)

	// Basic auth credentials; both empty means anonymous access.
	Username string
	Token    string
}

// PublishResult is the outcome of a successful publish.
type PublishResult struct {
	Branch string
	Commit string
}
