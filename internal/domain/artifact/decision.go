package artifact

// Action is what the upload tool does with an artifact.
type Action int

const (
	// Skip leaves the channel untouched.
	Skip Action = iota
	// UploadNew uploads a package the channel does not list.
	UploadNew
	// UploadChanged uploads a package whose listed copy differs.
	UploadChanged
)

// String returns the lowercase action name used in logs.
func (a Action) String() string {
	switch a {
	case Skip:
		return "skip"
	case UploadNew:
		return "upload-new"
	case UploadChanged:
		return "upload-changed"
	default:
		return "unknown"
	}
}

// Decision is the outcome of comparing an artifact with the channel.
type Decision struct {
	// Action to take.
	Action Action
	// Force requests an overwrite of the existing channel entry.
	// Only meaningful for UploadChanged.
	Force bool
	// Reason is a human-readable explanation for the logs.
	Reason string
}

// ShouldUpload reports whether the decision requires running the uploader.
func (d Decision) ShouldUpload() bool {
	return d.Action != Skip
}
