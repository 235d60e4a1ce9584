package moderation

// Mode values for the moderation sink.
const (
	// ModeBan calls the moderation API for vanished users and keeps the row.
	ModeBan = "ban"
	// ModeDelete removes the row and makes no moderation call.
	ModeDelete = "delete"
)

// IsValidMode reports whether mode names a supported sink.
func IsValidMode(mode string) bool {
	switch mode {
	case ModeBan, ModeDelete:
		return true
	default:
		return false
	}
}

// Config is the constructor input for a Client. The values come from the
// central configuration; this package never reads the environment itself.
type Config struct {
	// ApiURL is the base URL of the moderation API.
	ApiURL string
	// TimeoutSeconds is the HTTP timeout for ban calls.
	TimeoutSeconds int
}
