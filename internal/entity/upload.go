package entity

// UploadResult is the terminal status of a single upload attempt.
type UploadResult struct {
	ID         string // Attempt id, also sent as the X-Upload-Id header
	StatusCode int    // HTTP status, zero if no response arrived
	Err        error  // Transport or request-building failure
	CleanupErr error  // Failure to remove the local archive afterwards
}

// Success reports whether the endpoint accepted the archive.
func (r UploadResult) Success() bool {
	return r.Err == nil && r.StatusCode >= 200 && r.StatusCode < 300
}
