package entity

// ArchiveInfo describes the archive produced from the output directory.
type ArchiveInfo struct {
	Path      string // Path to the archive file in the project root
	FileCount int    // Number of regular files stored in the archive
	Bytes     int64  // Total uncompressed size of the stored files
}
