package filestorage

// Storage subdirectories
const (
	ManuscriptDir = "papers"
	RevisionDir   = "revisions"
	LogoDir       = "logos"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// Save stores data under subPath with a generated name keeping ext, and returns its URL
	Save(data []byte, ext, subPath string) (string, error)

	// DeleteFile removes a file previously returned by Save; missing files are not an error
	DeleteFile(fileURL string) error

	// GetFullPath returns the filesystem path for a stored file URL, or "" if it is outside storage
	GetFullPath(fileURL string) string
}
