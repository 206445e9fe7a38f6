package upload

import "time"

// PolicyEntry describes what may be uploaded under one content type.
// Container marks ZIP-based formats (zip, docx, xlsx) whose payload
// legitimately starts with a ZIP local file header.
type PolicyEntry struct {
	ContentType       string   `json:"contentType" yaml:"contentType"`
	AllowedExtensions []string `json:"allowedExtensions" yaml:"allowedExtensions"`
	MaxSizeBytes      int64    `json:"maxSizeBytes" yaml:"maxSizeBytes"`
	Container         bool     `json:"container" yaml:"container"`
}

// UploadCandidate is a single incoming file before any decision is made
type UploadCandidate struct {
	OriginalName        string
	DeclaredContentType string
	SizeBytes           int64
	Payload             []byte
}

// ValidationResult is the outcome of the policy checks
type ValidationResult struct {
	Accepted bool   `json:"accepted"`
	Code     string `json:"code,omitempty"`
	Reason   string `json:"reason,omitempty"`
}

// ScanResult is the outcome of the signature and pattern scan
type ScanResult struct {
	Clean  bool   `json:"clean"`
	Threat string `json:"threat,omitempty"`
}

// StoredFile is a persisted upload
type StoredFile struct {
	SecureFilename string    `json:"secureFilename"`
	Path           string    `json:"path"`
	OriginalName   string    `json:"originalName"`
	SizeBytes      int64     `json:"sizeBytes"`
	ContentType    string    `json:"contentType"`
	DetectedType   string    `json:"detectedType,omitempty"`
	Checksum       string    `json:"checksum,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// UploadResult is returned by the single-file processing pipeline
type UploadResult struct {
	Success  bool        `json:"success"`
	Filename string      `json:"filename,omitempty"`
	Error    string      `json:"error,omitempty"`
	File     *StoredFile `json:"-"`
}

// UploadResponse is the HTTP body of an accepted upload request
type UploadResponse struct {
	Success  bool         `json:"success"`
	Filename string       `json:"filename"`
	Files    []StoredFile `json:"files"`
}

// ErrorResponse is the HTTP body of every rejection
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// SweptFile describes a file removed by a cleanup sweep
type SweptFile struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"modTime"`
}

// CleanupResult summarises a cleanup sweep
type CleanupResult struct {
	Success bool        `json:"success"`
	MaxAge  string      `json:"maxAge"`
	Deleted []SweptFile `json:"deleted"`
	Errors  []string    `json:"errors,omitempty"`
}

// CSRFToken is returned by the token issuing endpoint
type CSRFToken struct {
	Token  string `json:"token"`
	Header string `json:"header"`
	Cookie string `json:"cookie"`
}

// FileList is returned when listing stored files
type FileList struct {
	Files []StoredFile `json:"files"`
}
