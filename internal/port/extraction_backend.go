package port

import (
	"context"
	"io"
	"time"
)

// ArtifactUpload carries a document to be stored on the extraction service.
type ArtifactUpload struct {
	FileName    string
	ContentType string
	Content     io.Reader
}

// Artifact is a document stored transiently on the extraction service.
type Artifact struct {
	ID        string
	FileName  string
	URI       string // set by providers that reference files by URI instead of ID
	MIMEType  string
	CreatedAt time.Time
}

// ExtractionBackend abstracts a third-party document-understanding service that
// stores files and answers free-text instructions about a stored file.
type ExtractionBackend interface {
	// Name returns the provider identifier, e.g. "openai".
	Name() string
	// Model returns the model used for extraction requests.
	Model() string
	UploadFile(ctx context.Context, upload ArtifactUpload) (*Artifact, error)
	// Extract returns the model's raw text output for the instructions applied to the artifact.
	Extract(ctx context.Context, artifact *Artifact, instructions string) (string, error)
	DeleteFile(ctx context.Context, artifactID string) error
	ListFiles(ctx context.Context) ([]Artifact, error)
}
