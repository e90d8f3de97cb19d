package gemini

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/config"
	"pensiondoc/internal/port"
)

const (
	// ProviderName identifies this backend in configuration.
	ProviderName = "gemini"

	defaultModel        = "gemini-2.0-flash"
	defaultPollInterval = 2 * time.Second
	abandonTimeout      = 30 * time.Second
)

// filesAPI is the subset of the Gemini SDK the backend drives.
type filesAPI interface {
	uploadFile(ctx context.Context, r io.Reader, displayName, mimeType string) (*genai.File, error)
	getFile(ctx context.Context, name string) (*genai.File, error)
	deleteFile(ctx context.Context, name string) error
	listFiles(ctx context.Context) ([]*genai.File, error)
	generate(ctx context.Context, model string, maxOutputTokens int32, parts ...genai.Part) (*genai.GenerateContentResponse, error)
	close() error
}

// sdkClient adapts *genai.Client to filesAPI.
type sdkClient struct {
	client *genai.Client
}

func (s *sdkClient) uploadFile(ctx context.Context, r io.Reader, displayName, mimeType string) (*genai.File, error) {
	return s.client.UploadFile(ctx, "", r, &genai.UploadFileOptions{DisplayName: displayName, MIMEType: mimeType})
}

func (s *sdkClient) getFile(ctx context.Context, name string) (*genai.File, error) {
	return s.client.GetFile(ctx, name)
}

func (s *sdkClient) deleteFile(ctx context.Context, name string) error {
	return s.client.DeleteFile(ctx, name)
}

func (s *sdkClient) listFiles(ctx context.Context) ([]*genai.File, error) {
	var files []*genai.File
	iter := s.client.ListFiles(ctx)
	for {
		file, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			return files, nil
		}
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}
}

func (s *sdkClient) generate(ctx context.Context, model string, maxOutputTokens int32, parts ...genai.Part) (*genai.GenerateContentResponse, error) {
	m := s.client.GenerativeModel(model)
	m.SetTemperature(0)
	m.SetMaxOutputTokens(maxOutputTokens)
	m.ResponseMIMEType = "application/json"
	return m.GenerateContent(ctx, parts...)
}

func (s *sdkClient) close() error {
	return s.client.Close()
}

// Backend implements port.ExtractionBackend using the Gemini Files API and
// GenerateContent through the official Go SDK.
type Backend struct {
	api             filesAPI
	model           string
	maxOutputTokens int32
	pollInterval    time.Duration
}

// NewBackend creates a Gemini-based extraction backend from the analyzer config.
func NewBackend(ctx context.Context, cfg *config.AnalyzerConfig) (*Backend, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithEndpoint(cfg.BaseURL))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}

	return newBackend(&sdkClient{client: client}, model, int32(maxTokens), defaultPollInterval), nil
}

func newBackend(api filesAPI, model string, maxOutputTokens int32, pollInterval time.Duration) *Backend {
	return &Backend{
		api:             api,
		model:           model,
		maxOutputTokens: maxOutputTokens,
		pollInterval:    pollInterval,
	}
}

func (b *Backend) Name() string {
	return ProviderName
}

func (b *Backend) Model() string {
	return b.model
}

func (b *Backend) UploadFile(ctx context.Context, upload port.ArtifactUpload) (*port.Artifact, error) {
	file, err := b.api.uploadFile(ctx, upload.Content, upload.FileName, upload.ContentType)
	if err != nil {
		return nil, fmt.Errorf("uploading file: %w", providerError(err))
	}

	// Uploaded PDFs are processed asynchronously and cannot be referenced until active.
	// From here on the file exists, so every failure path deletes it.
	for file.State == genai.FileStateProcessing {
		select {
		case <-ctx.Done():
			b.abandon(file.Name)
			return nil, ctx.Err()
		case <-time.After(b.pollInterval):
		}
		polled, err := b.api.getFile(ctx, file.Name)
		if err != nil {
			b.abandon(file.Name)
			return nil, fmt.Errorf("polling file state: %w", providerError(err))
		}
		file = polled
	}
	if file.State == genai.FileStateFailed {
		b.abandon(file.Name)
		return nil, fmt.Errorf("file %s failed processing", file.Name)
	}

	artifact := toArtifact(file)
	return &artifact, nil
}

// abandon removes a file the caller will never learn about.
func (b *Backend) abandon(name string) {
	ctx, cancel := context.WithTimeout(context.Background(), abandonTimeout)
	defer cancel()
	_ = b.api.deleteFile(ctx, name)
}

func (b *Backend) Extract(ctx context.Context, artifact *port.Artifact, instructions string) (string, error) {
	resp, err := b.api.generate(ctx, b.model, b.maxOutputTokens,
		genai.FileData{MIMEType: artifact.MIMEType, URI: artifact.URI},
		genai.Text(instructions),
	)
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", providerError(err))
	}
	return extractText(resp)
}

func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.FinishReason == genai.FinishReasonMaxTokens {
		return "", fmt.Errorf("output truncated (finishReason: MAX_TOKENS)")
	}
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var sb strings.Builder
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("no text parts in response")
	}
	return sb.String(), nil
}

func (b *Backend) DeleteFile(ctx context.Context, artifactID string) error {
	if err := b.api.deleteFile(ctx, artifactID); err != nil {
		return providerError(err)
	}
	return nil
}

func (b *Backend) ListFiles(ctx context.Context) ([]port.Artifact, error) {
	files, err := b.api.listFiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing files: %w", providerError(err))
	}
	artifacts := make([]port.Artifact, 0, len(files))
	for _, file := range files {
		artifacts = append(artifacts, toArtifact(file))
	}
	return artifacts, nil
}

// Close releases the underlying SDK client.
func (b *Backend) Close() error {
	if b.api != nil {
		return b.api.close()
	}
	return nil
}

// providerError turns quota exhaustion reported by the SDK, over REST (HTTP 429)
// or gRPC (RESOURCE_EXHAUSTED), into a *analyzer.RateLimitError.
func providerError(err error) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return analyzer.NewRateLimitError(ProviderName, err, analyzer.ParseRetryAfterHeader(apiErr.Header.Get("Retry-After")))
	}
	if st, ok := status.FromError(err); ok && st.Code() == codes.ResourceExhausted {
		return analyzer.NewRateLimitError(ProviderName, err, 0)
	}
	return err
}

// toArtifact keys artifacts by the file resource name ("files/abc"), which is
// what GetFile and DeleteFile expect. The display name carries our prefix.
func toArtifact(file *genai.File) port.Artifact {
	return port.Artifact{
		ID:        file.Name,
		FileName:  file.DisplayName,
		URI:       file.URI,
		MIMEType:  file.MIMEType,
		CreatedAt: file.CreateTime,
	}
}
