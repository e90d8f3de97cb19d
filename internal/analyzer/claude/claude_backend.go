package claude

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"pensiondoc/internal/analyzer"
	"pensiondoc/internal/config"
	"pensiondoc/internal/port"
)

const (
	// ProviderName identifies this backend in configuration.
	ProviderName = "claude"

	apiBaseURL       = "https://api.anthropic.com/v1"
	anthropicVersion = "2023-06-01"
	filesAPIBeta     = "files-api-2025-04-14"
	defaultModel     = "claude-sonnet-4-20250514"
	listPageSize     = 1000
)

// Backend implements port.ExtractionBackend using Anthropic's Files and Messages APIs.
type Backend struct {
	apiKey          string
	model           string
	baseURL         string
	maxOutputTokens int
	client          *http.Client
}

// NewBackend creates a Claude-based extraction backend from the analyzer config.
func NewBackend(cfg *config.AnalyzerConfig) *Backend {
	return newBackend(cfg, cfg.BaseURL)
}

// NewBackendWithBaseURL creates a backend pointing at a custom API base URL (for testing).
func NewBackendWithBaseURL(cfg *config.AnalyzerConfig, baseURL string) *Backend {
	return newBackend(cfg, baseURL)
}

func newBackend(cfg *config.AnalyzerConfig, baseURL string) *Backend {
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	timeout := cfg.Timeout()
	if timeout == 0 {
		timeout = 120 * time.Second
	}
	if baseURL == "" {
		baseURL = apiBaseURL
	}
	maxTokens := cfg.MaxOutputTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	return &Backend{
		apiKey:          cfg.APIKey,
		model:           model,
		baseURL:         strings.TrimSuffix(baseURL, "/"),
		maxOutputTokens: maxTokens,
		client:          &http.Client{Timeout: timeout},
	}
}

func (b *Backend) Name() string {
	return ProviderName
}

func (b *Backend) Model() string {
	return b.model
}

type fileMetadata struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	MIMEType  string    `json:"mime_type"`
	CreatedAt time.Time `json:"created_at"`
}

func (f *fileMetadata) artifact() port.Artifact {
	return port.Artifact{
		ID:        f.ID,
		FileName:  f.Filename,
		MIMEType:  f.MIMEType,
		CreatedAt: f.CreatedAt,
	}
}

func (b *Backend) UploadFile(ctx context.Context, upload port.ArtifactUpload) (*port.Artifact, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, upload.FileName))
	partHeader.Set("Content-Type", upload.ContentType)
	part, err := mw.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("creating file part: %w", err)
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return nil, fmt.Errorf("reading document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/files", body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var meta fileMetadata
	if err := b.do(req, &meta); err != nil {
		return nil, err
	}
	if meta.ID == "" {
		return nil, fmt.Errorf("claude API returned a file without id")
	}

	artifact := meta.artifact()
	return &artifact, nil
}

func (b *Backend) Extract(ctx context.Context, artifact *port.Artifact, instructions string) (string, error) {
	reqBody := map[string]interface{}{
		"model":      b.model,
		"max_tokens": b.maxOutputTokens,
		"messages": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type": "document",
						"source": map[string]interface{}{
							"type":    "file",
							"file_id": artifact.ID,
						},
					},
					{
						"type": "text",
						"text": instructions,
					},
				},
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/messages", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp messagesResponse
	if err := b.do(req, &resp); err != nil {
		return "", err
	}

	if resp.StopReason == "max_tokens" {
		return "", fmt.Errorf("output truncated (stop_reason: max_tokens, output_tokens: %d)", resp.Usage.OutputTokens)
	}

	var sb strings.Builder
	for _, c := range resp.Content {
		if c.Type == "text" {
			sb.WriteString(c.Text)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from API")
	}
	return sb.String(), nil
}

type messagesResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	StopReason string `json:"stop_reason"`
	Usage      struct {
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

func (b *Backend) DeleteFile(ctx context.Context, artifactID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, b.baseURL+"/files/"+url.PathEscape(artifactID), http.NoBody)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	return b.do(req, nil)
}

func (b *Backend) ListFiles(ctx context.Context) ([]port.Artifact, error) {
	var artifacts []port.Artifact
	afterID := ""

	for {
		q := url.Values{}
		q.Set("limit", fmt.Sprint(listPageSize))
		if afterID != "" {
			q.Set("after_id", afterID)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/files?"+q.Encode(), http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		var page struct {
			Data    []fileMetadata `json:"data"`
			HasMore bool           `json:"has_more"`
			LastID  string         `json:"last_id"`
		}
		if err := b.do(req, &page); err != nil {
			return nil, err
		}

		for i := range page.Data {
			artifacts = append(artifacts, page.Data[i].artifact())
		}
		if !page.HasMore || len(page.Data) == 0 {
			return artifacts, nil
		}
		afterID = page.LastID
		if afterID == "" {
			afterID = page.Data[len(page.Data)-1].ID
		}
	}
}

func (b *Backend) do(req *http.Request, out interface{}) error {
	req.Header.Set("x-api-key", b.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("anthropic-beta", filesAPIBeta)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling claude API: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return analyzer.NewStatusError(ProviderName, resp.StatusCode, resp.Header.Get("Retry-After"), respBody)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshaling response: %w", err)
	}
	return nil
}
