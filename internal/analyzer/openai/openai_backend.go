package openai

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
	ProviderName = "openai"

	apiBaseURL   = "https://api.openai.com/v1"
	defaultModel = "gpt-4o"
	filePurpose  = "user_data"
	listPageSize = 10000
)

// Backend implements port.ExtractionBackend using the OpenAI Files and Responses APIs.
type Backend struct {
	apiKey          string
	model           string
	baseURL         string
	maxOutputTokens int
	client          *http.Client
}

// NewBackend creates an OpenAI-based extraction backend from the analyzer config.
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

// fileObject models an entry of the Files API.
type fileObject struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	Purpose   string `json:"purpose"`
	CreatedAt int64  `json:"created_at"`
}

func (f *fileObject) artifact() port.Artifact {
	return port.Artifact{
		ID:        f.ID,
		FileName:  f.Filename,
		MIMEType:  "application/pdf",
		CreatedAt: time.Unix(f.CreatedAt, 0).UTC(),
	}
}

func (b *Backend) UploadFile(ctx context.Context, upload port.ArtifactUpload) (*port.Artifact, error) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)

	if err := mw.WriteField("purpose", filePurpose); err != nil {
		return nil, fmt.Errorf("writing purpose field: %w", err)
	}
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

	var file fileObject
	if err := b.do(req, &file); err != nil {
		return nil, err
	}
	if file.ID == "" {
		return nil, fmt.Errorf("openai API returned a file without id")
	}

	artifact := file.artifact()
	return &artifact, nil
}

func (b *Backend) Extract(ctx context.Context, artifact *port.Artifact, instructions string) (string, error) {
	reqBody := map[string]interface{}{
		"model":             b.model,
		"max_output_tokens": b.maxOutputTokens,
		"input": []map[string]interface{}{
			{
				"role": "user",
				"content": []map[string]interface{}{
					{
						"type":    "input_file",
						"file_id": artifact.ID,
					},
					{
						"type": "input_text",
						"text": instructions,
					},
				},
			},
		},
		"text": map[string]interface{}{
			"format": map[string]interface{}{
				"type": "json_object",
			},
		},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/responses", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	var resp responsesAPIResponse
	if err := b.do(req, &resp); err != nil {
		return "", err
	}
	return resp.outputText()
}

// responsesAPIResponse models the parts of the Responses API reply this backend reads.
type responsesAPIResponse struct {
	Status            string `json:"status"`
	IncompleteDetails *struct {
		Reason string `json:"reason"`
	} `json:"incomplete_details"`
	Output []struct {
		Type    string `json:"type"`
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	} `json:"output"`
}

// outputText concatenates every output_text part of the message outputs.
func (r *responsesAPIResponse) outputText() (string, error) {
	if r.Status == "incomplete" {
		reason := "unknown"
		if r.IncompleteDetails != nil && r.IncompleteDetails.Reason != "" {
			reason = r.IncompleteDetails.Reason
		}
		return "", fmt.Errorf("output truncated (status: incomplete, reason: %s)", reason)
	}

	var sb strings.Builder
	for _, item := range r.Output {
		if item.Type != "message" {
			continue
		}
		for _, c := range item.Content {
			if c.Type == "output_text" {
				sb.WriteString(c.Text)
			}
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("empty response from API: no output text")
	}
	return sb.String(), nil
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
	after := ""

	for {
		q := url.Values{}
		q.Set("purpose", filePurpose)
		q.Set("limit", fmt.Sprint(listPageSize))
		if after != "" {
			q.Set("after", after)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+"/files?"+q.Encode(), http.NoBody)
		if err != nil {
			return nil, fmt.Errorf("creating request: %w", err)
		}

		var page struct {
			Data    []fileObject `json:"data"`
			HasMore bool         `json:"has_more"`
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
		after = page.Data[len(page.Data)-1].ID
	}
}

// do sends req with credentials and decodes a 2xx JSON body into out (when non-nil).
func (b *Backend) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling openai API: %w", err)
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
