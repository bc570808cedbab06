package atlas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/jpillora/backoff"
)

const defaultRetries = 3

// Asset mirrors the API asset payload.
type Asset struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Category      string    `json:"category"`
	Description   string    `json:"description,omitempty"`
	Tags          []string  `json:"tags"`
	FilePath      string    `json:"file_path"`
	FileSize      int64     `json:"file_size"`
	FileSizeHuman string    `json:"file_size_human"`
	Checksum      string    `json:"checksum,omitempty"`
	Format        string    `json:"format,omitempty"`
	Version       string    `json:"version"`
	Thumbnail     string    `json:"thumbnail,omitempty"`
	CreatorID     string    `json:"creator_id,omitempty"`
	ProjectID     string    `json:"project_id,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Edge mirrors the API edge payload.
type Edge struct {
	ID        string            `json:"id"`
	Relation  string            `json:"relation"`
	SourceID  string            `json:"source_id"`
	TargetID  string            `json:"target_id"`
	Meta      map[string]string `json:"meta"`
	CreatedAt time.Time         `json:"created_at"`
}

// Slate mirrors the API delivery slate payload.
type Slate struct {
	Shot  string `json:"shot"`
	Block string `json:"block"`
	Text  string `json:"text"`
}

// ListAssetsOptions narrow the asset listing.
type ListAssetsOptions struct {
	Query    string
	Category string
	Tags     []string
	Project  string
	Creator  string
	Status   string
	Sort     string
	Limit    int
	Offset   int
}

// Client talks to the atlas REST API. Transient connection failures
// are retried with exponential backoff.
type Client interface {
	CreateAsset(ctx context.Context, asset *Asset) (*Asset, error)
	GetAsset(ctx context.Context, id string) (*Asset, error)
	ListAssets(ctx context.Context, opts ListAssetsOptions) ([]Asset, int64, error)
	UpdateAsset(ctx context.Context, asset *Asset) (*Asset, error)
	TrashAsset(ctx context.Context, id string) error
	RestoreAsset(ctx context.Context, id string) (*Asset, error)
	OpenAssetFolder(ctx context.Context, id string) error
	BumpAssetVersion(ctx context.Context, id, level string) (*Asset, error)
	CreateEdge(ctx context.Context, edge *Edge) (*Edge, error)
	ListEdges(ctx context.Context, relation, source, target string) ([]Edge, error)
	DeleteEdge(ctx context.Context, id string) error
	GenerateSlates(ctx context.Context, csv io.Reader, encode bool) ([]Slate, error)
	Stats(ctx context.Context) (map[string]any, error)
	Health(ctx context.Context) (map[string]string, error)
}

type client struct {
	base    string
	http    *http.Client
	retries int
}

// NewClient creates a client for the API at the base url, e.g.
// http://localhost:8080.
func NewClient(base string) Client {
	return &client{
		base:    base,
		http:    &http.Client{Timeout: 30 * time.Second},
		retries: defaultRetries,
	}
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Total *int64          `json:"total"`
	Error string          `json:"error"`
}

func (c *client) do(ctx context.Context, method, path string, body any, out any) (*envelope, error) {
	var payload []byte
	var err error

	if body != nil {
		payload, err = json.Marshal(body)
		if err != nil {
			return nil, err
		}
	}

	b := &backoff.Backoff{
		Min:    100 * time.Millisecond,
		Max:    2 * time.Second,
		Jitter: true,
	}

	var resp *http.Response
	for attempt := 0; ; attempt++ {
		req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err = c.http.Do(req)
		if err == nil {
			break
		}
		if attempt >= c.retries {
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(b.Duration()):
		}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, err
	}

	if env.Error != "" {
		return nil, fmt.Errorf("atlas: %s", env.Error)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("atlas: unexpected status %d", resp.StatusCode)
	}

	if out != nil && env.Data != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, err
		}
	}

	return &env, nil
}

func (c *client) doRaw(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return err
	}
	if env.Error != "" {
		return fmt.Errorf("atlas: %s", env.Error)
	}

	if out != nil && env.Data != nil {
		return json.Unmarshal(env.Data, out)
	}

	return nil
}

func (c *client) CreateAsset(ctx context.Context, asset *Asset) (*Asset, error) {
	var out Asset
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/assets", asset, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) GetAsset(ctx context.Context, id string) (*Asset, error) {
	var out Asset
	if _, err := c.do(ctx, http.MethodGet, "/api/v1/assets/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) ListAssets(ctx context.Context, opts ListAssetsOptions) ([]Asset, int64, error) {
	values := url.Values{}
	if opts.Query != "" {
		values.Set("q", opts.Query)
	}
	if opts.Category != "" {
		values.Set("category", opts.Category)
	}
	for _, tag := range opts.Tags {
		values.Add("tag", tag)
	}
	if opts.Project != "" {
		values.Set("project", opts.Project)
	}
	if opts.Creator != "" {
		values.Set("creator", opts.Creator)
	}
	if opts.Status != "" {
		values.Set("status", opts.Status)
	}
	if opts.Sort != "" {
		values.Set("sort", opts.Sort)
	}
	if opts.Limit > 0 {
		values.Set("limit", fmt.Sprint(opts.Limit))
	}
	if opts.Offset > 0 {
		values.Set("offset", fmt.Sprint(opts.Offset))
	}

	path := "/api/v1/assets"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out []Asset
	env, err := c.do(ctx, http.MethodGet, path, nil, &out)
	if err != nil {
		return nil, 0, err
	}

	var total int64
	if env.Total != nil {
		total = *env.Total
	}

	return out, total, nil
}

func (c *client) UpdateAsset(ctx context.Context, asset *Asset) (*Asset, error) {
	var out Asset
	if _, err := c.do(ctx, http.MethodPut, "/api/v1/assets/"+asset.ID, asset, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) TrashAsset(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/assets/"+id, nil, nil)
	return err
}

func (c *client) RestoreAsset(ctx context.Context, id string) (*Asset, error) {
	var out Asset
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/assets/"+id+"/restore", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) OpenAssetFolder(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodPost, "/api/v1/assets/"+id+"/open", nil, nil)
	return err
}

func (c *client) BumpAssetVersion(ctx context.Context, id, level string) (*Asset, error) {
	var out Asset
	body := map[string]string{"level": level}
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/assets/"+id+"/bump", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) CreateEdge(ctx context.Context, edge *Edge) (*Edge, error) {
	var out Edge
	if _, err := c.do(ctx, http.MethodPost, "/api/v1/edges", edge, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *client) ListEdges(ctx context.Context, relation, source, target string) ([]Edge, error) {
	values := url.Values{}
	if relation != "" {
		values.Set("relation", relation)
	}
	if source != "" {
		values.Set("source", source)
	}
	if target != "" {
		values.Set("target", target)
	}

	path := "/api/v1/edges"
	if encoded := values.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var out []Edge
	if _, err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) DeleteEdge(ctx context.Context, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/v1/edges/"+id, nil, nil)
	return err
}

func (c *client) GenerateSlates(ctx context.Context, csv io.Reader, encode bool) ([]Slate, error) {
	path := "/api/v1/delivery/slates"
	if encode {
		path += "?encode=ascii"
	}

	var out []Slate
	if err := c.doRaw(ctx, http.MethodPost, path, "text/csv", csv, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Stats(ctx context.Context) (map[string]any, error) {
	out := make(map[string]any)
	if _, err := c.do(ctx, http.MethodGet, "/stats", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *client) Health(ctx context.Context) (map[string]string, error) {
	out := make(map[string]string)
	if _, err := c.do(ctx, http.MethodGet, "/health", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
