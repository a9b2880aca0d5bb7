package asset

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ErrUnsupportedScheme is returned for references that are neither local
// files nor http(s) URLs.
var ErrUnsupportedScheme = errors.New("unsupported image scheme")

// FetchResolver loads images from local files and over http(s).
type FetchResolver struct {
	client *http.Client
	box    image.Point
	log    *zap.Logger
}

var _ Resolver = (*FetchResolver)(nil)

// ResolverOption configures a FetchResolver.
type ResolverOption func(*FetchResolver)

// WithHTTPClient sets the client used for http(s) references.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *FetchResolver) {
		r.client = c
	}
}

// WithMaxFrameSize scales frames larger than w by h down to fit.
func WithMaxFrameSize(w, h int) ResolverOption {
	return func(r *FetchResolver) {
		r.box = image.Pt(w, h)
	}
}

// WithResolverLogger sets the logger.
func WithResolverLogger(log *zap.Logger) ResolverOption {
	return func(r *FetchResolver) {
		r.log = log
	}
}

// NewFetchResolver returns a FetchResolver.
func NewFetchResolver(opts ...ResolverOption) *FetchResolver {
	r := &FetchResolver{
		client: http.DefaultClient,
		log:    zap.NewNop(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Resolve fetches and decodes ref. ref is an http(s) or file URL or a
// plain file path.
func (r *FetchResolver) Resolve(ctx context.Context, ref string) (*Animated, error) {
	data, err := r.fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	a, err := Decode(data, r.box)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ref, err)
	}
	r.log.Debug("Image resolved", zap.String("ref", ref), zap.Int("frames", len(a.Frames)), zap.Duration("delay", a.FrameDuration))
	return a, nil
}

func (r *FetchResolver) fetch(ctx context.Context, ref string) ([]byte, error) {
	u, err := url.Parse(ref)
	if err != nil || len(u.Scheme) <= 1 {
		// Not a URL, or a Windows drive letter.
		return readFile(ref)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return readFile(filepath.FromSlash(u.Path))
	case "http", "https":
		return r.get(ctx, u.String())
	}
	return nil, fmt.Errorf("%s: %w", ref, ErrUnsupportedScheme)
}

func (r *FetchResolver) get(ctx context.Context, ref string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch image %s: %s", ref, resp.Status)
	}
	return readLimited(resp.Body, ref)
}

func readFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer f.Close()
	return readLimited(f, path)
}

// readLimited reads at most MaxImageBytes.
func readLimited(rd io.Reader, name string) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(rd, MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read image %s: %w", name, err)
	}
	if len(data) > MaxImageBytes {
		return nil, fmt.Errorf("image %s exceeds %d bytes", name, MaxImageBytes)
	}
	return data, nil
}
