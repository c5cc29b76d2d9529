// Package fetch downloads or copies slide images into a per-run directory.
//
// Sources are resolved against an optional base reference, read over HTTP(S)
// or from the local filesystem, and stored under a unique file name. Formats
// that a presentation cannot embed are transcoded to PNG. Failures are
// returned to the caller, which treats them as "no image". There are no
// retries.
package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif" // register decoder
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register decoder
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Sentinel errors for image fetching.
var (
	ErrInlineData        = errors.New("inline data image skipped")
	ErrUnsupportedSource = errors.New("unsupported image source")
	ErrHTTPStatus        = errors.New("unexpected HTTP status")
	ErrImageTooLarge     = errors.New("image too large")
	ErrUndecodable       = errors.New("undecodable image")
	ErrWriteImage        = errors.New("cannot store image")
)

// Defaults for remote fetches.
const (
	DefaultTimeout = 30 * time.Second
	UserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	MaxImageSize   = 32 << 20
)

const filePermissions = 0o600

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout bounds each remote request.
// Panics if d <= 0 (programmer error).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("fetch: timeout must be positive")
	}
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHTTPClient replaces the HTTP client. The per-request timeout still
// applies through the request context.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		if c != nil {
			f.client = c
		}
	}
}

// WithBase sets the reference that relative sources are resolved against:
// an http(s) URL, a file URL, or a local directory.
func WithBase(base string) Option {
	return func(f *Fetcher) {
		f.rawBase = base
	}
}

// WithLogger sets the logger for fetch diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// Fetcher stores images under one directory. It remembers sources already
// fetched so a repeated image is read once. Not safe for concurrent use.
type Fetcher struct {
	dir     string
	rawBase string
	base    *url.URL
	timeout time.Duration
	client  *http.Client
	logger  *zap.Logger

	done  map[string]string // source -> stored path
	names map[string]bool   // stored file names
	seq   int
}

// New creates a Fetcher writing into dir, which must exist.
func New(dir string, opts ...Option) (*Fetcher, error) {
	f := &Fetcher{
		dir:     dir,
		timeout: DefaultTimeout,
		client:  http.DefaultClient,
		logger:  zap.NewNop(),
		done:    make(map[string]string),
		names:   make(map[string]bool),
	}
	for _, opt := range opts {
		opt(f)
	}

	if f.rawBase != "" {
		base, err := parseBase(f.rawBase)
		if err != nil {
			return nil, fmt.Errorf("%w: base %q: %v", ErrUnsupportedSource, f.rawBase, err)
		}
		f.base = base
	}
	return f, nil
}

// Fetch resolves src and returns the local path of the stored image.
func (f *Fetcher) Fetch(ctx context.Context, src string) (string, error) {
	src = strings.TrimSpace(src)
	if p, ok := f.done[src]; ok {
		return p, nil
	}
	if hasScheme(src, "data") {
		return "", ErrInlineData
	}

	u, err := f.resolve(src)
	if err != nil {
		return "", err
	}

	var data []byte
	switch u.Scheme {
	case "http", "https":
		data, err = f.download(ctx, u)
	case "file":
		data, err = readLocal(filepath.FromSlash(u.Path))
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedSource, src)
	}
	if err != nil {
		return "", err
	}

	data, ext, err := normalize(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s", err, src)
	}

	dst := filepath.Join(f.dir, f.uniqueName(u.Path, ext))
	if err := os.WriteFile(dst, data, filePermissions); err != nil {
		return "", fmt.Errorf("%w: %v", ErrWriteImage, err)
	}

	f.done[src] = dst
	f.logger.Debug("image stored", zap.String("src", u.Redacted()), zap.String("path", dst), zap.Int("bytes", len(data)))
	return dst, nil
}

// resolve turns src into an absolute URL with an http, https or file scheme.
// A rooted path is a local file only when there is no remote base; under an
// http(s) base it is joined like any other reference.
func (f *Fetcher) resolve(src string) (*url.URL, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrUnsupportedSource)
	}
	local := f.base == nil || f.base.Scheme == "file"
	if local && filepath.IsAbs(src) && !strings.HasPrefix(src, "//") {
		return fileURL(src), nil
	}

	ref, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}
	if ref.IsAbs() {
		return ref, nil
	}
	if f.base == nil {
		abs, err := filepath.Abs(filepath.FromSlash(ref.Path))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
		}
		return fileURL(abs), nil
	}
	return f.base.ResolveReference(ref), nil
}

func (f *Fetcher) download(ctx context.Context, u *url.URL) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedSource, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s: %s", ErrHTTPStatus, u.Redacted(), resp.Status)
	}
	return readLimited(resp.Body)
}

func readLocal(p string) ([]byte, error) {
	file, err := os.Open(p) // #nosec G304 -- image paths come from the converted document
	if err != nil {
		return nil, err
	}
	defer func() { _ = file.Close() }()
	return readLimited(file)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxImageSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxImageSize {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrImageTooLarge, MaxImageSize)
	}
	return data, nil
}

// normalize keeps PNG, JPEG and GIF payloads as they are and transcodes any
// other decodable image to PNG. It returns the extension to store under.
func normalize(data []byte) ([]byte, string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrUndecodable
	}
	switch format {
	case "png":
		return data, ".png", nil
	case "jpeg":
		return data, ".jpg", nil
	case "gif":
		return data, ".gif", nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", ErrUndecodable
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUndecodable, err)
	}
	return buf.Bytes(), ".png", nil
}

// uniqueName derives a file name from the URL path, falling back to
// image_N, and suffixes repeats so no stored file is overwritten.
func (f *Fetcher) uniqueName(urlPath, ext string) string {
	stem := strings.TrimSuffix(path.Base(urlPath), path.Ext(urlPath))
	stem = sanitize(stem)
	if stem == "" {
		f.seq++
		stem = fmt.Sprintf("image_%d", f.seq)
	}

	name := stem + ext
	for n := 1; f.names[name]; n++ {
		name = fmt.Sprintf("%s_%d%s", stem, n, ext)
	}
	f.names[name] = true
	return name
}

// sanitize keeps letters, digits, dash and underscore.
func sanitize(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func parseBase(base string) (*url.URL, error) {
	if filepath.IsAbs(base) {
		return dirURL(base), nil
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}
	if !u.IsAbs() {
		abs, err := filepath.Abs(base)
		if err != nil {
			return nil, err
		}
		return dirURL(abs), nil
	}
	return u, nil
}

func fileURL(p string) *url.URL {
	return &url.URL{Scheme: "file", Path: filepath.ToSlash(p)}
}

// dirURL returns a file URL for a directory, with the trailing slash that
// makes relative references resolve inside it.
func dirURL(dir string) *url.URL {
	u := fileURL(dir)
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u
}

func hasScheme(src, scheme string) bool {
	return len(src) > len(scheme) && strings.EqualFold(src[:len(scheme)+1], scheme+":")
}
