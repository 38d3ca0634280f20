package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/jperret21/GW-event-viz/internal/objstore"
)

// maxDocumentSize bounds how much of a response body is read.
const maxDocumentSize = 64 << 20

// Fetcher reads the raw catalog document from one location.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// Loader picks a Fetcher by location scheme.
type Loader struct {
	HTTP *http.Client
	S3   objstore.API // nil disables s3:// locations
}

// Load fetches and parses the snapshot at location. Transport errors wrap
// ErrFetchFailure, shape errors wrap ErrMalformedCatalog.
func (l Loader) Load(ctx context.Context, location string) (*Snapshot, error) {
	b, err := l.fetcher(location).Fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	return Parse(b)
}

func (l Loader) fetcher(location string) Fetcher {
	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		c := l.HTTP
		if c == nil {
			c = http.DefaultClient
		}
		return HTTPFetcher{Client: c}
	case strings.HasPrefix(location, "s3://"):
		return S3Fetcher{Client: l.S3}
	default:
		return FileFetcher{}
	}
}

type FileFetcher struct{}

func (FileFetcher) Fetch(_ context.Context, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	return b, nil
}

type HTTPFetcher struct {
	Client *http.Client
}

func (f HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	req.Header.Set("Accept", "application/json")
	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("%w: http %d", ErrFetchFailure, resp.StatusCode)
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailure, err)
	}
	return b, nil
}

type S3Fetcher struct {
	Client objstore.API
}

func (f S3Fetcher) Fetch(ctx context.Context, location string) ([]byte, error) {
	if f.Client == nil {
		return nil, fmt.Errorf("%w: no s3 client for %s", ErrFetchFailure, location)
	}
	bucket, key, err := objstore.ParseURL(location)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailure, err)
	}
	out, err := f.Client.GetObject(ctx, &s3.GetObjectInput{Bucket: &bucket, Key: &key})
	if err != nil {
		return nil, fmt.Errorf("%w: s3 get %s: %v", ErrFetchFailure, location, err)
	}
	defer out.Body.Close()
	b, err := io.ReadAll(io.LimitReader(out.Body, maxDocumentSize))
	if err != nil {
		return nil, fmt.Errorf("%w: read object: %v", ErrFetchFailure, err)
	}
	return b, nil
}
