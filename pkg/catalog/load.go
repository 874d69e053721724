// SPDX-License-Identifier: Apache-2.0
package catalog

import (
	"context"
	_ "embed"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"resty.dev/v3"
)

// SourceSample selects the catalog bundled with the binary
const SourceSample = "sample"

// DefaultTimeout bounds a remote fetch when no timeout is configured
const DefaultTimeout = 10 * time.Second

//go:embed sample.json
var sampleDocument []byte

// LoadOption customises Load
type LoadOption func(*loadOptions)

type loadOptions struct {
	timeout time.Duration
}

// WithTimeout sets the timeout for remote sources
func WithTimeout(d time.Duration) LoadOption {
	return func(o *loadOptions) {
		if d > 0 {
			o.timeout = d
		}
	}
}

// Load reads a catalog once from source: "sample", an http(s) URL, or a file
// path. There is no retry; any error is meant to abort startup.
func Load(ctx context.Context, source string, opts ...LoadOption) (*Catalog, error) {
	o := loadOptions{timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&o)
	}

	var (
		data   []byte
		format Format
		err    error
	)

	switch {
	case source == "" || source == SourceSample:
		data, format = sampleDocument, FormatJSON
	case isRemote(source):
		data, format, err = fetchRemote(ctx, source, o.timeout)
	default:
		data, err = os.ReadFile(source)
		if err != nil {
			err = fmt.Errorf("failed to read catalog file: %w", err)
		}
		format = DetectFormat(source, "")
	}
	if err != nil {
		return nil, err
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", source, err)
	}

	log.Debug("catalog loaded", "source", source, "items", c.Len())
	return c, nil
}

func isRemote(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// fetchRemote downloads a catalog document; retries stay disabled
func fetchRemote(ctx context.Context, url string, timeout time.Duration) ([]byte, Format, error) {
	client := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetHeader("Accept", "application/json, application/yaml;q=0.9")
	defer client.Close()

	resp, err := client.R().
		SetContext(ctx).
		Get(url)
	if err != nil {
		return nil, FormatJSON, fmt.Errorf("failed to fetch catalog %s: %w", url, err)
	}
	if resp.IsError() {
		return nil, FormatJSON, fmt.Errorf("failed to fetch catalog %s: %s", url, resp.Status())
	}

	return resp.Bytes(), DetectFormat(url, resp.Header().Get("Content-Type")), nil
}
