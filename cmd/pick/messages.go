// SPDX-License-Identifier: Apache-2.0
package pick

import (
	"github.com/Work-Fort/Sift/pkg/catalog"
)

// CatalogLoadedMsg carries the result of the one-time catalog load
type CatalogLoadedMsg struct {
	Catalog *catalog.Catalog
	Err     error
}

// LoadFunc loads the catalog; it is called exactly once per session
type LoadFunc func() (*catalog.Catalog, error)
