package collections

import (
	"fmt"
	"sort"
	"strings"

	"listinglab/internal/render"

	"github.com/rs/zerolog"
)

// Extractor normalizes completed collection payloads into a render.Result.
//
// PreferredFragment names a filename fragment (e.g. "square") used to pick
// the primary asset. Whether the provider guarantees that naming convention
// is unclear, so a miss is flagged through the logger and the first asset is
// used instead of failing.
type Extractor struct {
	PreferredFragment string
	Logger            zerolog.Logger
}

// Extract maps a completed payload into a normalized result. List-shaped
// payloads keep provider order; keyed-map payloads are sorted by key so
// repeated extraction of the same payload is idempotent.
func (e Extractor) Extract(payload any) (render.Result, error) {
	p, ok := payload.(*StatusPayload)
	if !ok {
		return render.Result{}, fmt.Errorf("collections: unexpected payload type %T", payload)
	}

	var urls []string
	var names []string
	switch {
	case len(p.Images) > 0:
		for _, img := range p.Images {
			if img.URL == "" {
				continue
			}
			urls = append(urls, img.URL)
			names = append(names, img.Name)
		}
	case len(p.ImageURLs) > 0:
		keys := make([]string, 0, len(p.ImageURLs))
		for k := range p.ImageURLs {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if p.ImageURLs[k] == "" {
				continue
			}
			urls = append(urls, p.ImageURLs[k])
			names = append(names, k)
		}
	}

	urls = e.promotePreferred(p.UID, names, urls)

	return render.Result{
		AssetURLs:  urls,
		ArchiveURL: p.ZipURL,
		Raw:        p.Raw(),
	}, nil
}

// promotePreferred moves the asset matching the configured fragment to the
// front. Order of the remaining assets is preserved.
func (e Extractor) promotePreferred(uid string, names, urls []string) []string {
	if e.PreferredFragment == "" || len(urls) < 2 {
		return urls
	}
	for i, name := range names {
		if strings.Contains(strings.ToLower(name), strings.ToLower(e.PreferredFragment)) {
			if i == 0 {
				return urls
			}
			reordered := make([]string, 0, len(urls))
			reordered = append(reordered, urls[i])
			reordered = append(reordered, urls[:i]...)
			reordered = append(reordered, urls[i+1:]...)
			return reordered
		}
	}
	e.Logger.Warn().
		Str("collection_uid", uid).
		Str("fragment", e.PreferredFragment).
		Msg("no asset matched preferred fragment, falling back to first asset")
	return urls
}
