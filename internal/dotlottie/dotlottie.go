// Package dotlottie reads .lottie archives: zip envelopes bundling one or
// more Lottie animation payloads under animations/ plus a manifest.json
// describing them and optional image assets under images/.
package dotlottie

import (
	"archive/zip"
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"
)

// ManifestAnimation is one animation listed in the manifest.
type ManifestAnimation struct {
	ID         string  `json:"id"`
	Speed      float64 `json:"speed,omitempty"`
	Loop       bool    `json:"loop,omitempty"`
	ThemeColor string  `json:"themeColor,omitempty"`
}

// Manifest is the package manifest inside a .lottie archive.
type Manifest struct {
	Generator         string              `json:"generator,omitempty"`
	Author            string              `json:"author,omitempty"`
	Version           string              `json:"version,omitempty"`
	ActiveAnimationID string              `json:"activeAnimationId,omitempty"`
	Animations        []ManifestAnimation `json:"animations"`
}

// Validate checks that data is a readable zip envelope containing a
// parseable manifest.json. It does not inspect the animations themselves.
func Validate(data []byte) error {
	r, err := open(data)
	if err != nil {
		return err
	}
	raw, err := readEntry(r, "manifest.json")
	if err != nil {
		return fmt.Errorf("dotlottie: missing manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("dotlottie: malformed manifest: %w", err)
	}
	return nil
}

// ReadManifest decodes the package manifest.
func ReadManifest(data []byte) (*Manifest, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}
	raw, err := readEntry(r, "manifest.json")
	if err != nil {
		return nil, fmt.Errorf("dotlottie: missing manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("dotlottie: malformed manifest: %w", err)
	}
	return &m, nil
}

// Animations decodes every animations/<id>.json entry, keyed by id.
// When inlineAssets is set, image assets referenced by the payloads are
// rewritten in place as base64 data URIs (embedded flag set), so the
// returned payloads are self-contained.
func Animations(data []byte, inlineAssets bool) (map[string]map[string]any, error) {
	r, err := open(data)
	if err != nil {
		return nil, err
	}

	var images map[string]string
	if inlineAssets {
		images = readImages(r)
	}

	anims := make(map[string]map[string]any)
	for _, f := range r.File {
		if !strings.HasPrefix(f.Name, "animations/") || !strings.HasSuffix(f.Name, ".json") {
			continue
		}
		raw, err := readFile(f)
		if err != nil {
			continue
		}
		var payload map[string]any
		if err := json.Unmarshal(raw, &payload); err != nil {
			continue
		}
		if inlineAssets {
			inline(payload, images)
		}
		id := strings.TrimSuffix(path.Base(f.Name), ".json")
		anims[id] = payload
	}
	if len(anims) == 0 {
		return nil, fmt.Errorf("dotlottie: no animation entries")
	}
	return anims, nil
}

func open(data []byte) (*zip.Reader, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("dotlottie: not a zip envelope: %w", err)
	}
	return r, nil
}

func readEntry(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name == name {
			return readFile(f)
		}
	}
	return nil, fmt.Errorf("entry %s not found", name)
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// readImages collects images/* entries as data URIs keyed by file name.
func readImages(r *zip.Reader) map[string]string {
	images := make(map[string]string)
	for _, f := range r.File {
		if !strings.HasPrefix(f.Name, "images/") || strings.HasSuffix(f.Name, "/") {
			continue
		}
		raw, err := readFile(f)
		if err != nil {
			continue
		}
		name := path.Base(f.Name)
		images[name] = "data:" + mimeFor(name) + ";base64," + base64.StdEncoding.EncodeToString(raw)
	}
	return images
}

// inline rewrites image assets in a payload to embedded data URIs, the way
// dotlottie-js does with inlineAssets: p becomes the data URI, u is cleared,
// e marks the asset embedded.
func inline(payload map[string]any, images map[string]string) {
	assets, ok := payload["assets"].([]any)
	if !ok {
		return
	}
	for _, a := range assets {
		asset, ok := a.(map[string]any)
		if !ok {
			continue
		}
		p, ok := asset["p"].(string)
		if !ok {
			continue
		}
		uri, ok := images[path.Base(p)]
		if !ok {
			continue
		}
		asset["p"] = uri
		asset["u"] = ""
		asset["e"] = float64(1)
	}
}

func mimeFor(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".png":
		return "image/png"
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	}
	return "application/octet-stream"
}
