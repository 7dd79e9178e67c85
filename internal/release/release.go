package release

import (
	"errors"
	"strings"

	"github.com/egerke001/halfop/internal/extractor"
)

const (
	KeyTagName = "tag_name"
	KeyName    = "name"
)

var (
	ErrNoVersion = errors.New("release has neither tag_name nor name")
	ErrNoAsset   = errors.New("release has no matching asset")
)

type Asset struct {
	DownloadURL string
}

// Descriptor is the part of a release description the updater cares about.
// It lives for one check and is never persisted.
type Descriptor struct {
	TagName string
	Name    string
	Assets  []Asset
}

// Parse scans raw for the version fields and for every assetKey value ending
// in suffix. Missing fields leave the corresponding member empty.
func Parse(raw, assetKey, suffix string) Descriptor {
	var d Descriptor

	if v, err := extractor.String(raw, KeyTagName); err == nil {
		d.TagName = strings.TrimSpace(v)
	}
	if v, err := extractor.String(raw, KeyName); err == nil {
		d.Name = strings.TrimSpace(v)
	}

	if urls, err := extractor.AllWithSuffix(raw, assetKey, suffix); err == nil {
		d.Assets = make([]Asset, 0, len(urls))
		for _, u := range urls {
			if strings.TrimSpace(u) == "" {
				continue
			}
			d.Assets = append(d.Assets, Asset{DownloadURL: u})
		}
	}

	return d
}

// Version prefers tag_name and falls back to name when the tag is blank.
func (d Descriptor) Version() (string, error) {
	if d.TagName != "" {
		return d.TagName, nil
	}
	if d.Name != "" {
		return d.Name, nil
	}
	return "", ErrNoVersion
}

func (d Descriptor) FirstAsset() (Asset, error) {
	if len(d.Assets) == 0 {
		return Asset{}, ErrNoAsset
	}
	return d.Assets[0], nil
}

// SameVersion reports whether two version strings are equal ignoring case.
// No ordering is computed: anything different counts as an update.
func SameVersion(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
