package domain

import (
	"fmt"
	"math"
	"time"
)

// Item is a photo reduced to the fields grouping and layout depend on.
// Items are immutable once created; GroupKey is derived from DisplayName.
type Item struct {
	// ID is an opaque unique identifier.
	ID string

	// DisplayName is the original filename including extension.
	DisplayName string

	// GroupKey is the canonical filename prefix the item is grouped under.
	GroupKey string

	// AspectRatio is width divided by height of the source image.
	AspectRatio float64
}

// Validate checks the item can be grouped and laid out.
func (i Item) Validate() error {
	if i.DisplayName == "" {
		return fmt.Errorf("%w: empty display name", ErrInvalidInput)
	}
	if math.IsNaN(i.AspectRatio) || math.IsInf(i.AspectRatio, 0) || i.AspectRatio <= 0 {
		return fmt.Errorf("%w: aspect ratio %v for %q", ErrInvalidInput, i.AspectRatio, i.DisplayName)
	}
	return nil
}

// DefaultAspectRatio is used when an image's dimensions are unknown.
const DefaultAspectRatio = 4.0 / 3.0

// Group is a set of items sharing a group key, in display order.
type Group struct {
	// Key is the shared group key.
	Key string

	// Items are the members, sorted numeric-aware by display name.
	Items []Item
}

// Photo is an item together with its image data.
type Photo struct {
	Item

	// SourcePath is where the photo was ingested from.
	SourcePath string

	// MIMEType of Data (usually image/jpeg after compression).
	MIMEType string

	// Data holds the (possibly compressed) image bytes.
	Data []byte

	// Width and Height are the pixel dimensions of Data.
	Width  int
	Height int

	// AddedAt is when the photo was added to its report.
	AddedAt time.Time
}

// ImageInfo describes a decoded image.
type ImageInfo struct {
	Width  int
	Height int

	// Format is the decoder name: "jpeg", "png", "gif" or "webp".
	Format string
}

// AspectRatio returns width/height, or DefaultAspectRatio if either is unknown.
func (i ImageInfo) AspectRatio() float64 {
	if i.Width <= 0 || i.Height <= 0 {
		return DefaultAspectRatio
	}
	return float64(i.Width) / float64(i.Height)
}

// CompressOptions controls image re-encoding.
type CompressOptions struct {
	// MaxDimension bounds the longest side in pixels.
	MaxDimension int

	// Quality is the JPEG quality, 1-100.
	Quality int
}

// PhotoFile is an image file found on disk.
type PhotoFile struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// ChangeType identifies the kind of change detected in a watched directory.
type ChangeType int

// Change types.
const (
	ChangeCreated ChangeType = iota
	ChangeUpdated
	ChangeDeleted
)

// String returns the string representation.
func (c ChangeType) String() string {
	switch c {
	case ChangeCreated:
		return "created"
	case ChangeUpdated:
		return "updated"
	case ChangeDeleted:
		return "deleted"
	default:
		return "unknown"
	}
}

// PhotoChange is a single filesystem change to an image file.
type PhotoChange struct {
	Type ChangeType
	Path string
}
