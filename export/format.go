package export

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents a supported export format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// PNG indicates a rasterized PNG image.
	PNG
	// SVG indicates an SVG drawing.
	SVG
	// JSON indicates the native JSON document format.
	JSON
)

// String returns the string representation of the format.
func (f Format) String() string {
	switch f {
	case PNG:
		return "PNG"
	case SVG:
		return "SVG"
	case JSON:
		return "JSON"
	default:
		return "Unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case PNG:
		return ".png"
	case SVG:
		return ".svg"
	case JSON:
		return ".json"
	default:
		return ""
	}
}

// Detect determines file format from filename extension.
func Detect(filename string) Format {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".png":
		return PNG
	case ".svg":
		return SVG
	case ".json", ".sketch":
		return JSON
	default:
		return Unknown
	}
}

// pngMagic is the fixed eight-byte PNG file signature.
var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}

// DetectFromMagic checks leading content bytes to determine format.
// This provides more reliable detection than extension-based detection.
// Returns Unknown if the format cannot be determined from the content
// alone.
func DetectFromMagic(data []byte) Format {
	if bytes.HasPrefix(data, pngMagic) {
		return PNG
	}

	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if detectSVGMagic(trimmed) {
		return SVG
	}

	// The native document format is a JSON object.
	if bytes.HasPrefix(trimmed, []byte("{")) {
		return JSON
	}

	return Unknown
}

// detectSVGMagic checks if the data looks like an SVG drawing.
func detectSVGMagic(data []byte) bool {
	if bytes.HasPrefix(data, []byte("<svg")) {
		return true
	}
	// An XML declaration followed by an svg root element.
	if bytes.HasPrefix(data, []byte("<?xml")) {
		head := data
		if len(head) > 512 {
			head = head[:512]
		}
		return bytes.Contains(head, []byte("<svg"))
	}
	return false
}

// UnsupportedFormatError reports a format request the exporter cannot
// satisfy. Callers can branch on it with errors.As to distinguish a
// bad format choice from an export failure.
type UnsupportedFormatError struct {
	Format Format
}

func (e *UnsupportedFormatError) Error() string {
	return fmt.Sprintf("unsupported export format %s", e.Format)
}
