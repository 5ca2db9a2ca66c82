// Package persist implements the worksheet session persistence format:
// version, artist name, timestamp, source image, processed data, filled
// regions, active theme, and tool config, exactly as specified for the
// session loader collaborator. Saving and loading round-trips a
// worksheet.ProcessedImage bit-identically.
package persist

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image"

	"github.com/klauspost/compress/zstd"
	"github.com/xfmoulet/qoi"

	"github.com/willibrandon/paintnumbers/pkg/worksheet"
)

// FormatVersion is the current persistence document version.
const FormatVersion = 1

// Session is the on-disk/wire document consumed by the session loader.
type Session struct {
	Version       int                    `json:"version"`
	ArtistName    string                 `json:"artistName"`
	TimestampMS   int64                  `json:"timestamp"`
	SourceImage   string                 `json:"sourceImage"`
	ProcessedData *ProcessedDataEnvelope `json:"processedData"`
	FilledRegions []int                  `json:"filledRegions"`
	ActiveTheme   string                 `json:"activeTheme"`
	ToolConfig    ToolConfig             `json:"toolConfig"`
}

// ToolConfig mirrors the structured options the spec leaves to the
// caller's discretion; fields are opaque pass-through values for the
// painter UI, not interpreted by this package.
type ToolConfig struct {
	BrushSize int     `json:"brushSize,omitempty"`
	ShowGrid  bool    `json:"showGrid,omitempty"`
	ZoomLevel float64 `json:"zoomLevel,omitempty"`
	Theme     string  `json:"theme,omitempty"`
}

// ProcessedDataEnvelope carries a worksheet.ProcessedImage with its two
// bulk arrays (PixelData, RegionMap) compressed: base64 of their
// zstd-compressed byte/int32 representations, chosen over plain
// array-of-numbers for size on multi-megapixel images.
type ProcessedDataEnvelope struct {
	OriginalWidth  int                     `json:"originalWidth"`
	OriginalHeight int                     `json:"originalHeight"`
	Regions        []worksheet.Region      `json:"regions"`
	Palette        []worksheet.PaletteColor `json:"palette"`
	PixelDataZstd  string                  `json:"pixelDataZstd"`
	RegionMapZstd  string                  `json:"regionMapZstd"`
}

// Save builds a Session document from a ProcessedImage and the
// surrounding game state, encoding the source image as QOI and
// compressing the bulk arrays with zstd.
func Save(img *worksheet.ProcessedImage, source image.Image, artistName string, timestampMS int64, filledRegions []int, activeTheme string, toolConfig ToolConfig) (*Session, error) {
	sourceDataURL, err := encodeSourceImage(source)
	if err != nil {
		return nil, fmt.Errorf("persist: encode source image: %w", err)
	}

	pixelDataZstd, err := compressAndEncode(img.PixelData)
	if err != nil {
		return nil, fmt.Errorf("persist: compress pixel data: %w", err)
	}

	regionMapZstd, err := compressAndEncode(intsToBytes(img.RegionMap))
	if err != nil {
		return nil, fmt.Errorf("persist: compress region map: %w", err)
	}

	return &Session{
		Version:     FormatVersion,
		ArtistName:  artistName,
		TimestampMS: timestampMS,
		SourceImage: sourceDataURL,
		ProcessedData: &ProcessedDataEnvelope{
			OriginalWidth:  img.OriginalWidth,
			OriginalHeight: img.OriginalHeight,
			Regions:        img.Regions,
			Palette:        img.Palette,
			PixelDataZstd:  pixelDataZstd,
			RegionMapZstd:  regionMapZstd,
		},
		FilledRegions: filledRegions,
		ActiveTheme:   activeTheme,
		ToolConfig:    toolConfig,
	}, nil
}

// Load reconstructs a worksheet.ProcessedImage from a Session document.
func Load(s *Session) (*worksheet.ProcessedImage, error) {
	if s.ProcessedData == nil {
		return nil, fmt.Errorf("persist: session has no processedData")
	}
	pd := s.ProcessedData

	pixelData, err := decodeAndDecompress(pd.PixelDataZstd)
	if err != nil {
		return nil, fmt.Errorf("persist: decompress pixel data: %w", err)
	}

	regionMapBytes, err := decodeAndDecompress(pd.RegionMapZstd)
	if err != nil {
		return nil, fmt.Errorf("persist: decompress region map: %w", err)
	}
	regionMap := bytesToInts(regionMapBytes)

	return &worksheet.ProcessedImage{
		OriginalWidth:  pd.OriginalWidth,
		OriginalHeight: pd.OriginalHeight,
		Regions:        pd.Regions,
		Palette:        pd.Palette,
		PixelData:      pixelData,
		RegionMap:      regionMap,
	}, nil
}

// MarshalJSON-compatible helpers: ToJSON/FromJSON wrap the standard
// encoding/json calls so callers don't need to import it separately.

// ToJSON serializes a Session to its JSON wire form.
func ToJSON(s *Session) ([]byte, error) {
	return json.Marshal(s)
}

// FromJSON deserializes a Session from its JSON wire form.
func FromJSON(data []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("persist: malformed session document: %w", err)
	}
	return &s, nil
}

// encodeSourceImage encodes img as QOI (lossless, fast, trivial format)
// and wraps it as a data URL, matching the persistence format's
// sourceImage field (spec §6).
func encodeSourceImage(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := qoi.Encode(&buf, img); err != nil {
		return "", err
	}
	return "data:image/qoi;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeSourceImage is the inverse of encodeSourceImage, exposed for
// callers that need the raw pixels back (e.g. "show original" overlays
// reconstructed purely from a saved session).
func DecodeSourceImage(dataURL string) (image.Image, error) {
	const prefix = "data:image/qoi;base64,"
	if len(dataURL) < len(prefix) || dataURL[:len(prefix)] != prefix {
		return nil, fmt.Errorf("persist: sourceImage is not a qoi data URL")
	}
	raw, err := base64.StdEncoding.DecodeString(dataURL[len(prefix):])
	if err != nil {
		return nil, fmt.Errorf("persist: malformed base64 in sourceImage: %w", err)
	}
	return qoi.Decode(bytes.NewReader(raw))
}

func compressAndEncode(data []byte) (string, error) {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return "", err
	}
	defer enc.Close()

	compressed := enc.EncodeAll(data, nil)
	return base64.StdEncoding.EncodeToString(compressed), nil
}

func decodeAndDecompress(encoded string) ([]byte, error) {
	compressed, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("malformed base64: %w", err)
	}

	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	return dec.DecodeAll(compressed, nil)
}

// intsToBytes packs a []int (region IDs, always small non-negative
// values in practice) into a little-endian int32 byte stream for
// compression.
func intsToBytes(ints []int) []byte {
	out := make([]byte, len(ints)*4)
	for i, v := range ints {
		o := i * 4
		out[o] = byte(v)
		out[o+1] = byte(v >> 8)
		out[o+2] = byte(v >> 16)
		out[o+3] = byte(v >> 24)
	}
	return out
}

func bytesToInts(b []byte) []int {
	out := make([]int, len(b)/4)
	for i := range out {
		o := i * 4
		out[i] = int(int32(b[o]) | int32(b[o+1])<<8 | int32(b[o+2])<<16 | int32(b[o+3])<<24)
	}
	return out
}
