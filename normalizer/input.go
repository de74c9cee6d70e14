package normalizer

import (
	"mime"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const (
	VariantJSON  = "json"
	VariantImage = "image"
	VariantAudio = "audio"
	VariantGrid  = "grid"
)

// RawInput is a single user-supplied input awaiting normalization.
// The set of implementations is closed: JSONText, ImageFile, AudioFile
// and DrawnGrid.
type RawInput interface {
	variant() string
}

// JSONText is a JSON document expected to hold a 28x28 numeric array.
type JSONText struct {
	Text string
}

// ImageFile is an uploaded image. Only image/png is normalized.
type ImageFile struct {
	Data []byte
	MIME string
}

// AudioFile is an uploaded audio clip. No numeric contract exists for
// audio yet, so normalizing one always fails with UnsupportedMIME.
type AudioFile struct {
	Data []byte
	MIME string
}

// DrawnGrid is a freehand drawing on the 28x28 canvas.
type DrawnGrid struct {
	Cells Grid
}

func (JSONText) variant() string  { return VariantJSON }
func (ImageFile) variant() string { return VariantImage }
func (AudioFile) variant() string { return VariantAudio }
func (DrawnGrid) variant() string { return VariantGrid }

// VariantOf returns the variant label of raw, or "unknown".
func VariantOf(raw RawInput) string {
	if raw == nil {
		return "unknown"
	}

	return raw.variant()
}

// ImageFromFile wraps file contents as an ImageFile. When declared is
// empty the MIME type is sniffed from the content.
func ImageFromFile(data []byte, declared string) ImageFile {
	return ImageFile{Data: data, MIME: detectMIME(data, declared)}
}

// InputFromFile picks the variant matching the file's MIME type: images
// become ImageFile, audio becomes AudioFile, JSON and text become JSONText.
// Anything else is treated as an image so the normalizer reports the MIME.
func InputFromFile(data []byte, declared string) RawInput {
	mt := detectMIME(data, declared)

	switch mediaType := baseMediaType(mt); {
	case strings.HasPrefix(mediaType, "audio/"):
		return AudioFile{Data: data, MIME: mt}
	case mediaType == "application/json", strings.HasPrefix(mediaType, "text/"):
		return JSONText{Text: string(data)}
	default:
		return ImageFile{Data: data, MIME: mt}
	}
}

func detectMIME(data []byte, declared string) string {
	if mt := strings.TrimSpace(declared); mt != "" {
		return mt
	}

	return mimetype.Detect(data).String()
}

func baseMediaType(mt string) string {
	mediaType, _, err := mime.ParseMediaType(mt)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(mt))
	}

	return mediaType
}
