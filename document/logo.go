package document

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// maxLogoPixels bounds the longest side of the embedded logo.
const maxLogoPixels = 512

var (
	ErrNoLogo          = errors.New("document: no logo")
	ErrUnsupportedLogo = errors.New("document: unsupported logo format")
)

// EmbeddedImage is a decoded raster image ready for embedding, always PNG.
type EmbeddedImage struct {
	Name   string // stable per content, used as the renderer's image key
	Data   []byte
	Width  int
	Height int
}

// LogoResult is the outcome of decoding the company logo. A non-nil Err means
// the header omits the logo; it never aborts the layout.
type LogoResult struct {
	Image *EmbeddedImage
	Err   error
}

// OK reports whether a logo is available.
func (r LogoResult) OK() bool {
	return r.Err == nil && r.Image != nil
}

// DecodeLogo decodes a base64 image or data URL, sniffs its type, bounds its
// size and re-encodes it as PNG.
func DecodeLogo(raw string) LogoResult {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return LogoResult{Err: ErrNoLogo}
	}
	if strings.HasPrefix(raw, "data:") {
		_, payload, ok := strings.Cut(raw, ",")
		if !ok {
			return LogoResult{Err: fmt.Errorf("logo data url: missing payload")}
		}
		raw = payload
	}

	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		// Some encoders drop the padding.
		data, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(raw, "="))
		if err != nil {
			return LogoResult{Err: fmt.Errorf("logo base64: %w", err)}
		}
	}

	mt := mimetype.Detect(data)
	if !mt.Is("image/png") && !mt.Is("image/jpeg") && !mt.Is("image/gif") {
		return LogoResult{Err: fmt.Errorf("%w: %s", ErrUnsupportedLogo, mt.String())}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return LogoResult{Err: fmt.Errorf("logo decode: %w", err)}
	}
	b := img.Bounds()
	if b.Dx() > maxLogoPixels || b.Dy() > maxLogoPixels {
		img = imaging.Fit(img, maxLogoPixels, maxLogoPixels, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return LogoResult{Err: fmt.Errorf("logo encode: %w", err)}
	}

	out := buf.Bytes()
	return LogoResult{Image: &EmbeddedImage{
		Name:   "logo-" + uuid.NewSHA1(uuid.NameSpaceOID, out).String(),
		Data:   out,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}}
}
