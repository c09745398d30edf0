// Package color derives a theme accent from a site logo.
package color

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"math/rand/v2"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // WebP decoder
)

// FallbackColor is returned whenever no accent can be derived
const FallbackColor = "#FF9900"

const (
	sampleStride  = 4   // every 4th pixel
	minAlpha      = 125 // ~49% opacity
	minLuma       = 50
	maxLuma       = 200
	bucketSize    = 32
	maxImageBytes = 10 << 20
)

// GamingColors is the palette used when extraction gives nothing usable
var GamingColors = []string{
	"#FF6B35", // orange
	"#F7931E", // amber
	"#FFD700", // gold
	"#32CD32", // lime green
	"#00CED1", // dark turquoise
	"#1E90FF", // dodger blue
	"#8A2BE2", // blue violet
	"#FF1493", // deep pink
	"#FF4500", // orange red
	"#00FF7F", // spring green
}

// RandomGamingColor picks one entry of GamingColors
func RandomGamingColor() string {
	return GamingColors[rand.IntN(len(GamingColors))]
}

type Extractor struct {
	// AllowFiles enables plain file paths as sources. Off for the server.
	AllowFiles bool

	client *http.Client
	logger *slog.Logger
}

func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Extract returns the dominant color of the image at source as #rrggbb.
// source may be a data URI, an http(s) URL or, with AllowFiles, a file path. It never fails:
// any load or decode problem yields FallbackColor.
func (e *Extractor) Extract(ctx context.Context, source string) string {
	data, err := e.load(ctx, source)
	if err != nil {
		e.logger.Warn("color extraction: load failed", "error", err)
		return FallbackColor
	}
	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		e.logger.Warn("color extraction: decode failed", "error", err)
		return FallbackColor
	}
	return Dominant(img)
}

// AccentFor is Extract with the palette as a second fallback, so callers
// always get a color that came from somewhere meaningful.
func (e *Extractor) AccentFor(ctx context.Context, source string) string {
	if c := e.Extract(ctx, source); c != FallbackColor {
		return c
	}
	return RandomGamingColor()
}

// Dominant buckets the sampled pixels and returns the most frequent bucket
func Dominant(img image.Image) string {
	nrgba := imaging.Clone(img)
	pix := nrgba.Pix
	bounds := nrgba.Bounds()
	total := bounds.Dx() * bounds.Dy()

	counts := make(map[[3]int]int)
	var order [][3]int
	for p := 0; p < total; p += sampleStride {
		y := p / bounds.Dx()
		x := p % bounds.Dx()
		i := y*nrgba.Stride + x*4
		r, g, b, a := int(pix[i]), int(pix[i+1]), int(pix[i+2]), int(pix[i+3])

		if a < minAlpha {
			continue
		}
		luma := r*299 + g*587 + b*114
		if luma < minLuma*1000 || luma > maxLuma*1000 {
			continue
		}

		key := [3]int{quantize(r), quantize(g), quantize(b)}
		if _, ok := counts[key]; !ok {
			order = append(order, key)
		}
		counts[key]++
	}

	if len(order) == 0 {
		return FallbackColor
	}
	best, top := order[0], 0
	for _, key := range order {
		if counts[key] > top {
			best, top = key, counts[key]
		}
	}
	return fmt.Sprintf("#%02x%02x%02x", best[0], best[1], best[2])
}

// quantize rounds half up to the nearest multiple of bucketSize
func quantize(c int) int {
	q := (c + bucketSize/2) / bucketSize * bucketSize
	if q > 255 {
		return 255
	}
	return q
}

func (e *Extractor) load(ctx context.Context, source string) ([]byte, error) {
	switch {
	case source == "":
		return nil, errors.New("empty image source")
	case strings.HasPrefix(source, "data:"):
		return decodeDataURI(source)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return e.fetch(ctx, source)
	case !e.AllowFiles:
		return nil, errors.New("file sources are disabled")
	default:
		f, err := os.Open(source)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(io.LimitReader(f, maxImageBytes))
	}
}

func (e *Extractor) fetch(ctx context.Context, source string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, source, nil)
	if err != nil {
		return nil, err
	}
	resp, err := e.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching image: status %d", resp.StatusCode)
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, errors.New("malformed data URI")
	}
	if strings.HasSuffix(meta, ";base64") {
		return base64.StdEncoding.DecodeString(payload)
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}
