package analysis

import (
	"bytes"
	"fmt"
	"image"
	"sort"
	"strings"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"foliogen/internal/types"
)

// PixelAnalysis is the local, deterministic read of a reference image.
// It needs no network and always produces a usable result for decodable input.
type PixelAnalysis struct {
	Palette     []string `json:"palette"` // dominant colors, #rrggbb, most frequent first
	Temperature string   `json:"temperature"`
	Saturation  string   `json:"saturation"`
	Brightness  string   `json:"brightness"`
	StyleGuess  string   `json:"style_guess"`
	Confidence  float64  `json:"confidence"`
}

// PixelAnalyzer clusters a downsampled image into dominant colors and
// classifies temperature, saturation and brightness from RGB statistics.
type PixelAnalyzer struct {
	// MaxSamples bounds how many pixels are inspected per image.
	MaxSamples int
}

func NewPixelAnalyzer() *PixelAnalyzer { return &PixelAnalyzer{MaxSamples: 4096} }

const paletteSize = 5

// Analyze decodes and inspects one reference image.
func (a *PixelAnalyzer) Analyze(ref types.ReferenceImage) (*PixelAnalysis, error) {
	img, _, err := image.Decode(bytes.NewReader(ref.Data))
	if err != nil {
		return nil, fmt.Errorf("pixel: decode %s: %w", ref.Filename, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("pixel: empty image %s", ref.Filename)
	}

	maxSamples := a.MaxSamples
	if maxSamples <= 0 {
		maxSamples = 4096
	}
	stride := 1
	for (w/stride)*(h/stride) > maxSamples {
		stride++
	}

	// Quantize to 4 bits per channel so near-identical shades cluster.
	counts := map[uint16]int{}
	var sumR, sumG, sumB, sumMax, sumMin float64
	n := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y += stride {
		for x := bounds.Min.X; x < bounds.Max.X; x += stride {
			r, g, b, _ := img.At(x, y).RGBA()
			r8, g8, b8 := float64(r>>8), float64(g>>8), float64(b>>8)
			sumR += r8
			sumG += g8
			sumB += b8
			mx := max3(r8, g8, b8)
			mn := min3(r8, g8, b8)
			sumMax += mx
			sumMin += mn
			key := uint16(r>>12)<<8 | uint16(g>>12)<<4 | uint16(b>>12)
			counts[key]++
			n++
		}
	}
	if n == 0 {
		return nil, fmt.Errorf("pixel: no samples in %s", ref.Filename)
	}

	type bucket struct {
		key   uint16
		count int
	}
	buckets := make([]bucket, 0, len(counts))
	for k, c := range counts {
		buckets = append(buckets, bucket{k, c})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].count != buckets[j].count {
			return buckets[i].count > buckets[j].count
		}
		return buckets[i].key < buckets[j].key
	})
	palette := make([]string, 0, paletteSize)
	for _, b := range buckets {
		if len(palette) == paletteSize {
			break
		}
		r := (b.key >> 8) & 0xf
		g := (b.key >> 4) & 0xf
		bl := b.key & 0xf
		// Re-center the 4-bit bucket in 8-bit space.
		palette = append(palette, fmt.Sprintf("#%02x%02x%02x", r<<4|0x8, g<<4|0x8, bl<<4|0x8))
	}

	fn := float64(n)
	avgR, avgB := sumR/fn, sumB/fn
	brightness := (sumMax + sumMin) / (2 * fn) / 255
	var saturation float64
	if sumMax > 0 {
		saturation = (sumMax - sumMin) / sumMax
	}

	out := &PixelAnalysis{
		Palette:     palette,
		Temperature: classifyTemperature(avgR, avgB),
		Saturation:  classifyLevel(saturation, 0.25, 0.55, "muted", "balanced", "vivid"),
		Brightness:  classifyLevel(brightness, 0.35, 0.7, "dark", "medium", "bright"),
		StyleGuess:  styleFromFilename(ref.Filename),
		Confidence:  0.55,
	}
	// A recognized filename style is a stronger signal than raw statistics.
	if out.StyleGuess != "eclectic" {
		out.Confidence = 0.65
	}
	return out, nil
}

func classifyTemperature(avgR, avgB float64) string {
	switch {
	case avgR > avgB*1.15:
		return "warm"
	case avgB > avgR*1.15:
		return "cool"
	default:
		return "neutral"
	}
}

func classifyLevel(v, low, high float64, below, mid, above string) string {
	switch {
	case v < low:
		return below
	case v < high:
		return mid
	default:
		return above
	}
}

var styleKeywords = []struct {
	style    string
	keywords []string
}{
	{"minimal", []string{"minimal", "clean", "simple", "white"}},
	{"dark", []string{"dark", "noir", "night", "black"}},
	{"bold", []string{"bold", "brutal", "loud", "neon"}},
	{"vintage", []string{"vintage", "retro", "classic", "analog"}},
	{"elegant", []string{"elegant", "luxury", "serif", "editorial"}},
	{"playful", []string{"playful", "fun", "color", "pop"}},
	{"modern", []string{"modern", "tech", "grid", "swiss"}},
}

func styleFromFilename(name string) string {
	lower := strings.ToLower(name)
	for _, s := range styleKeywords {
		for _, kw := range s.keywords {
			if strings.Contains(lower, kw) {
				return s.style
			}
		}
	}
	return "eclectic"
}

func max3(a, b, c float64) float64 {
	if b > a {
		a = b
	}
	if c > a {
		a = c
	}
	return a
}

func min3(a, b, c float64) float64 {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
