// Package imageconv converts WebP stills produced by image models into JPEG.
package imageconv

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/webp"
)

// Quality is the JPEG quality used for converted images.
const Quality = 90

// Stats summarizes a directory conversion.
type Stats struct {
	Total     int
	Converted int
	Failed    int
	Errors    []error
}

// ConvertFile writes <base>.jpg next to a .webp file and returns its path.
func ConvertFile(path string) (string, error) {
	in, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer in.Close()

	img, err := webp.Decode(in)
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}

	outPath := strings.TrimSuffix(path, filepath.Ext(path)) + ".jpg"
	out, err := os.Create(outPath)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", outPath, err)
	}

	if err := encodeJPEG(out, img); err != nil {
		out.Close()
		os.Remove(outPath)
		return "", fmt.Errorf("failed to encode %s: %w", outPath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", outPath, err)
	}

	return outPath, nil
}

// ConvertDir converts every *.webp file directly inside dir. Extensions match
// case-insensitively and subdirectories are not visited. A file that fails
// is counted and the rest are still converted.
func ConvertDir(dir string) (Stats, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Stats{}, fmt.Errorf("directory %s does not exist", dir)
		}
		return Stats{}, err
	}
	if !info.IsDir() {
		return Stats{}, fmt.Errorf("%s is not a directory", dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to read %s: %w", dir, err)
	}

	var stats Stats
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".webp") {
			continue
		}

		stats.Total++
		if _, err := ConvertFile(filepath.Join(dir, entry.Name())); err != nil {
			stats.Failed++
			stats.Errors = append(stats.Errors, err)
			continue
		}
		stats.Converted++
	}

	return stats, nil
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, toRGB(img), &jpeg.Options{Quality: Quality})
}

// toRGB drops the alpha channel, keeping the straight color of each pixel.
func toRGB(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	rgb := image.NewRGBA(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			rgb.SetRGBA(x, y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff})
		}
	}
	return rgb
}
