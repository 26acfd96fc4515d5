package layout

import (
	"image"
	"os"
	"strings"
	"sync"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ImageProber reports an image's intrinsic aspect ratio (width/height).
// A zero ratio with a nil error means the source could not be probed and
// no aspect check should be made.
type ImageProber interface {
	Aspect(url string) (float64, error)
}

// FileProber decodes image headers from the local filesystem. Remote URLs
// are never fetched during layout; they probe as unknown.
type FileProber struct {
	mu    sync.Mutex
	cache map[string]float64
}

// NewFileProber creates a prober with an empty aspect cache
func NewFileProber() *FileProber {
	return &FileProber{cache: make(map[string]float64)}
}

func (p *FileProber) Aspect(url string) (float64, error) {
	if strings.Contains(url, "://") && !strings.HasPrefix(url, "file://") {
		return 0, nil
	}
	path := strings.TrimPrefix(url, "file://")

	p.mu.Lock()
	cached, ok := p.cache[path]
	p.mu.Unlock()
	if ok {
		return cached, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, err
	}
	ratio := 0.0
	if cfg.Height > 0 {
		ratio = float64(cfg.Width) / float64(cfg.Height)
	}

	p.mu.Lock()
	p.cache[path] = ratio
	p.mu.Unlock()
	return ratio, nil
}

// nopProber skips every probe; used when aspect checking is disabled
type nopProber struct{}

func (nopProber) Aspect(string) (float64, error) { return 0, nil }
