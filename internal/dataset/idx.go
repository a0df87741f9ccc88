package dataset

import (
	"compress/gzip"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

// IDX magic numbers (big-endian): unsigned byte tensors of rank 3 and 1.
const (
	idxImagesMagic = 0x00000803
	idxLabelsMagic = 0x00000801
)

// MNIST file names as distributed; a .gz suffix is also accepted.
var mnistFiles = map[string][2]string{
	"train": {"train-images-idx3-ubyte", "train-labels-idx1-ubyte"},
	"test":  {"t10k-images-idx3-ubyte", "t10k-labels-idx1-ubyte"},
}

// LoadMNIST reads the named split ("train" or "test") from IDX files in dir.
// Files are never downloaded; pixel bytes are normalized to [0,1] and images
// flattened row-major.
func LoadMNIST(dir, split string) (*Dataset, error) {
	names, ok := mnistFiles[split]
	if !ok {
		return nil, fmt.Errorf("unknown mnist split: %s", split)
	}

	images, rows, cols, err := readIDXImages(filepath.Join(dir, names[0]))
	if err != nil {
		return nil, fmt.Errorf("load mnist images: %w", err)
	}

	labels, err := readIDXLabels(filepath.Join(dir, names[1]))
	if err != nil {
		return nil, fmt.Errorf("load mnist labels: %w", err)
	}

	if len(images) != len(labels) {
		return nil, fmt.Errorf("mnist %s: %d images but %d labels", split, len(images), len(labels))
	}

	const numClasses = 10
	samples := make([]nn.Sample, len(images))
	for i := range images {
		y, err := OneHot(int(labels[i]), numClasses)
		if err != nil {
			return nil, fmt.Errorf("mnist label %d: %w", i, err)
		}
		samples[i] = nn.Sample{X: images[i], Y: y}
	}

	return &Dataset{
		Name:       "mnist-" + split,
		Samples:    samples,
		Dim:        rows * cols,
		NumClasses: numClasses,
	}, nil
}

// openIDX opens path, or path+".gz" wrapped in a gzip reader.
func openIDX(path string) (io.ReadCloser, error) {
	if f, err := os.Open(path); err == nil {
		return f, nil
	}

	f, err := os.Open(path + ".gz")
	if err != nil {
		return nil, err
	}
	zr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &gzipFile{zr: zr, f: f}, nil
}

type gzipFile struct {
	zr *gzip.Reader
	f  *os.File
}

func (g *gzipFile) Read(p []byte) (int, error) { return g.zr.Read(p) }

func (g *gzipFile) Close() error {
	zerr := g.zr.Close()
	ferr := g.f.Close()
	if zerr != nil {
		return zerr
	}
	return ferr
}

func readIDXImages(path string) ([]nn.Vector, int, int, error) {
	r, err := openIDX(path)
	if err != nil {
		return nil, 0, 0, err
	}
	defer r.Close()

	var header [4]uint32
	for i := range header {
		if err := binary.Read(r, binary.BigEndian, &header[i]); err != nil {
			return nil, 0, 0, fmt.Errorf("read idx header: %w", err)
		}
	}

	if header[0] != idxImagesMagic {
		return nil, 0, 0, fmt.Errorf("bad idx image magic 0x%08x", header[0])
	}

	count := int(header[1])
	rows := int(header[2])
	cols := int(header[3])
	pixels := rows * cols

	buf := make([]byte, pixels)
	images := make([]nn.Vector, count)
	for i := 0; i < count; i++ {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, 0, 0, fmt.Errorf("read image %d: %w", i, err)
		}
		img := make(nn.Vector, pixels)
		for j, b := range buf {
			img[j] = float64(b) / 255.0
		}
		images[i] = img
	}

	return images, rows, cols, nil
}

func readIDXLabels(path string) ([]byte, error) {
	r, err := openIDX(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var header [2]uint32
	for i := range header {
		if err := binary.Read(r, binary.BigEndian, &header[i]); err != nil {
			return nil, fmt.Errorf("read idx header: %w", err)
		}
	}

	if header[0] != idxLabelsMagic {
		return nil, fmt.Errorf("bad idx label magic 0x%08x", header[0])
	}

	labels := make([]byte, int(header[1]))
	if _, err := io.ReadFull(r, labels); err != nil {
		return nil, fmt.Errorf("read labels: %w", err)
	}
	return labels, nil
}
