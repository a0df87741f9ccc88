package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/aitechroberts/deep-learning/internal/nn"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID        string             `json:"id"`
	Arch      string             `json:"arch"`
	Dataset   string             `json:"dataset"`
	Timestamp time.Time          `json:"timestamp"`
	Seed      int64              `json:"seed"`
	Epochs    int                `json:"epochs"`
	BatchSize int                `json:"batch_size"`
	ValSplit  float64            `json:"val_split"`
	Optimizer string             `json:"optimizer"`
	Schedule  string             `json:"schedule"`
	Loss      string             `json:"loss"`
	Metrics   map[string]float64 `json:"metrics"`
}

// Save writes one training run to <baseDir>/<run_id>/: metadata.json,
// history.csv (one row per epoch) and weights.json (final parameters).
func (s *Store) Save(meta RunMetadata, result *nn.Result, weights [][]float64) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Arch, time.Now().Unix())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = time.Now()
	meta.Metrics = result.Metrics

	metaFile, err := os.Create(filepath.Join(runDir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	if err := s.writeHistory(filepath.Join(runDir, "history.csv"), result); err != nil {
		return "", err
	}

	if weights != nil {
		if err := s.SaveWeights(runID, weights); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// metricColumns returns the metric names of the first epoch in stable order.
func metricColumns(result *nn.Result) []string {
	if len(result.History) == 0 {
		return nil
	}
	names := make([]string, 0, len(result.History[0].Metrics))
	for name := range result.History[0].Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Store) writeHistory(path string, result *nn.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if len(result.History) == 0 {
		return nil
	}

	cols := metricColumns(result)
	header := append([]string{"epoch", "lr", "train_loss", "val_loss"}, cols...)
	if err := w.Write(header); err != nil {
		return err
	}

	for _, st := range result.History {
		row := []string{
			strconv.Itoa(st.Epoch),
			strconv.FormatFloat(st.LR, 'f', 6, 64),
			strconv.FormatFloat(st.TrainLoss, 'f', 6, 64),
			strconv.FormatFloat(st.ValLoss, 'f', 6, 64),
		}
		for _, name := range cols {
			row = append(row, strconv.FormatFloat(st.Metrics[name], 'f', 6, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return nil
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		metaPath := filepath.Join(s.baseDir, entry.Name(), "metadata.json")
		data, err := os.ReadFile(metaPath)
		if err != nil {
			continue
		}

		var meta RunMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}

		runs = append(runs, meta)
	}

	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	return &meta, nil
}

// LoadHistory reads back the per-epoch curves: the returned columns slice
// names every column after "epoch".
func (s *Store) LoadHistory(runID string) (columns []string, rows [][]float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, "history.csv"))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, err
	}

	if len(records) < 2 {
		return nil, [][]float64{}, nil
	}

	columns = records[0][1:]
	rows = make([][]float64, 0, len(records)-1)

	for i := 1; i < len(records); i++ {
		record := records[i]
		if len(record) < 2 {
			continue
		}

		row := make([]float64, 0, len(record)-1)
		for j := 1; j < len(record); j++ {
			val, err := strconv.ParseFloat(record[j], 64)
			if err != nil {
				continue
			}
			row = append(row, val)
		}
		rows = append(rows, row)
	}

	return columns, rows, nil
}

func (s *Store) SaveWeights(runID string, weights [][]float64) error {
	file, err := os.Create(filepath.Join(s.baseDir, runID, "weights.json"))
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewEncoder(file).Encode(weights)
}

func (s *Store) LoadWeights(runID string) ([][]float64, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "weights.json"))
	if err != nil {
		return nil, err
	}

	var weights [][]float64
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, err
	}
	return weights, nil
}

// ExportData is the full-run JSON export shape.
type ExportData struct {
	ID        string             `json:"id"`
	Arch      string             `json:"arch"`
	Dataset   string             `json:"dataset"`
	Optimizer string             `json:"optimizer"`
	Schedule  string             `json:"schedule"`
	Loss      string             `json:"loss"`
	Epochs    int                `json:"epochs"`
	Columns   []string           `json:"columns"`
	History   [][]float64        `json:"history"`
	Metrics   map[string]float64 `json:"metrics"`
}

func ExportJSON(w io.Writer, meta *RunMetadata, columns []string, history [][]float64) error {
	data := ExportData{
		ID:        meta.ID,
		Arch:      meta.Arch,
		Dataset:   meta.Dataset,
		Optimizer: meta.Optimizer,
		Schedule:  meta.Schedule,
		Loss:      meta.Loss,
		Epochs:    meta.Epochs,
		Columns:   columns,
		History:   history,
		Metrics:   meta.Metrics,
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}
