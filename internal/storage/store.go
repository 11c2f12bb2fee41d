// Package storage persists run outputs: metadata, final particle
// positions, trajectory snapshots, and sampled vector fields. The
// engine itself keeps no history; this layer is the driver's record.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/san-kum/steinlab/internal/experiment"
	"github.com/san-kum/steinlab/internal/stein"
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
	ID          string             `json:"id"`
	Target      string             `json:"target"`
	Kernel      string             `json:"kernel"`
	Timestamp   time.Time          `json:"timestamp"`
	Seed        uint64             `json:"seed"`
	Particles   int                `json:"particles"`
	Dim         int                `json:"dim"`
	StepSize    float64            `json:"step_size"`
	Iterations  int                `json:"iterations"`
	Lengthscale float64            `json:"lengthscale"`
	Metrics     map[string]float64 `json:"metrics"`
}

// Save writes one run directory: metadata.json, particles.csv with the
// final positions, and snapshots.csv when the run captured any.
func (s *Store) Save(meta RunMetadata, result *experiment.Result) (string, error) {
	runID := fmt.Sprintf("%s_%d", meta.Target, time.Now().Unix())
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

	if err := writePositionsCSV(filepath.Join(runDir, "particles.csv"), result.Positions); err != nil {
		return "", err
	}

	if len(result.Snapshots) > 0 {
		if err := writeSnapshotsCSV(filepath.Join(runDir, "snapshots.csv"), result.Snapshots, result.SnapshotSteps); err != nil {
			return "", err
		}
	}

	return runID, nil
}

// SaveField writes a sampled vector field alongside an existing run.
func (s *Store) SaveField(runID string, points, field []stein.Vector) error {
	f, err := os.Create(filepath.Join(s.baseDir, runID, "field.csv"))
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for i := range points {
		row := make([]string, 0, len(points[i])+len(field[i]))
		for _, v := range points[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}
		for _, v := range field[i] {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
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
			return nil, nil
		}
		return nil, err
	}

	var runs []RunMetadata
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		meta, err := s.LoadMetadata(e.Name())
		if err != nil {
			continue
		}
		runs = append(runs, meta)
	}

	sort.Slice(runs, func(i, j int) bool {
		return runs[i].Timestamp.After(runs[j].Timestamp)
	})
	return runs, nil
}

func (s *Store) LoadMetadata(runID string) (RunMetadata, error) {
	var meta RunMetadata
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, "metadata.json"))
	if err != nil {
		return meta, err
	}
	err = json.Unmarshal(data, &meta)
	return meta, err
}

// LoadPositions reads the final particle positions of a run.
func (s *Store) LoadPositions(runID string) ([]stein.Vector, error) {
	f, err := os.Open(filepath.Join(s.baseDir, runID, "particles.csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, err
	}

	positions := make([]stein.Vector, 0, len(records))
	for _, rec := range records {
		v := make(stein.Vector, len(rec))
		for d, field := range rec {
			v[d], err = strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("parse particles.csv: %w", err)
			}
		}
		positions = append(positions, v)
	}
	return positions, nil
}

func writePositionsCSV(path string, positions []stein.Vector) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for _, p := range positions {
		row := make([]string, len(p))
		for d, v := range p {
			row[d] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func writeSnapshotsCSV(path string, snapshots [][]stein.Vector, steps []int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	for si, snap := range snapshots {
		for pi, p := range snap {
			row := make([]string, 0, len(p)+2)
			row = append(row, strconv.Itoa(steps[si]), strconv.Itoa(pi))
			for _, v := range p {
				row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
	}
	return nil
}
