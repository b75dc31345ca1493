package config

import (
	"encoding/json"
	"io"
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/battscan/battscan/pkg/analyzer"
	"github.com/battscan/battscan/pkg/utils/ptr"
)

var defaultFileConfig = func() *RawFileConfig {
	t := analyzer.DefaultThresholds()
	return &RawFileConfig{
		VoltageImbalanceVolts:         ptr.To(t.VoltageImbalanceVolts),
		CellOverheatCelsius:           ptr.To(t.CellOverheatCelsius),
		HighResistanceMilliohms:       ptr.To(t.HighResistanceMilliohms),
		AcceleratedDegradationPerYear: ptr.To(t.AcceleratedDegradationPerYear),
		MinCyclesForAnalysis:          ptr.To(t.MinCyclesForAnalysis),
	}
}()

var _ Config = &File{}

// File is a JSON-file backed Config.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// NewFile loads a Config from configPath. A missing file is not an error;
// defaults are used until the first Save.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

// RawFileConfig is the on-disk representation. Fields are pointers so that
// omitted keys fall back to defaults instead of zero values.
type RawFileConfig struct {
	VoltageImbalanceVolts         *float64 `json:"voltageImbalanceVolts,omitempty"`
	CellOverheatCelsius           *float64 `json:"cellOverheatCelsius,omitempty"`
	HighResistanceMilliohms       *float64 `json:"highResistanceMilliohms,omitempty"`
	AcceleratedDegradationPerYear *float64 `json:"acceleratedDegradationPerYear,omitempty"`
	MinCyclesForAnalysis          *int     `json:"minCyclesForAnalysis,omitempty"`
}

func (r *RawFileConfig) fillDefaults() {
	if r.VoltageImbalanceVolts == nil {
		r.VoltageImbalanceVolts = defaultFileConfig.VoltageImbalanceVolts
	}
	if r.CellOverheatCelsius == nil {
		r.CellOverheatCelsius = defaultFileConfig.CellOverheatCelsius
	}
	if r.HighResistanceMilliohms == nil {
		r.HighResistanceMilliohms = defaultFileConfig.HighResistanceMilliohms
	}
	if r.AcceleratedDegradationPerYear == nil {
		r.AcceleratedDegradationPerYear = defaultFileConfig.AcceleratedDegradationPerYear
	}
	if r.MinCyclesForAnalysis == nil {
		r.MinCyclesForAnalysis = defaultFileConfig.MinCyclesForAnalysis
	}
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c := &RawFileConfig{}

	file, err := os.Open(f.filepath)
	switch {
	case os.IsNotExist(err):
		logrus.WithField("path", f.filepath).Debug("config file does not exist, using defaults")
	case err != nil:
		return pkgerrors.Wrapf(err, "failed to open config file %s", f.filepath)
	default:
		defer func() { _ = file.Close() }()
		b, err := io.ReadAll(file)
		if err != nil {
			return pkgerrors.Wrapf(err, "failed to read config file %s", f.filepath)
		}
		if err := json.Unmarshal(b, c); err != nil {
			return pkgerrors.Wrapf(err, "failed to parse config file %s", f.filepath)
		}
	}

	c.fillDefaults()
	f.c = c
	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	b, err := json.MarshalIndent(f.c, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal config")
	}

	if err := os.WriteFile(f.filepath, b, 0644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write config file %s", f.filepath)
	}

	return nil
}

func (f *File) VoltageImbalanceVolts() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return *f.c.VoltageImbalanceVolts
}

func (f *File) CellOverheatCelsius() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return *f.c.CellOverheatCelsius
}

func (f *File) HighResistanceMilliohms() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return *f.c.HighResistanceMilliohms
}

func (f *File) AcceleratedDegradationPerYear() float64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return *f.c.AcceleratedDegradationPerYear
}

func (f *File) MinCyclesForAnalysis() int {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return *f.c.MinCyclesForAnalysis
}

func (f *File) SetVoltageImbalanceVolts(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.VoltageImbalanceVolts = ptr.To(v)
}

func (f *File) SetCellOverheatCelsius(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.CellOverheatCelsius = ptr.To(v)
}

func (f *File) SetHighResistanceMilliohms(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.HighResistanceMilliohms = ptr.To(v)
}

func (f *File) SetAcceleratedDegradationPerYear(v float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.AcceleratedDegradationPerYear = ptr.To(v)
}

func (f *File) SetMinCyclesForAnalysis(v int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.MinCyclesForAnalysis = ptr.To(v)
}

func (f *File) Thresholds() analyzer.Thresholds {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return analyzer.Thresholds{
		VoltageImbalanceVolts:         *f.c.VoltageImbalanceVolts,
		CellOverheatCelsius:           *f.c.CellOverheatCelsius,
		HighResistanceMilliohms:       *f.c.HighResistanceMilliohms,
		AcceleratedDegradationPerYear: *f.c.AcceleratedDegradationPerYear,
		MinCyclesForAnalysis:          *f.c.MinCyclesForAnalysis,
	}
}

// LogrusFields returns the config as structured log fields.
func (f *File) LogrusFields() logrus.Fields {
	t := f.Thresholds()
	return logrus.Fields{
		"voltageImbalanceVolts":         t.VoltageImbalanceVolts,
		"cellOverheatCelsius":           t.CellOverheatCelsius,
		"highResistanceMilliohms":       t.HighResistanceMilliohms,
		"acceleratedDegradationPerYear": t.AcceleratedDegradationPerYear,
		"minCyclesForAnalysis":          t.MinCyclesForAnalysis,
	}
}
