// Copyright (c) 2026 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0

package devices

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ManuGH/capctl/internal/domain/capture/model"
	"github.com/ManuGH/capctl/internal/domain/capture/ports"
	xglog "github.com/ManuGH/capctl/internal/log"
	"github.com/ManuGH/capctl/internal/metrics"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

var _ ports.DeviceSource = (*FileSource)(nil)

// DefaultDebounce coalesces the burst of events editors produce on save.
const DefaultDebounce = 250 * time.Millisecond

// ErrInvalidDeviceFile is returned when the device file cannot be parsed.
var ErrInvalidDeviceFile = errors.New("invalid device file")

type deviceFile struct {
	Microphones []model.Device `yaml:"microphones"`
	Cameras     []model.Device `yaml:"cameras"`
}

// FileSource serves device lists from a YAML file and reloads it on change.
// A failed reload keeps the last good lists.
type FileSource struct {
	path     string
	debounce time.Duration
	logger   zerolog.Logger

	mu    sync.RWMutex
	lists map[model.DeviceKind][]model.Device
}

// NewFileSource loads path once and returns the source.
func NewFileSource(path string) (*FileSource, error) {
	s := &FileSource{
		path:     filepath.Clean(path),
		debounce: DefaultDebounce,
		logger:   xglog.WithComponent("devices"),
	}
	lists, err := s.read()
	if err != nil {
		return nil, err
	}
	s.lists = lists
	return s, nil
}

// Path returns the watched file.
func (s *FileSource) Path() string { return s.path }

func (s *FileSource) Devices(_ context.Context, kind model.DeviceKind) ([]model.Device, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Device(nil), s.lists[kind]...), nil
}

// Reload re-reads the file. On error the previous lists stay in place.
func (s *FileSource) Reload() error {
	lists, err := s.read()
	metrics.RecordDeviceSourceReload(err == nil)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str(xglog.FieldEvent, "devices.reload_failed").
			Str(xglog.FieldPath, s.path).
			Msg("device file reload failed, keeping previous devices")
		return err
	}

	s.mu.Lock()
	s.lists = lists
	s.mu.Unlock()

	s.logger.Info().
		Str(xglog.FieldEvent, "devices.reloaded").
		Str(xglog.FieldPath, s.path).
		Int("microphones", len(lists[model.DeviceMicrophone])).
		Int("cameras", len(lists[model.DeviceCamera])).
		Msg("device file reloaded")
	return nil
}

// Watch reloads the file whenever it changes until ctx is done. The parent
// directory is watched so atomic replace-by-rename is seen too.
func (s *FileSource) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watch device file directory: %w", err)
	}

	s.logger.Info().
		Str(xglog.FieldEvent, "devices.watcher_started").
		Str(xglog.FieldPath, s.path).
		Msg("watching device file for changes")

	var (
		timer   *time.Timer
		pending <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Str(xglog.FieldEvent, "devices.watcher_stopped").Msg("device watcher stopped")
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != s.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug().
				Str(xglog.FieldEvent, "devices.file_changed").
				Str("op", event.Op.String()).
				Msg("device file changed")
			if timer == nil {
				timer = time.NewTimer(s.debounce)
			} else {
				timer.Reset(s.debounce)
			}
			pending = timer.C

		case <-pending:
			pending = nil
			_ = s.Reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error().
				Err(err).
				Str(xglog.FieldEvent, "devices.watcher_error").
				Msg("device watcher error")
		}
	}
}

func (s *FileSource) read() (map[model.DeviceKind][]model.Device, error) {
	// #nosec G304 -- the device file path is provided by the operator
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read device file: %w", err)
	}

	var f deviceFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidDeviceFile, s.path, err)
	}

	lists := map[model.DeviceKind][]model.Device{
		model.DeviceMicrophone: normalize(f.Microphones, model.DeviceMicrophone),
		model.DeviceCamera:     normalize(f.Cameras, model.DeviceCamera),
	}
	for kind, list := range lists {
		seen := make(map[string]struct{}, len(list))
		for _, d := range list {
			if d.ID == "" {
				return nil, fmt.Errorf("%w: %s: %s entry without id", ErrInvalidDeviceFile, s.path, kind)
			}
			if _, dup := seen[d.ID]; dup {
				return nil, fmt.Errorf("%w: %s: duplicate %s id %q", ErrInvalidDeviceFile, s.path, kind, d.ID)
			}
			seen[d.ID] = struct{}{}
		}
	}
	return lists, nil
}
