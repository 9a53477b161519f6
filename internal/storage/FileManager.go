package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"lrn/internal/models"
	"lrn/internal/providers"
	"lrn/internal/storage/interfaces"
	"lrn/internal/structures"
)

const corruptSuffixLayout = "20060102T150405"

var errCorrupt = errors.New("corrupt compressed data")

// ErrUnreadable is returned by the save methods for a file whose last load
// failed and which is still in place. Writing it would replace content that
// was never read.
var ErrUnreadable = errors.New("file could not be read and was left in place")

type FileManager struct {
	compressor interfaces.CompressorInterface
	logger     providers.Logger
	metrics    providers.MetricsProviderInterface
	compress   bool
	rename     func(oldpath, newpath string) error

	mu        sync.Mutex
	untouched map[string]error
}

func NewFileManager(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) *FileManager {
	return &FileManager{
		compressor: compressor,
		logger:     logger,
		metrics:    metrics,
		compress:   conf.Persistence.Compress,
		rename:     os.Rename,
		untouched:  make(map[string]error),
	}
}

func (f *FileManager) Close() {
	f.compressor.Close()
}

// SaveResults writes the whole store atomically.
func (f *FileManager) SaveResults(fileName string, results []models.RawResult, generatedAt time.Time) error {
	if err := f.guard(fileName); err != nil {
		return err
	}
	if results == nil {
		results = []models.RawResult{}
	}
	file := models.ResultsFile{
		Version:     models.ResultsFileVersion,
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Results:     results,
	}
	jsonData, err := json.MarshalIndent(file, "", "    ")
	if err != nil {
		return fmt.Errorf("encode result store: %w", err)
	}
	if err = f.write(fileName, jsonData); err != nil {
		return err
	}
	f.metrics.SetRecordsTotal("results", len(results))
	return nil
}

// LoadResults never fails: a missing file is an empty store. A file with
// corrupt content is moved aside and treated as empty. A file that cannot be
// read at all stays where it is and SaveResults refuses to replace it.
func (f *FileManager) LoadResults(fileName string) []models.RawResult {
	data, err := f.read(fileName)
	if err != nil {
		f.logger.Errorf(providers.TypeStore, "Unable to read result store %s, starting empty: %s", fileName, err)
		f.setAside(fileName, err)
		return nil
	}
	if data == nil {
		f.logger.Infof(providers.TypeStore, "Result store %s not found, starting empty", fileName)
		return nil
	}

	var file models.ResultsFile
	if err := json.Unmarshal(data, &file); err == nil && file.Results != nil {
		return file.Results
	}

	// First releases wrote the bare list
	var legacy []models.RawResult
	if err := json.Unmarshal(data, &legacy); err != nil {
		f.logger.Errorf(providers.TypeStore, "Result store %s is not valid JSON, starting empty: %s", fileName, err)
		f.setAside(fileName, fmt.Errorf("%w: %v", errCorrupt, err))
		return nil
	}
	f.logger.Warnf(providers.TypeStore, "Result store %s uses the legacy list format (%d records), it will be rewritten", fileName, len(legacy))
	return legacy
}

func (f *FileManager) SaveSendCache(fileName string, cache *models.SendCache) error {
	if err := f.guard(fileName); err != nil {
		return err
	}
	jsonData, err := json.Marshal(cache.Epochs())
	if err != nil {
		return fmt.Errorf("encode send cache: %w", err)
	}
	if err = f.write(fileName, jsonData); err != nil {
		return err
	}
	f.metrics.SetRecordsTotal("send_cache", cache.Len())
	return nil
}

// LoadSendCache never fails. Any problem yields an empty cache.
func (f *FileManager) LoadSendCache(fileName string) *models.SendCache {
	data, err := f.read(fileName)
	if err != nil {
		f.logger.Errorf(providers.TypeStore, "Unable to read send cache %s, starting empty: %s", fileName, err)
		f.setAside(fileName, err)
		return models.NewSendCache()
	}
	if data == nil {
		return models.NewSendCache()
	}

	var epochs map[string]float64
	if err := json.Unmarshal(data, &epochs); err != nil {
		f.logger.Errorf(providers.TypeStore, "Send cache %s is not valid JSON, starting empty: %s", fileName, err)
		f.setAside(fileName, fmt.Errorf("%w: %v", errCorrupt, err))
		return models.NewSendCache()
	}
	return models.NewSendCacheFromEpochs(epochs)
}

// read returns nil data and no error when the file does not exist.
func (f *FileManager) read(fileName string) ([]byte, error) {
	f.mu.Lock()
	delete(f.untouched, fileName)
	f.mu.Unlock()

	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	if IsCompressed(data) {
		plain, err := f.compressor.Decompress(data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", errCorrupt, err)
		}
		return plain, nil
	}
	return data, nil
}

func (f *FileManager) write(fileName string, jsonData []byte) error {
	start := time.Now()
	defer func() { f.metrics.ObservePersistenceDuration(time.Since(start)) }()

	data := jsonData
	if f.compress {
		var err error
		if data, err = f.compressor.Compress(jsonData); err != nil {
			return err
		}
	}

	if err := os.MkdirAll(filepath.Dir(fileName), 0755); err != nil {
		return err
	}

	tmpFile := fileName + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, fileName)
}

// setAside decides what happens to a file that failed to load. Corrupt
// content is renamed for inspection so the next save starts a fresh file.
// Anything else, or a failed rename, leaves the file in place and blocks saves.
func (f *FileManager) setAside(fileName string, cause error) {
	if errors.Is(cause, errCorrupt) && f.quarantine(fileName) {
		return
	}
	f.mu.Lock()
	f.untouched[fileName] = cause
	f.mu.Unlock()
	f.logger.Warnf(providers.TypeStore, "%s stays untouched until it can be read again", fileName)
}

func (f *FileManager) guard(fileName string) error {
	f.mu.Lock()
	cause, ok := f.untouched[fileName]
	f.mu.Unlock()
	if ok {
		return fmt.Errorf("%w: %s: %v", ErrUnreadable, fileName, cause)
	}
	return nil
}

func (f *FileManager) quarantine(fileName string) bool {
	target := fileName + ".corrupt-" + time.Now().Format(corruptSuffixLayout)
	if err := f.rename(fileName, target); err != nil {
		f.logger.Errorf(providers.TypeStore, "Unable to move %s aside: %s", fileName, err)
		return false
	}
	f.logger.Warnf(providers.TypeStore, "Moved unreadable %s to %s", fileName, target)
	return true
}
