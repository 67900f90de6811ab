package persistence

import (
	"os"

	json "github.com/goccy/go-json"

	"homefeed/internal/models"
	"homefeed/internal/persistence/interfaces"
	"homefeed/internal/providers"
	"homefeed/internal/services"
)

// FileManager saves and restores the watch-history snapshot. Writes go to
// a temp file first so a crash mid-save never corrupts the last good
// snapshot.
type FileManager struct {
	service    services.FeedServiceInterface
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileManager(compressor interfaces.CompressorInterface, service services.FeedServiceInterface, logger providers.Logger) *FileManager {
	return &FileManager{
		compressor: compressor,
		service:    service,
		logger:     logger,
	}
}

func (f *FileManager) SaveToFile(fileName string) error {
	snapshot := f.service.GetSnapshot()

	jsonData, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	data, err := f.compressor.Compress(jsonData)
	if err != nil {
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

func (f *FileManager) Close() {
	f.compressor.Close()
}

func (f *FileManager) LoadFromFile(fileName string) error {
	data, err := os.ReadFile(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressedData, err := f.compressor.Decompress(data)
	if err != nil {
		return err
	}

	var snapshot models.Snapshot
	if err := json.Unmarshal(decompressedData, &snapshot); err == nil && snapshot.Version >= 1 {
		f.service.PutSnapshot(&snapshot)
		return nil
	}

	// Pre-versioning format: a bare event list.
	f.logger.Warnf(providers.TypeApp, "Unversioned snapshot found, try to migrate from old data format")
	var events []*models.WatchEvent
	if err := json.Unmarshal(decompressedData, &events); err != nil {
		f.logger.Warnf(providers.TypeApp, "Migration failed")
		return err
	}
	f.logger.Warnf(providers.TypeApp, "Migration from unversioned format successful")
	f.service.PutSnapshot(&models.Snapshot{Version: models.SnapshotVersion, WatchEvents: events})

	return nil
}
