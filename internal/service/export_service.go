package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"time"

	"github.com/fitjourney/chronicle/internal/domain"
	"github.com/fitjourney/chronicle/internal/repository"
	"github.com/fitjourney/chronicle/internal/storage"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

const exportPrefix = "exports"

// ExportResult points at an uploaded log archive.
type ExportResult struct {
	ObjectKey   string    `json:"objectKey"`
	DownloadURL string    `json:"downloadUrl"`
	Logs        int       `json:"logs"`
	ExpiresAt   time.Time `json:"expiresAt"`
}

type archive struct {
	ExportedAt time.Time           `json:"exportedAt"`
	Logs       []domain.WorkoutLog `json:"logs"`
}

type ExportService interface {
	// ExportLogs uploads every stored log as one JSON document and returns a
	// temporary download link.
	ExportLogs(ctx context.Context) (*ExportResult, error)
}

// exportService implements the ExportService interface.
type exportService struct {
	logRepo     repository.WorkoutLogRepository
	fileStorage storage.FileStorage // nil when export is disabled
	urlExpiry   time.Duration
	now         func() time.Time
}

// NewExportService creates a new instance of exportService. fileStorage may
// be nil, in which case exports fail with ErrExportDisabled.
func NewExportService(logRepo repository.WorkoutLogRepository, fileStorage storage.FileStorage, urlExpiry time.Duration, now func() time.Time) ExportService {
	if urlExpiry <= 0 {
		urlExpiry = storage.DefaultPresignedURLExpiry
	}
	if now == nil {
		now = time.Now
	}
	return &exportService{logRepo: logRepo, fileStorage: fileStorage, urlExpiry: urlExpiry, now: now}
}

func (s *exportService) ExportLogs(ctx context.Context) (*ExportResult, error) {
	if s.fileStorage == nil {
		return nil, ErrExportDisabled
	}

	logs, err := s.logRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	body, err := json.Marshal(archive{ExportedAt: now, Logs: logs})
	if err != nil {
		return nil, fmt.Errorf("encode archive: %w", err)
	}

	key := path.Join(exportPrefix, now.Format(domain.DateLayout), uuid.NewString()+".json")
	if err := s.fileStorage.PutObject(ctx, key, "application/json", bytes.NewReader(body)); err != nil {
		return nil, err
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, key, s.urlExpiry)
	if err != nil {
		// the archive is unreachable without a link
		if delErr := s.fileStorage.DeleteObject(ctx, key); delErr != nil {
			log.WithError(delErr).WithField("key", key).Warn("failed to remove orphaned archive")
		}
		return nil, err
	}

	log.WithFields(log.Fields{"key": key, "logs": len(logs)}).Info("log archive exported")
	return &ExportResult{
		ObjectKey:   key,
		DownloadURL: url,
		Logs:        len(logs),
		ExpiresAt:   now.Add(s.urlExpiry),
	}, nil
}
