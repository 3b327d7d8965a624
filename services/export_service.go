package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusevents/analytics"
	"campusevents/database"
	"campusevents/metrics"
	"campusevents/models"
	"campusevents/storage"
	"campusevents/utils"
)

const (
	ExportFormatCSV    = "csv"
	csvContentType     = "text/csv; charset=utf-8"
	defaultExportLimit = 50
	maxExportLimit     = 200
)

var (
	ErrUnknownExportType = errors.New("unknown export type")
	ErrUnsupportedFormat = errors.New("unsupported export format")
	ErrExportNotFound    = errors.New("export not found")
)

// ExportRepository persists export records.
type ExportRepository interface {
	Insert(ctx context.Context, record *models.ExportRecord) error
	List(ctx context.Context, limit int) ([]models.ExportRecord, error)
	FindByExportID(ctx context.Context, exportID string) (*models.ExportRecord, error)
}

// ExportService turns dashboard breakdowns into CSV files kept in export storage.
type ExportService struct {
	analytics *AnalyticsService
	repo      ExportRepository
	store     storage.StorageInterface
	urlTTL    time.Duration
	logger    *logrus.Logger
	now       func() time.Time
}

func NewExportService(analyticsService *AnalyticsService, repo ExportRepository, store storage.StorageInterface, urlTTL time.Duration, logger *logrus.Logger) *ExportService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &ExportService{
		analytics: analyticsService,
		repo:      repo,
		store:     store,
		urlTTL:    urlTTL,
		logger:    logger,
		now:       time.Now,
	}
}

// SetClock replaces the time source used for keys and record timestamps
func (es *ExportService) SetClock(now func() time.Time) {
	es.now = now
}

// Export computes the dashboard for the request filters, writes the requested
// breakdown as CSV and records it.
func (es *ExportService) Export(ctx context.Context, req *models.ExportRequest, adminID primitive.ObjectID) (*models.ExportRecord, error) {
	format := req.Format
	if format == "" {
		format = ExportFormatCSV
	}
	if format != ExportFormatCSV {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}
	if !IsBreakdownKind(req.Type) {
		return nil, fmt.Errorf("%w: %s", ErrUnknownExportType, req.Type)
	}

	params := analytics.Params{
		DateRange: analytics.DateRange(req.DateRange),
		Search:    req.Search,
	}
	dashboard, err := es.analytics.GetDashboard(ctx, params)
	if err != nil {
		return nil, err
	}

	data, rows, err := BuildCSV(dashboard, req.Type)
	if err != nil {
		return nil, err
	}

	now := es.now().UTC()
	exportID := uuid.New().String()
	key := fmt.Sprintf("exports/%04d/%02d/%s.csv", now.Year(), int(now.Month()), exportID)

	if err := es.store.Upload(ctx, key, data, csvContentType); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	record := &models.ExportRecord{
		ExportID:  exportID,
		Type:      req.Type,
		Format:    format,
		DateRange: string(dashboard.Params.DateRange),
		Search:    dashboard.Params.Search,
		Key:       key,
		Provider:  es.store.GetProviderInfo().Type,
		Size:      int64(len(data)),
		Rows:      rows,
		CreatedBy: adminID,
		CreatedAt: now,
	}
	if err := es.repo.Insert(ctx, record); err != nil {
		if delErr := es.store.Delete(ctx, key); delErr != nil {
			es.logger.WithError(delErr).WithField("key", key).Warn("Failed to remove orphaned export")
		}
		return nil, err
	}

	metrics.ExportsCreated.WithLabelValues(req.Type).Inc()
	es.logger.WithFields(logrus.Fields{
		"export_id": exportID,
		"type":      req.Type,
		"rows":      rows,
		"size":      record.Size,
	}).Info("Export created")

	es.attachDownloadURL(record)
	return record, nil
}

// ListExports returns the newest exports and the page size actually applied.
// A missing or non-positive limit means the default; larger ones are capped.
func (es *ExportService) ListExports(ctx context.Context, limit int) ([]models.ExportRecord, int, error) {
	if limit <= 0 {
		limit = defaultExportLimit
	}
	limit = utils.ClampInt(limit, 1, maxExportLimit)

	records, err := es.repo.List(ctx, limit)
	if err != nil {
		return nil, limit, err
	}
	for i := range records {
		es.attachDownloadURL(&records[i])
	}
	return records, limit, nil
}

// GetExport looks up an export by its public id
func (es *ExportService) GetExport(ctx context.Context, exportID string) (*models.ExportRecord, error) {
	record, err := es.repo.FindByExportID(ctx, exportID)
	if errors.Is(err, database.ErrNotFound) || (err == nil && record == nil) {
		return nil, ErrExportNotFound
	}
	if err != nil {
		return nil, err
	}
	es.attachDownloadURL(record)
	return record, nil
}

// Open streams the stored CSV for a record
func (es *ExportService) Open(ctx context.Context, record *models.ExportRecord) (io.ReadCloser, error) {
	body, err := es.store.DownloadStream(ctx, record.Key)
	if err != nil {
		if storage.IsCode(err, storage.CodeNotFound) {
			return nil, ErrExportNotFound
		}
		return nil, err
	}
	return body, nil
}

// attachDownloadURL sets a presigned URL when the provider can sign one and the
// API download route otherwise
func (es *ExportService) attachDownloadURL(record *models.ExportRecord) {
	url, err := es.store.GetPresignedURL(record.Key, es.urlTTL)
	if err == nil {
		record.DownloadURL = url
		return
	}
	if !storage.IsCode(err, storage.CodeNotSupported) {
		es.logger.WithError(err).WithField("export_id", record.ExportID).Warn("Failed to presign export URL")
	}
	record.DownloadURL = "/admin/api/exports/" + record.ExportID + "/download"
}

// BuildCSV renders one breakdown of a dashboard as CSV and returns the number
// of data rows. Names are written untruncated.
func BuildCSV(d *analytics.Dashboard, kind string) ([]byte, int, error) {
	var header []string
	var rows [][]string

	switch kind {
	case BreakdownDepartments:
		header = []string{"Department", "Events", "Registrations"}
		for _, r := range d.DepartmentTable {
			rows = append(rows, []string{r.FullName, strconv.Itoa(r.Events), strconv.Itoa(r.Registrations)})
		}
	case BreakdownEvents:
		header = []string{"Event ID", "Event", "Department", "Registrations"}
		for _, r := range d.TopEventsTable {
			rows = append(rows, []string{r.EventID, r.FullName, r.Department, strconv.Itoa(r.Registrations)})
		}
	case BreakdownOrganisers:
		header = []string{"Organiser", "Events"}
		for _, r := range d.TopOrganisers {
			rows = append(rows, []string{r.FullName, strconv.Itoa(r.Events)})
		}
	case BreakdownFests:
		header = []string{"Fest ID", "Fest", "Registrations"}
		for _, r := range d.FestRegistrations {
			rows = append(rows, []string{r.FestID, r.FullName, strconv.Itoa(r.Registrations)})
		}
	case BreakdownTimeline:
		header = []string{"Month", "Registrations", "Events"}
		for _, p := range d.Timeline {
			rows = append(rows, []string{p.Month, strconv.Itoa(p.Registrations), strconv.Itoa(p.Events)})
		}
	case BreakdownRegistrationTypes, BreakdownFeeTypes, BreakdownUserRoles:
		header = []string{"Category", "Count"}
		var slices []analytics.Slice
		switch kind {
		case BreakdownRegistrationTypes:
			slices = d.RegistrationTypes
		case BreakdownFeeTypes:
			slices = d.FeeTypes
		default:
			slices = d.UserRoles
		}
		for _, s := range slices {
			rows = append(rows, []string{s.Name, strconv.Itoa(s.Value)})
		}
	default:
		return nil, 0, fmt.Errorf("%w: %s", ErrUnknownExportType, kind)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, 0, err
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, 0, err
	}
	return buf.Bytes(), len(rows), nil
}
