package grocery

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/frankiefreesbie/glucko-server/internal/blob"
	"github.com/frankiefreesbie/glucko-server/internal/mealplans"
	"github.com/frankiefreesbie/glucko-server/internal/storage"
	"github.com/google/uuid"
)

const (
	weekDays          = 7
	defaultPresignTTL = 600 // seconds
	maxListExports    = 50
)

// Service handles grocery list business logic: list assembly, completion
// marks, share text, and stored exports. blobStore is nil in local mode;
// exports then keep their bytes in the metadata row.
type Service struct {
	builder    *Builder
	marks      storage.GroceryStorage
	exports    storage.ExportsStorage
	blobStore  blob.Store
	presignTTL int
}

// NewService creates a new grocery service. presignTTLSeconds <= 0 falls
// back to the default.
func NewService(builder *Builder, marks storage.GroceryStorage, exports storage.ExportsStorage, blobStore blob.Store, presignTTLSeconds int) *Service {
	if presignTTLSeconds <= 0 {
		presignTTLSeconds = defaultPresignTTL
	}
	return &Service{builder: builder, marks: marks, exports: exports, blobStore: blobStore, presignTTL: presignTTLSeconds}
}

// ListForDate builds the shopping list for one day's planned meals.
func (s *Service) ListForDate(ctx context.Context, ownerUserID string, date string) ([]GroceryItem, error) {
	completed, err := s.marks.GetCompletionStates(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	return s.builder.BuildDay(ctx, ownerUserID, date, completed)
}

// ListForWeek builds the shopping list covering 7 days from startDate.
func (s *Service) ListForWeek(ctx context.Context, ownerUserID string, startDate string) ([]GroceryItem, error) {
	completed, err := s.marks.GetCompletionStates(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	return s.builder.BuildRange(ctx, ownerUserID, startDate, weekDays, completed)
}

// SetCompletion toggles the "bought" mark for an ingredient name. Marks are
// keyed by lower-cased name and are global for the user, so the same
// ingredient stays checked across days and regenerated plans.
func (s *Service) SetCompletion(ctx context.Context, ownerUserID string, name string, completed bool) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	return s.marks.SetCompletionState(ctx, ownerUserID, strings.ToLower(name), completed)
}

// ShareForDate renders the share message for one day's unchecked items.
func (s *Service) ShareForDate(ctx context.Context, ownerUserID string, date string) (string, error) {
	items, err := s.ListForDate(ctx, ownerUserID, date)
	if err != nil {
		return "", err
	}
	day, err := mealplans.ParseDate(date)
	if err != nil {
		return "", err
	}
	return DailyShareMessage(day, items), nil
}

// ShareForWeek renders the share message for the 7 days from startDate.
func (s *Service) ShareForWeek(ctx context.Context, ownerUserID string, startDate string) (string, error) {
	items, err := s.ListForWeek(ctx, ownerUserID, startDate)
	if err != nil {
		return "", err
	}
	start, err := mealplans.ParseDate(startDate)
	if err != nil {
		return "", err
	}
	return WeeklyShareMessage(start, start.AddDate(0, 0, weekDays-1), items), nil
}

// CreateExport builds the list, renders it in the requested format and
// persists it. With a blob store configured the document goes to object
// storage under exports/<owner>/<id>.<format>; otherwise the bytes stay in
// the metadata row.
func (s *Service) CreateExport(ctx context.Context, ownerUserID string, req CreateExportRequest) (*Export, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	fromDate := req.Date
	if fromDate == "" {
		fromDate = mealplans.DateKey(time.Now())
	}
	toDate := fromDate

	var items []GroceryItem
	var err error
	if req.Week {
		toDate = mealplans.DateKey(mustDate(fromDate).AddDate(0, 0, weekDays-1))
		items, err = s.ListForWeek(ctx, ownerUserID, fromDate)
	} else {
		items, err = s.ListForDate(ctx, ownerUserID, fromDate)
	}
	if err != nil {
		return nil, err
	}

	title := fmt.Sprintf("Grocery list for %s", fromDate)
	if req.Week {
		title = fmt.Sprintf("Grocery list %s - %s", fromDate, toDate)
	}

	var data []byte
	switch req.Format {
	case FormatPDF:
		data, err = renderPDF(title, items)
		if err != nil {
			return nil, err
		}
	default:
		data = renderTXT(title, items)
	}

	meta := storage.ExportMeta{
		ID:          uuid.New(),
		OwnerUserID: ownerUserID,
		FromDate:    fromDate,
		ToDate:      toDate,
		Format:      req.Format,
		SizeBytes:   int64(len(data)),
		Status:      "ready",
		CreatedAt:   time.Now().UTC(),
	}

	if s.blobStore != nil {
		key := fmt.Sprintf("exports/%s/%s.%s", ownerUserID, meta.ID, req.Format)
		if _, err := s.blobStore.PutObject(ctx, key, data, contentTypeFor(req.Format)); err != nil {
			return nil, fmt.Errorf("failed to store export: %w", err)
		}
		meta.ObjectKey = &key
	} else {
		meta.Data = data
	}

	if err := s.exports.CreateExport(ctx, &meta); err != nil {
		return nil, err
	}

	export := toExport(meta)
	return &export, nil
}

// ListExports returns the user's stored exports, newest first.
func (s *Service) ListExports(ctx context.Context, ownerUserID string) ([]Export, error) {
	rows, err := s.exports.ListExports(ctx, ownerUserID, maxListExports)
	if err != nil {
		return nil, err
	}
	out := make([]Export, len(rows))
	for i, row := range rows {
		out[i] = toExport(row)
	}
	return out, nil
}

// GetExport returns one export's metadata.
func (s *Service) GetExport(ctx context.Context, ownerUserID string, id uuid.UUID) (*Export, error) {
	meta, err := s.exports.GetExport(ctx, ownerUserID, id)
	if err != nil {
		return nil, err
	}
	export := toExport(*meta)
	return &export, nil
}

// Download resolves an export to either a presigned URL (blob mode) or the
// raw document bytes (local mode). Exactly one of url/data is set.
func (s *Service) Download(ctx context.Context, ownerUserID string, id uuid.UUID) (url string, data []byte, contentType string, err error) {
	meta, err := s.exports.GetExport(ctx, ownerUserID, id)
	if err != nil {
		return "", nil, "", err
	}

	if meta.ObjectKey != nil && s.blobStore != nil {
		url, err = s.blobStore.PresignGet(ctx, *meta.ObjectKey, s.presignTTL)
		if err == nil {
			return url, nil, "", nil
		}
		// Presigning can fail on endpoints without signature support; proxy
		// the bytes instead.
		data, getErr := s.blobStore.GetObject(ctx, *meta.ObjectKey)
		if getErr != nil {
			return "", nil, "", fmt.Errorf("failed to presign export: %w", err)
		}
		return "", data, contentTypeFor(meta.Format), nil
	}

	if meta.Data == nil {
		return "", nil, "", fmt.Errorf("export %s has no stored content", id)
	}
	return "", meta.Data, contentTypeFor(meta.Format), nil
}

func contentTypeFor(format string) string {
	if format == FormatPDF {
		return "application/pdf"
	}
	return "text/plain; charset=utf-8"
}

func toExport(meta storage.ExportMeta) Export {
	return Export{
		ID:        meta.ID,
		FromDate:  meta.FromDate,
		ToDate:    meta.ToDate,
		Format:    meta.Format,
		SizeBytes: meta.SizeBytes,
		Status:    meta.Status,
		CreatedAt: meta.CreatedAt,
	}
}

// mustDate assumes the date was validated upstream.
func mustDate(date string) time.Time {
	t, _ := mealplans.ParseDate(date)
	return t
}
