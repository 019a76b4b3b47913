package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"connectrpc.com/connect"

	"github.com/mmynk/groceries/internal/calculator"
	"github.com/mmynk/groceries/internal/grocery"
	"github.com/mmynk/groceries/internal/metrics"
	"github.com/mmynk/groceries/internal/middleware"
	"github.com/mmynk/groceries/internal/models"
	"github.com/mmynk/groceries/internal/storage"
	"github.com/mmynk/groceries/pkg/api"
	"github.com/mmynk/groceries/pkg/api/apiconnect"
)

// dateLayout is the ISO date format of trip summaries.
const dateLayout = "2006-01-02"

// ownerList is an owner's in-memory list. mu serialises every RPC on it.
type ownerList struct {
	mu     sync.Mutex
	list   *grocery.List
	loaded bool

	// unreadable holds the documents that failed to decode on the first load.
	// They are not overwritten until the owner imports or reloads.
	unreadable map[docKey]bool
}

type docKey struct {
	backend string
	doc     storage.Document
}

// GroceryService implements the Connect GroceryService.
//
// Each owner's list is loaded from the default backend on first use and kept
// in memory; writes go to the backend named in the request.
type GroceryService struct {
	apiconnect.UnimplementedGroceryServiceHandler

	backends       map[string]*grocery.Persistence
	defaultBackend string
	pageSize       int
	seedItems      []models.GroceryItem
	seedSummaries  []models.GrocerySummary
	seedStore      *grocery.Persistence
	metrics        *metrics.Metrics
	now            func() time.Time

	mu    sync.Mutex
	lists map[string]*ownerList
}

// GroceryOption configures a GroceryService.
type GroceryOption func(*GroceryService)

// WithBackend registers an additional storage backend under name.
func WithBackend(name string, store storage.Store) GroceryOption {
	return func(s *GroceryService) {
		s.backends[name] = grocery.NewPersistence(store)
	}
}

// WithPageSize sets the number of rows per page.
func WithPageSize(n int) GroceryOption {
	return func(s *GroceryService) {
		s.pageSize = n
	}
}

// WithSeed sets the records an owner starts with when nothing was saved yet.
func WithSeed(items []models.GroceryItem, summaries []models.GrocerySummary) GroceryOption {
	return func(s *GroceryService) {
		s.seedItems = items
		s.seedSummaries = summaries
	}
}

// WithSeedStore makes the unowned documents of store the starting records of
// owners with nothing saved yet. This is where POST /api/save writes. When
// store has no such document, the records given to WithSeed are used.
func WithSeedStore(store storage.Store) GroceryOption {
	return func(s *GroceryService) {
		s.seedStore = grocery.NewPersistence(store)
	}
}

// WithMetrics records store operations and open lists on m.
func WithMetrics(m *metrics.Metrics) GroceryOption {
	return func(s *GroceryService) {
		s.metrics = m
	}
}

// NewGroceryService creates a GroceryService whose default backend is store,
// registered as api.BackendLocal.
func NewGroceryService(store storage.Store, opts ...GroceryOption) *GroceryService {
	s := &GroceryService{
		backends:       map[string]*grocery.Persistence{api.BackendLocal: grocery.NewPersistence(store)},
		defaultBackend: api.BackendLocal,
		pageSize:       grocery.DefaultPageSize,
		now:            time.Now,
		lists:          make(map[string]*ownerList),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Forget drops the in-memory list of ownerID. The next request reloads it.
func (s *GroceryService) Forget(ownerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.lists, ownerID)
	if s.metrics != nil {
		s.metrics.OpenLists.Set(float64(len(s.lists)))
	}
}

func (s *GroceryService) backend(name string) (*grocery.Persistence, string, error) {
	if name == "" {
		name = s.defaultBackend
	}
	p, ok := s.backends[name]
	if !ok {
		return nil, name, connect.NewError(connect.CodeNotFound, fmt.Errorf("unknown backend %q", name))
	}
	return p, name, nil
}

func (s *GroceryService) observe(backend, op string, err error) {
	if s.metrics == nil {
		return
	}
	if errors.Is(err, storage.ErrNotFound) {
		err = nil
	}
	s.metrics.ObserveStore(backend, op, err)
}

// acquire returns the caller's list locked, loading it on first use.
// The caller must call release.
func (s *GroceryService) acquire(ctx context.Context) (*ownerList, error) {
	ownerID := middleware.GetOwnerID(ctx)

	s.mu.Lock()
	ol, ok := s.lists[ownerID]
	if !ok {
		ol = &ownerList{
			list:       grocery.NewList(ownerID, s.pageSize),
			unreadable: make(map[docKey]bool),
		}
		s.lists[ownerID] = ol
		if s.metrics != nil {
			s.metrics.OpenLists.Set(float64(len(s.lists)))
		}
	}
	s.mu.Unlock()

	ol.mu.Lock()
	if !ol.loaded {
		p, name, _ := s.backend("")
		res, err := s.load(ctx, p, name, ownerID)
		if err != nil {
			ol.mu.Unlock()
			slog.Error("Failed to load list", "owner_id", ownerID, "error", err)
			return nil, connect.NewError(connect.CodeInternal, err)
		}
		for _, doc := range res.unreadable {
			// Start that document empty so the owner can still import a good backup.
			slog.Warn("Saved document is unreadable, starting it empty", "owner_id", ownerID, "document", doc, "backend", name)
			ol.unreadable[docKey{backend: name, doc: doc}] = true
		}
		ol.list.Load(res.items, res.summaries)
		ol.loaded = true
	}
	return ol, nil
}

func (ol *ownerList) release() {
	ol.mu.Unlock()
}

// writable fails if one of docs could not be read from backend.
func (ol *ownerList) writable(backend string, docs ...storage.Document) error {
	for _, doc := range docs {
		if ol.unreadable[docKey{backend: backend, doc: doc}] {
			return connect.NewError(connect.CodeFailedPrecondition,
				fmt.Errorf("saved %s on backend %q is unreadable; import a backup or reload first", doc, backend))
		}
	}
	return nil
}

// loadResult is the decoded state of an owner's documents.
type loadResult struct {
	items      []models.GroceryItem
	summaries  []models.GrocerySummary
	source     string
	unreadable []storage.Document
}

// load reads the owner's saved documents, falling back to the seed records
// for documents that were never saved. Each document is decoded on its own:
// one that is not a JSON array is reported in unreadable and left empty.
func (s *GroceryService) load(ctx context.Context, p *grocery.Persistence, backend, ownerID string) (loadResult, error) {
	res := loadResult{source: api.SourceStore}

	items, err := p.LoadItems(ctx, ownerID)
	s.observe(backend, "load", err)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		res.items = s.seedItemRecords(ctx)
		res.source = api.SourceSeed
		if res.items == nil {
			res.source = api.SourceEmpty
		}
	case errors.Is(err, grocery.ErrImportFormat):
		res.source = api.SourceEmpty
		res.unreadable = append(res.unreadable, storage.ItemsDocument)
	case err != nil:
		return res, fmt.Errorf("failed to load items: %w", err)
	default:
		res.items = items
	}

	summaries, err := p.LoadSummaries(ctx, ownerID)
	s.observe(backend, "load", err)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		res.summaries = s.seedSummaryRecords(ctx)
	case errors.Is(err, grocery.ErrImportFormat):
		res.unreadable = append(res.unreadable, storage.SummariesDocument)
	case err != nil:
		return res, fmt.Errorf("failed to load summaries: %w", err)
	default:
		res.summaries = summaries
	}

	return res, nil
}

// seedItemRecords returns the saved unowned items of the seed store, or the
// static seed items.
func (s *GroceryService) seedItemRecords(ctx context.Context) []models.GroceryItem {
	if s.seedStore == nil {
		return s.seedItems
	}
	items, err := s.seedStore.LoadItems(ctx, "")
	switch {
	case err == nil:
		return items
	case !errors.Is(err, storage.ErrNotFound):
		slog.Warn("Seed items unreadable, using defaults", "error", err)
	}
	return s.seedItems
}

// seedSummaryRecords is seedItemRecords for summaries.
func (s *GroceryService) seedSummaryRecords(ctx context.Context) []models.GrocerySummary {
	if s.seedStore == nil {
		return s.seedSummaries
	}
	summaries, err := s.seedStore.LoadSummaries(ctx, "")
	switch {
	case err == nil:
		return summaries
	case !errors.Is(err, storage.ErrNotFound):
		slog.Warn("Seed summaries unreadable, using defaults", "error", err)
	}
	return s.seedSummaries
}

// execute carries out the persist commands against the named backend.
func (s *GroceryService) execute(ctx context.Context, backendName string, l *grocery.List, cmds []grocery.Command) error {
	p, name, err := s.backend(backendName)
	if err != nil {
		return err
	}
	err = p.Execute(ctx, l, cmds)
	s.observe(name, "save", err)
	if err != nil {
		slog.Error("Failed to persist list", "owner_id", l.OwnerID(), "backend", name, "error", err)
		return connect.NewError(connect.CodeInternal, err)
	}
	return nil
}

// GetView returns the current page, applying a new filter first if given.
func (s *GroceryService) GetView(ctx context.Context, req *connect.Request[api.GetViewRequest]) (*connect.Response[api.GetViewResponse], error) {
	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	if f := req.Msg.Filter; f != nil {
		ol.list.SetFilter(grocery.FilterState{SearchTerm: f.SearchTerm, ShowOnlyUnpicked: f.ShowOnlyUnpicked})
	}

	return connect.NewResponse(&api.GetViewResponse{View: toAPIView(ol.list)}), nil
}

// AddItem inserts a blank item at the top of the list.
func (s *GroceryService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	id := ol.list.Add()
	slog.Info("Item added", "owner_id", ol.list.OwnerID(), "item_id", id)

	return connect.NewResponse(&api.AddItemResponse{ItemID: id, View: toAPIView(ol.list)}), nil
}

// UpdateItem edits the fields present in the patch.
func (s *GroceryService) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	updated := ol.list.Update(req.Msg.ItemID, toPatch(req.Msg.Patch))
	if !updated {
		slog.Debug("Update of unknown item ignored", "owner_id", ol.list.OwnerID(), "item_id", req.Msg.ItemID)
	}

	return connect.NewResponse(&api.UpdateItemResponse{Updated: updated, View: toAPIView(ol.list)}), nil
}

// DeleteItem removes an item. Unknown ids are ignored.
func (s *GroceryService) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	deleted := ol.list.Delete(req.Msg.ItemID)
	if deleted {
		slog.Info("Item deleted", "owner_id", ol.list.OwnerID(), "item_id", req.Msg.ItemID)
	}

	return connect.NewResponse(&api.DeleteItemResponse{Deleted: deleted, View: toAPIView(ol.list)}), nil
}

// TogglePicked flips an item's picked-up flag.
func (s *GroceryService) TogglePicked(ctx context.Context, req *connect.Request[api.TogglePickedRequest]) (*connect.Response[api.TogglePickedResponse], error) {
	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	toggled := ol.list.TogglePicked(req.Msg.ItemID)

	return connect.NewResponse(&api.TogglePickedResponse{Toggled: toggled, View: toAPIView(ol.list)}), nil
}

// ChangePage moves to another page. Out-of-range pages are clamped.
func (s *GroceryService) ChangePage(ctx context.Context, req *connect.Request[api.ChangePageRequest]) (*connect.Response[api.ChangePageResponse], error) {
	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	switch req.Msg.Direction {
	case api.DirectionNext:
		ol.list.NextPage()
	case api.DirectionPrevious:
		ol.list.PreviousPage()
	case "":
		ol.list.SetPage(req.Msg.Page)
	default:
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("unknown direction %q", req.Msg.Direction))
	}

	return connect.NewResponse(&api.ChangePageResponse{View: toAPIView(ol.list)}), nil
}

// SaveData writes the items to a backend.
func (s *GroceryService) SaveData(ctx context.Context, req *connect.Request[api.SaveDataRequest]) (*connect.Response[api.SaveDataResponse], error) {
	_, name, err := s.backend(req.Msg.Backend)
	if err != nil {
		return nil, err
	}

	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	if err := ol.writable(name, storage.ItemsDocument); err != nil {
		return nil, err
	}

	cmds := ol.list.Save()
	if err := s.execute(ctx, name, ol.list, cmds); err != nil {
		return nil, err
	}

	slog.Info("Items saved", "owner_id", ol.list.OwnerID(), "backend", name, "count", ol.list.TotalCount())
	return connect.NewResponse(&api.SaveDataResponse{Notice: toAPINotice(cmds)}), nil
}

// LoadData reloads the list from a backend. Nothing changes unless both
// documents can be read.
func (s *GroceryService) LoadData(ctx context.Context, req *connect.Request[api.LoadDataRequest]) (*connect.Response[api.LoadDataResponse], error) {
	p, name, err := s.backend(req.Msg.Backend)
	if err != nil {
		return nil, err
	}

	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	res, err := s.load(ctx, p, name, ol.list.OwnerID())
	if err != nil {
		slog.Error("LoadData failed", "owner_id", ol.list.OwnerID(), "backend", name, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	if len(res.unreadable) > 0 {
		slog.Warn("LoadData found unreadable documents", "owner_id", ol.list.OwnerID(), "backend", name, "documents", res.unreadable)
		return nil, connect.NewError(connect.CodeDataLoss,
			fmt.Errorf("%w: %v on backend %q", grocery.ErrImportFormat, res.unreadable, name))
	}

	ol.list.Load(res.items, res.summaries)
	clear(ol.unreadable)

	slog.Info("List loaded", "owner_id", ol.list.OwnerID(), "backend", name, "source", res.source, "count", ol.list.TotalCount())
	return connect.NewResponse(&api.LoadDataResponse{View: toAPIView(ol.list), Source: res.source}), nil
}

// SaveSummary records a trip with the current estimated cost and persists
// the summaries.
func (s *GroceryService) SaveSummary(ctx context.Context, req *connect.Request[api.SaveSummaryRequest]) (*connect.Response[api.SaveSummaryResponse], error) {
	date := req.Msg.Date
	if date == "" {
		date = s.now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("date must be yyyy-mm-dd: %w", err))
	}
	_, name, err := s.backend(req.Msg.Backend)
	if err != nil {
		return nil, err
	}

	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	if err := ol.writable(name, storage.SummariesDocument); err != nil {
		return nil, err
	}

	summary, cmds := ol.list.SaveSummary(date, req.Msg.ActualCost, req.Msg.Store)
	if err := s.execute(ctx, name, ol.list, cmds); err != nil {
		return nil, err
	}

	slog.Info("Summary saved",
		"owner_id", ol.list.OwnerID(),
		"store", summary.Store,
		"estimated", summary.EstimatedCost,
		"actual", summary.ActualCost,
	)
	return connect.NewResponse(&api.SaveSummaryResponse{
		Summary: toAPISummary(summary),
		Notice:  toAPINotice(cmds),
	}), nil
}

// GetStatistics aggregates the recorded trips.
func (s *GroceryService) GetStatistics(ctx context.Context, req *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error) {
	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	stats := ol.list.StoreStatistics()
	return connect.NewResponse(&api.GetStatisticsResponse{
		Stores:    toAPIStatistics(stats),
		Chart:     toAPIChart(ol.list.CostByDateAndStore(), calculator.ChartMax(stats)),
		Summaries: toAPISummaries(ol.list.Summaries()),
	}), nil
}

// ImportData restores a backup and persists it. Documents replaced by the
// import may be written again even if they were unreadable.
func (s *GroceryService) ImportData(ctx context.Context, req *connect.Request[api.ImportDataRequest]) (*connect.Response[api.ImportDataResponse], error) {
	_, name, err := s.backend(req.Msg.Backend)
	if err != nil {
		return nil, err
	}

	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	var summaries []byte
	if len(req.Msg.Summaries) > 0 && string(req.Msg.Summaries) != "null" {
		summaries = req.Msg.Summaries
	}

	cmds, err := ol.list.Import(req.Msg.Items, summaries)
	if err != nil {
		slog.Warn("Import rejected", "owner_id", ol.list.OwnerID(), "error", err)
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	for _, cmd := range cmds {
		if cmd.Kind == grocery.CommandPersist {
			for key := range ol.unreadable {
				if key.doc == cmd.Document {
					delete(ol.unreadable, key)
				}
			}
		}
	}
	if err := s.execute(ctx, name, ol.list, cmds); err != nil {
		return nil, err
	}

	slog.Info("Backup imported", "owner_id", ol.list.OwnerID(), "backend", name, "count", ol.list.TotalCount())
	return connect.NewResponse(&api.ImportDataResponse{
		View:         toAPIView(ol.list),
		SummaryCount: len(ol.list.Summaries()),
		Notice:       toAPINotice(cmds),
	}), nil
}

// ExportData returns the items and summaries in the file format.
func (s *GroceryService) ExportData(ctx context.Context, req *connect.Request[api.ExportDataRequest]) (*connect.Response[api.ExportDataResponse], error) {
	ol, err := s.acquire(ctx)
	if err != nil {
		return nil, err
	}
	defer ol.release()

	items, err := grocery.EncodeItems(ol.list.Items())
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	summaries, err := grocery.EncodeSummaries(ol.list.Summaries())
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ExportDataResponse{Items: items, Summaries: summaries}), nil
}

// ListBackups lists the caller's restorable files on a backend.
func (s *GroceryService) ListBackups(ctx context.Context, req *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error) {
	p, name, err := s.backend(req.Msg.Backend)
	if err != nil {
		return nil, err
	}

	lister, ok := p.Store().(storage.BackupLister)
	if !ok {
		return nil, connect.NewError(connect.CodeUnimplemented, fmt.Errorf("backend %q cannot list backups", name))
	}

	backups, err := lister.ListBackups(ctx, middleware.GetOwnerID(ctx))
	if err != nil {
		slog.Error("ListBackups failed", "backend", name, "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}

	return connect.NewResponse(&api.ListBackupsResponse{Backups: toAPIBackups(backups)}), nil
}
