package apiconnect

import (
	"context"
	"errors"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/groceries/pkg/api"
)

// GroceryServiceName is the fully-qualified name of the GroceryService service.
const GroceryServiceName = "grocery.v1.GroceryService"

// Procedure names of the GroceryService RPCs.
const (
	GroceryServiceGetViewProcedure       = "/grocery.v1.GroceryService/GetView"
	GroceryServiceAddItemProcedure       = "/grocery.v1.GroceryService/AddItem"
	GroceryServiceUpdateItemProcedure    = "/grocery.v1.GroceryService/UpdateItem"
	GroceryServiceDeleteItemProcedure    = "/grocery.v1.GroceryService/DeleteItem"
	GroceryServiceTogglePickedProcedure  = "/grocery.v1.GroceryService/TogglePicked"
	GroceryServiceChangePageProcedure    = "/grocery.v1.GroceryService/ChangePage"
	GroceryServiceSaveDataProcedure      = "/grocery.v1.GroceryService/SaveData"
	GroceryServiceLoadDataProcedure      = "/grocery.v1.GroceryService/LoadData"
	GroceryServiceSaveSummaryProcedure   = "/grocery.v1.GroceryService/SaveSummary"
	GroceryServiceGetStatisticsProcedure = "/grocery.v1.GroceryService/GetStatistics"
	GroceryServiceImportDataProcedure    = "/grocery.v1.GroceryService/ImportData"
	GroceryServiceExportDataProcedure    = "/grocery.v1.GroceryService/ExportData"
	GroceryServiceListBackupsProcedure   = "/grocery.v1.GroceryService/ListBackups"
)

// GroceryServiceClient is a client for the grocery.v1.GroceryService service.
type GroceryServiceClient interface {
	GetView(context.Context, *connect.Request[api.GetViewRequest]) (*connect.Response[api.GetViewResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	TogglePicked(context.Context, *connect.Request[api.TogglePickedRequest]) (*connect.Response[api.TogglePickedResponse], error)
	ChangePage(context.Context, *connect.Request[api.ChangePageRequest]) (*connect.Response[api.ChangePageResponse], error)
	SaveData(context.Context, *connect.Request[api.SaveDataRequest]) (*connect.Response[api.SaveDataResponse], error)
	LoadData(context.Context, *connect.Request[api.LoadDataRequest]) (*connect.Response[api.LoadDataResponse], error)
	SaveSummary(context.Context, *connect.Request[api.SaveSummaryRequest]) (*connect.Response[api.SaveSummaryResponse], error)
	GetStatistics(context.Context, *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error)
	ImportData(context.Context, *connect.Request[api.ImportDataRequest]) (*connect.Response[api.ImportDataResponse], error)
	ExportData(context.Context, *connect.Request[api.ExportDataRequest]) (*connect.Response[api.ExportDataResponse], error)
	ListBackups(context.Context, *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error)
}

// NewGroceryServiceClient constructs a client for the grocery.v1.GroceryService
// service. baseURL is the server root, e.g. https://groceries.example.com.
func NewGroceryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) GroceryServiceClient {
	opts = clientOptions(opts)
	return &groceryServiceClient{
		getView:       connect.NewClient[api.GetViewRequest, api.GetViewResponse](httpClient, baseURL+GroceryServiceGetViewProcedure, opts...),
		addItem:       connect.NewClient[api.AddItemRequest, api.AddItemResponse](httpClient, baseURL+GroceryServiceAddItemProcedure, opts...),
		updateItem:    connect.NewClient[api.UpdateItemRequest, api.UpdateItemResponse](httpClient, baseURL+GroceryServiceUpdateItemProcedure, opts...),
		deleteItem:    connect.NewClient[api.DeleteItemRequest, api.DeleteItemResponse](httpClient, baseURL+GroceryServiceDeleteItemProcedure, opts...),
		togglePicked:  connect.NewClient[api.TogglePickedRequest, api.TogglePickedResponse](httpClient, baseURL+GroceryServiceTogglePickedProcedure, opts...),
		changePage:    connect.NewClient[api.ChangePageRequest, api.ChangePageResponse](httpClient, baseURL+GroceryServiceChangePageProcedure, opts...),
		saveData:      connect.NewClient[api.SaveDataRequest, api.SaveDataResponse](httpClient, baseURL+GroceryServiceSaveDataProcedure, opts...),
		loadData:      connect.NewClient[api.LoadDataRequest, api.LoadDataResponse](httpClient, baseURL+GroceryServiceLoadDataProcedure, opts...),
		saveSummary:   connect.NewClient[api.SaveSummaryRequest, api.SaveSummaryResponse](httpClient, baseURL+GroceryServiceSaveSummaryProcedure, opts...),
		getStatistics: connect.NewClient[api.GetStatisticsRequest, api.GetStatisticsResponse](httpClient, baseURL+GroceryServiceGetStatisticsProcedure, opts...),
		importData:    connect.NewClient[api.ImportDataRequest, api.ImportDataResponse](httpClient, baseURL+GroceryServiceImportDataProcedure, opts...),
		exportData:    connect.NewClient[api.ExportDataRequest, api.ExportDataResponse](httpClient, baseURL+GroceryServiceExportDataProcedure, opts...),
		listBackups:   connect.NewClient[api.ListBackupsRequest, api.ListBackupsResponse](httpClient, baseURL+GroceryServiceListBackupsProcedure, opts...),
	}
}

type groceryServiceClient struct {
	getView       *connect.Client[api.GetViewRequest, api.GetViewResponse]
	addItem       *connect.Client[api.AddItemRequest, api.AddItemResponse]
	updateItem    *connect.Client[api.UpdateItemRequest, api.UpdateItemResponse]
	deleteItem    *connect.Client[api.DeleteItemRequest, api.DeleteItemResponse]
	togglePicked  *connect.Client[api.TogglePickedRequest, api.TogglePickedResponse]
	changePage    *connect.Client[api.ChangePageRequest, api.ChangePageResponse]
	saveData      *connect.Client[api.SaveDataRequest, api.SaveDataResponse]
	loadData      *connect.Client[api.LoadDataRequest, api.LoadDataResponse]
	saveSummary   *connect.Client[api.SaveSummaryRequest, api.SaveSummaryResponse]
	getStatistics *connect.Client[api.GetStatisticsRequest, api.GetStatisticsResponse]
	importData    *connect.Client[api.ImportDataRequest, api.ImportDataResponse]
	exportData    *connect.Client[api.ExportDataRequest, api.ExportDataResponse]
	listBackups   *connect.Client[api.ListBackupsRequest, api.ListBackupsResponse]
}

func (c *groceryServiceClient) GetView(ctx context.Context, req *connect.Request[api.GetViewRequest]) (*connect.Response[api.GetViewResponse], error) {
	return c.getView.CallUnary(ctx, req)
}

func (c *groceryServiceClient) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return c.addItem.CallUnary(ctx, req)
}

func (c *groceryServiceClient) UpdateItem(ctx context.Context, req *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return c.updateItem.CallUnary(ctx, req)
}

func (c *groceryServiceClient) DeleteItem(ctx context.Context, req *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return c.deleteItem.CallUnary(ctx, req)
}

func (c *groceryServiceClient) TogglePicked(ctx context.Context, req *connect.Request[api.TogglePickedRequest]) (*connect.Response[api.TogglePickedResponse], error) {
	return c.togglePicked.CallUnary(ctx, req)
}

func (c *groceryServiceClient) ChangePage(ctx context.Context, req *connect.Request[api.ChangePageRequest]) (*connect.Response[api.ChangePageResponse], error) {
	return c.changePage.CallUnary(ctx, req)
}

func (c *groceryServiceClient) SaveData(ctx context.Context, req *connect.Request[api.SaveDataRequest]) (*connect.Response[api.SaveDataResponse], error) {
	return c.saveData.CallUnary(ctx, req)
}

func (c *groceryServiceClient) LoadData(ctx context.Context, req *connect.Request[api.LoadDataRequest]) (*connect.Response[api.LoadDataResponse], error) {
	return c.loadData.CallUnary(ctx, req)
}

func (c *groceryServiceClient) SaveSummary(ctx context.Context, req *connect.Request[api.SaveSummaryRequest]) (*connect.Response[api.SaveSummaryResponse], error) {
	return c.saveSummary.CallUnary(ctx, req)
}

func (c *groceryServiceClient) GetStatistics(ctx context.Context, req *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error) {
	return c.getStatistics.CallUnary(ctx, req)
}

func (c *groceryServiceClient) ImportData(ctx context.Context, req *connect.Request[api.ImportDataRequest]) (*connect.Response[api.ImportDataResponse], error) {
	return c.importData.CallUnary(ctx, req)
}

func (c *groceryServiceClient) ExportData(ctx context.Context, req *connect.Request[api.ExportDataRequest]) (*connect.Response[api.ExportDataResponse], error) {
	return c.exportData.CallUnary(ctx, req)
}

func (c *groceryServiceClient) ListBackups(ctx context.Context, req *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error) {
	return c.listBackups.CallUnary(ctx, req)
}

// GroceryServiceHandler is an implementation of the grocery.v1.GroceryService service.
type GroceryServiceHandler interface {
	GetView(context.Context, *connect.Request[api.GetViewRequest]) (*connect.Response[api.GetViewResponse], error)
	AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error)
	UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error)
	DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error)
	TogglePicked(context.Context, *connect.Request[api.TogglePickedRequest]) (*connect.Response[api.TogglePickedResponse], error)
	ChangePage(context.Context, *connect.Request[api.ChangePageRequest]) (*connect.Response[api.ChangePageResponse], error)
	SaveData(context.Context, *connect.Request[api.SaveDataRequest]) (*connect.Response[api.SaveDataResponse], error)
	LoadData(context.Context, *connect.Request[api.LoadDataRequest]) (*connect.Response[api.LoadDataResponse], error)
	SaveSummary(context.Context, *connect.Request[api.SaveSummaryRequest]) (*connect.Response[api.SaveSummaryResponse], error)
	GetStatistics(context.Context, *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error)
	ImportData(context.Context, *connect.Request[api.ImportDataRequest]) (*connect.Response[api.ImportDataResponse], error)
	ExportData(context.Context, *connect.Request[api.ExportDataRequest]) (*connect.Response[api.ExportDataResponse], error)
	ListBackups(context.Context, *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error)
}

// NewGroceryServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and the
// handler itself.
func NewGroceryServiceHandler(svc GroceryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	handlers := map[string]http.Handler{
		GroceryServiceGetViewProcedure:       connect.NewUnaryHandler(GroceryServiceGetViewProcedure, svc.GetView, opts...),
		GroceryServiceAddItemProcedure:       connect.NewUnaryHandler(GroceryServiceAddItemProcedure, svc.AddItem, opts...),
		GroceryServiceUpdateItemProcedure:    connect.NewUnaryHandler(GroceryServiceUpdateItemProcedure, svc.UpdateItem, opts...),
		GroceryServiceDeleteItemProcedure:    connect.NewUnaryHandler(GroceryServiceDeleteItemProcedure, svc.DeleteItem, opts...),
		GroceryServiceTogglePickedProcedure:  connect.NewUnaryHandler(GroceryServiceTogglePickedProcedure, svc.TogglePicked, opts...),
		GroceryServiceChangePageProcedure:    connect.NewUnaryHandler(GroceryServiceChangePageProcedure, svc.ChangePage, opts...),
		GroceryServiceSaveDataProcedure:      connect.NewUnaryHandler(GroceryServiceSaveDataProcedure, svc.SaveData, opts...),
		GroceryServiceLoadDataProcedure:      connect.NewUnaryHandler(GroceryServiceLoadDataProcedure, svc.LoadData, opts...),
		GroceryServiceSaveSummaryProcedure:   connect.NewUnaryHandler(GroceryServiceSaveSummaryProcedure, svc.SaveSummary, opts...),
		GroceryServiceGetStatisticsProcedure: connect.NewUnaryHandler(GroceryServiceGetStatisticsProcedure, svc.GetStatistics, opts...),
		GroceryServiceImportDataProcedure:    connect.NewUnaryHandler(GroceryServiceImportDataProcedure, svc.ImportData, opts...),
		GroceryServiceExportDataProcedure:    connect.NewUnaryHandler(GroceryServiceExportDataProcedure, svc.ExportData, opts...),
		GroceryServiceListBackupsProcedure:   connect.NewUnaryHandler(GroceryServiceListBackupsProcedure, svc.ListBackups, opts...),
	}
	return "/" + GroceryServiceName + "/", route(handlers)
}

// route dispatches on the request path to one of the procedure handlers.
func route(handlers map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h, ok := handlers[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		h.ServeHTTP(w, r)
	})
}

func unimplemented(procedure string) error {
	return connect.NewError(connect.CodeUnimplemented, errors.New(procedure+" is not implemented"))
}

// UnimplementedGroceryServiceHandler returns CodeUnimplemented from all methods.
type UnimplementedGroceryServiceHandler struct{}

func (UnimplementedGroceryServiceHandler) GetView(context.Context, *connect.Request[api.GetViewRequest]) (*connect.Response[api.GetViewResponse], error) {
	return nil, unimplemented(GroceryServiceGetViewProcedure)
}

func (UnimplementedGroceryServiceHandler) AddItem(context.Context, *connect.Request[api.AddItemRequest]) (*connect.Response[api.AddItemResponse], error) {
	return nil, unimplemented(GroceryServiceAddItemProcedure)
}

func (UnimplementedGroceryServiceHandler) UpdateItem(context.Context, *connect.Request[api.UpdateItemRequest]) (*connect.Response[api.UpdateItemResponse], error) {
	return nil, unimplemented(GroceryServiceUpdateItemProcedure)
}

func (UnimplementedGroceryServiceHandler) DeleteItem(context.Context, *connect.Request[api.DeleteItemRequest]) (*connect.Response[api.DeleteItemResponse], error) {
	return nil, unimplemented(GroceryServiceDeleteItemProcedure)
}

func (UnimplementedGroceryServiceHandler) TogglePicked(context.Context, *connect.Request[api.TogglePickedRequest]) (*connect.Response[api.TogglePickedResponse], error) {
	return nil, unimplemented(GroceryServiceTogglePickedProcedure)
}

func (UnimplementedGroceryServiceHandler) ChangePage(context.Context, *connect.Request[api.ChangePageRequest]) (*connect.Response[api.ChangePageResponse], error) {
	return nil, unimplemented(GroceryServiceChangePageProcedure)
}

func (UnimplementedGroceryServiceHandler) SaveData(context.Context, *connect.Request[api.SaveDataRequest]) (*connect.Response[api.SaveDataResponse], error) {
	return nil, unimplemented(GroceryServiceSaveDataProcedure)
}

func (UnimplementedGroceryServiceHandler) LoadData(context.Context, *connect.Request[api.LoadDataRequest]) (*connect.Response[api.LoadDataResponse], error) {
	return nil, unimplemented(GroceryServiceLoadDataProcedure)
}

func (UnimplementedGroceryServiceHandler) SaveSummary(context.Context, *connect.Request[api.SaveSummaryRequest]) (*connect.Response[api.SaveSummaryResponse], error) {
	return nil, unimplemented(GroceryServiceSaveSummaryProcedure)
}

func (UnimplementedGroceryServiceHandler) GetStatistics(context.Context, *connect.Request[api.GetStatisticsRequest]) (*connect.Response[api.GetStatisticsResponse], error) {
	return nil, unimplemented(GroceryServiceGetStatisticsProcedure)
}

func (UnimplementedGroceryServiceHandler) ImportData(context.Context, *connect.Request[api.ImportDataRequest]) (*connect.Response[api.ImportDataResponse], error) {
	return nil, unimplemented(GroceryServiceImportDataProcedure)
}

func (UnimplementedGroceryServiceHandler) ExportData(context.Context, *connect.Request[api.ExportDataRequest]) (*connect.Response[api.ExportDataResponse], error) {
	return nil, unimplemented(GroceryServiceExportDataProcedure)
}

func (UnimplementedGroceryServiceHandler) ListBackups(context.Context, *connect.Request[api.ListBackupsRequest]) (*connect.Response[api.ListBackupsResponse], error) {
	return nil, unimplemented(GroceryServiceListBackupsProcedure)
}
