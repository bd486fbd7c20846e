package impl

import (
	"context"
	"io"
	"log/slog"
	"time"

	"adsync/internal/domain/entity"
	"adsync/internal/domain/repository"
	"adsync/internal/domain/service"
	"adsync/internal/usecase"

	"github.com/google/uuid"
)

// Hand-rolled function-field fakes shared by the service tests. Unset
// functions panic, which keeps unexpected calls loud.

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// --- repositories ---

type fakeCredentialRepo struct {
	FindFn        func(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.Credential, error)
	UpsertFn      func(ctx context.Context, cred *entity.Credential) error
	UpdateTokenFn func(ctx context.Context, userID uuid.UUID, provider entity.ProviderType, accessToken, refreshToken string, expiresAt time.Time) error
	DeleteFn      func(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) error
}

func (f *fakeCredentialRepo) Find(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) (*entity.Credential, error) {
	return f.FindFn(ctx, userID, provider)
}

func (f *fakeCredentialRepo) Upsert(ctx context.Context, cred *entity.Credential) error {
	return f.UpsertFn(ctx, cred)
}

func (f *fakeCredentialRepo) UpdateToken(ctx context.Context, userID uuid.UUID, provider entity.ProviderType, accessToken, refreshToken string, expiresAt time.Time) error {
	return f.UpdateTokenFn(ctx, userID, provider, accessToken, refreshToken, expiresAt)
}

func (f *fakeCredentialRepo) Delete(ctx context.Context, userID uuid.UUID, provider entity.ProviderType) error {
	return f.DeleteFn(ctx, userID, provider)
}

type fakeConfigRepo struct {
	CreateFn     func(ctx context.Context, cfg *entity.ExportConfig) error
	FindByIDFn   func(ctx context.Context, userID, id uuid.UUID) (*entity.ExportConfig, error)
	ListByUserFn func(ctx context.Context, userID uuid.UUID) ([]*entity.ExportConfig, error)
	UpdateFn     func(ctx context.Context, cfg *entity.ExportConfig) error
	DeleteFn     func(ctx context.Context, userID, id uuid.UUID) error
}

func (f *fakeConfigRepo) Create(ctx context.Context, cfg *entity.ExportConfig) error {
	return f.CreateFn(ctx, cfg)
}

func (f *fakeConfigRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*entity.ExportConfig, error) {
	return f.FindByIDFn(ctx, userID, id)
}

func (f *fakeConfigRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.ExportConfig, error) {
	return f.ListByUserFn(ctx, userID)
}

func (f *fakeConfigRepo) Update(ctx context.Context, cfg *entity.ExportConfig) error {
	return f.UpdateFn(ctx, cfg)
}

func (f *fakeConfigRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	return f.DeleteFn(ctx, userID, id)
}

// fakeLogRepo records created entries so tests can assert the exactly-one-log
// rule.
type fakeLogRepo struct {
	CreateErr    error
	Created      []*entity.ExportLog
	ListByUserFn func(ctx context.Context, userID uuid.UUID, filter repository.ExportLogFilter, offset, limit int) ([]*entity.ExportLog, int64, error)
}

func (f *fakeLogRepo) Create(_ context.Context, log *entity.ExportLog) error {
	f.Created = append(f.Created, log)

	return f.CreateErr
}

func (f *fakeLogRepo) ListByUser(ctx context.Context, userID uuid.UUID, filter repository.ExportLogFilter, offset, limit int) ([]*entity.ExportLog, int64, error) {
	return f.ListByUserFn(ctx, userID, filter, offset, limit)
}

type fakeStampRepo struct {
	FindFn   func(ctx context.Context, userID uuid.UUID, operation string) (*entity.SyncStamp, error)
	UpsertFn func(ctx context.Context, stamp *entity.SyncStamp) error
}

func (f *fakeStampRepo) Find(ctx context.Context, userID uuid.UUID, operation string) (*entity.SyncStamp, error) {
	return f.FindFn(ctx, userID, operation)
}

func (f *fakeStampRepo) Upsert(ctx context.Context, stamp *entity.SyncStamp) error {
	return f.UpsertFn(ctx, stamp)
}

// --- provider clients ---

type fakeAdsClient struct {
	ListAdAccountsFn  func(ctx context.Context) ([]service.AdAccount, error)
	FetchInsightsFn   func(ctx context.Context, accountID, date string) ([]service.InsightRow, error)
	SearchInterestsFn func(ctx context.Context, query string) ([]service.Interest, error)
	ListPagesFn       func(ctx context.Context) ([]service.Page, error)
}

func (f *fakeAdsClient) ListAdAccounts(ctx context.Context) ([]service.AdAccount, error) {
	return f.ListAdAccountsFn(ctx)
}

func (f *fakeAdsClient) FetchInsights(ctx context.Context, accountID, date string) ([]service.InsightRow, error) {
	return f.FetchInsightsFn(ctx, accountID, date)
}

func (f *fakeAdsClient) SearchInterests(ctx context.Context, query string) ([]service.Interest, error) {
	return f.SearchInterestsFn(ctx, query)
}

func (f *fakeAdsClient) ListPages(ctx context.Context) ([]service.Page, error) {
	return f.ListPagesFn(ctx)
}

type fakeAdsFactory struct {
	Client     service.AdsClient
	ExchangeFn func(ctx context.Context, shortLivedToken string) (*service.TokenExchange, error)

	LastToken string
}

func (f *fakeAdsFactory) ClientForToken(accessToken string) service.AdsClient {
	f.LastToken = accessToken

	return f.Client
}

func (f *fakeAdsFactory) ExchangeShortLivedToken(ctx context.Context, shortLivedToken string) (*service.TokenExchange, error) {
	return f.ExchangeFn(ctx, shortLivedToken)
}

type fakeSheetClient struct {
	ListSpreadsheetsFn func(ctx context.Context, namePrefix string) ([]service.SpreadsheetFile, error)
	SpreadsheetTitleFn func(ctx context.Context, spreadsheetID string) (string, error)
	ListTabsFn         func(ctx context.Context, spreadsheetID string) ([]string, error)
	AppendRowsFn       func(ctx context.Context, spreadsheetID, tab string, rows [][]string) error
	OverwriteRowsFn    func(ctx context.Context, spreadsheetID, tab string, rows [][]string) error
}

func (f *fakeSheetClient) ListSpreadsheets(ctx context.Context, namePrefix string) ([]service.SpreadsheetFile, error) {
	return f.ListSpreadsheetsFn(ctx, namePrefix)
}

func (f *fakeSheetClient) SpreadsheetTitle(ctx context.Context, spreadsheetID string) (string, error) {
	return f.SpreadsheetTitleFn(ctx, spreadsheetID)
}

func (f *fakeSheetClient) ListTabs(ctx context.Context, spreadsheetID string) ([]string, error) {
	return f.ListTabsFn(ctx, spreadsheetID)
}

func (f *fakeSheetClient) AppendRows(ctx context.Context, spreadsheetID, tab string, rows [][]string) error {
	return f.AppendRowsFn(ctx, spreadsheetID, tab, rows)
}

func (f *fakeSheetClient) OverwriteRows(ctx context.Context, spreadsheetID, tab string, rows [][]string) error {
	return f.OverwriteRowsFn(ctx, spreadsheetID, tab, rows)
}

type fakeSheetFactory struct {
	Client     service.SpreadsheetClient
	ClientErr  error
	ExchangeFn func(ctx context.Context, code string) (*service.OAuthToken, error)

	LastPersist service.TokenPersistFunc
}

func (f *fakeSheetFactory) ClientForCredential(_ context.Context, _ *entity.Credential, persist service.TokenPersistFunc) (service.SpreadsheetClient, error) {
	f.LastPersist = persist
	if f.ClientErr != nil {
		return nil, f.ClientErr
	}

	return f.Client, nil
}

func (f *fakeSheetFactory) ExchangeAuthCode(ctx context.Context, code string) (*service.OAuthToken, error) {
	return f.ExchangeFn(ctx, code)
}

// --- application services ---

// fakeTokenUsecase serves the services built on top of credential resolution.
type fakeTokenUsecase struct {
	ResolveMetaTokenFn func(ctx context.Context, userID uuid.UUID) (string, error)
	SheetsClientForFn  func(ctx context.Context, userID uuid.UUID) (service.SpreadsheetClient, error)

	MetaResolves  int
	SheetResolves int
}

func (f *fakeTokenUsecase) ConnectMeta(context.Context, uuid.UUID, *usecase.ConnectMetaInput) error {
	panic("unexpected ConnectMeta call")
}

func (f *fakeTokenUsecase) ConnectGoogle(context.Context, uuid.UUID, *usecase.ConnectGoogleInput) error {
	panic("unexpected ConnectGoogle call")
}

func (f *fakeTokenUsecase) Disconnect(context.Context, uuid.UUID, entity.ProviderType) error {
	panic("unexpected Disconnect call")
}

func (f *fakeTokenUsecase) Status(context.Context, uuid.UUID) (*usecase.ConnectionStatusOutput, error) {
	panic("unexpected Status call")
}

func (f *fakeTokenUsecase) ResolveMetaToken(ctx context.Context, userID uuid.UUID) (string, error) {
	f.MetaResolves++

	return f.ResolveMetaTokenFn(ctx, userID)
}

func (f *fakeTokenUsecase) SheetsClientFor(ctx context.Context, userID uuid.UUID) (service.SpreadsheetClient, error) {
	f.SheetResolves++

	return f.SheetsClientForFn(ctx, userID)
}

type fakeCooldown struct {
	CheckFn func(ctx context.Context, userID uuid.UUID, operation string, window time.Duration) error

	Stamps []string
}

func (f *fakeCooldown) Check(ctx context.Context, userID uuid.UUID, operation string, window time.Duration) error {
	if f.CheckFn == nil {
		return nil
	}

	return f.CheckFn(ctx, userID, operation, window)
}

func (f *fakeCooldown) Stamp(_ context.Context, _ uuid.UUID, operation string) error {
	f.Stamps = append(f.Stamps, operation)

	return nil
}

// fakeCache is an always-consistent in-memory cache without expiry.
type fakeCache struct {
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[string][]byte)}
}

func (f *fakeCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := f.entries[key]

	return value, ok, nil
}

func (f *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	f.entries[key] = value

	return nil
}

func (f *fakeCache) Del(_ context.Context, key string) error {
	delete(f.entries, key)

	return nil
}
