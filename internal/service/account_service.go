package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/account-console/internal/config"
	"github.com/spec-kit/account-console/internal/domain"
	"github.com/spec-kit/account-console/internal/events"
	"github.com/spec-kit/account-console/internal/fuzzy"
	"github.com/spec-kit/account-console/internal/observability"
	"github.com/spec-kit/account-console/internal/remote"
	"github.com/spec-kit/account-console/internal/repository"
	"github.com/spec-kit/account-console/internal/search"
	"github.com/spec-kit/account-console/internal/store"
	apperrors "github.com/spec-kit/account-console/pkg/util"
)

const cacheTimeout = 2 * time.Second

// Load sources, as counted in metrics.
const (
	LoadSourceRemote = "remote"
	LoadSourceCache  = "cache"
	LoadSourceFailed = "failed"
)

// AccountDependencies bundles collaborators for AccountService. Cache,
// Dispatcher and Metrics are optional.
type AccountDependencies struct {
	Remote     remote.AccountsAPI
	Store      *store.AccountStore
	Cache      repository.SnapshotCache
	Dispatcher events.Dispatcher
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// LoadResult describes what a Load put into the store.
type LoadResult struct {
	Count     int
	Dropped   int
	Stale     bool
	FetchedAt time.Time
}

// AccountService loads, searches and toggles accounts. The store is the
// single source of truth for the active flag; the remote service is updated
// in the background and never allowed to roll the store back.
type AccountService struct {
	remote       remote.AccountsAPI
	store        *store.AccountStore
	cache        repository.SnapshotCache
	dispatcher   events.Dispatcher
	metrics      *observability.Metrics
	logger       *zap.Logger
	searchOpts   fuzzy.Options
	listTimeout  time.Duration
	patchTimeout time.Duration
	now          func() time.Time
	inflight     sync.WaitGroup
}

// NewAccountService constructs the service.
func NewAccountService(cfg config.Config, deps AccountDependencies) *AccountService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	st := deps.Store
	if st == nil {
		st = store.NewAccountStore()
	}
	return &AccountService{
		remote:       deps.Remote,
		store:        st,
		cache:        deps.Cache,
		dispatcher:   deps.Dispatcher,
		metrics:      deps.Metrics,
		logger:       logger,
		searchOpts:   SearchOptions(cfg.Search),
		listTimeout:  cfg.Accounts.Timeout(),
		patchTimeout: cfg.Accounts.PatchTimeout(),
		now:          time.Now,
	}
}

// SearchOptions converts search settings into fuzzy matching options.
func SearchOptions(cfg config.SearchConfig) fuzzy.Options {
	return fuzzy.Options{
		Threshold:          cfg.Threshold,
		Location:           cfg.Location,
		Distance:           cfg.Distance,
		MaxPatternLength:   cfg.MaxPatternLength,
		MinMatchCharLength: cfg.MinMatchCharLength,
	}
}

// Load fetches the listing and replaces the store with it. When the remote
// call fails the last cached snapshot is used and Stale is set; without one
// the store is emptied. Either way the upstream error is returned so the
// caller can show it.
func (s *AccountService) Load(ctx context.Context) (LoadResult, error) {
	listCtx := ctx
	if s.listTimeout > 0 {
		var cancel context.CancelFunc
		listCtx, cancel = context.WithTimeout(ctx, s.listTimeout)
		defer cancel()
	}

	accounts, err := s.remote.ListAccounts(listCtx)
	if err == nil {
		dropped := s.store.Replace(accounts)
		result := LoadResult{Count: s.store.Len(), Dropped: dropped, FetchedAt: s.now()}
		if dropped > 0 {
			s.logger.Warn("duplicate account ids dropped", zap.Int("dropped", dropped))
		}
		s.saveSnapshot(ctx, domain.AccountSnapshot{Accounts: s.store.Snapshot(), FetchedAt: result.FetchedAt})
		s.metrics.RecordLoad(LoadSourceRemote)
		s.publishLoaded(ctx, result)
		return result, nil
	}

	s.logger.Warn("list accounts failed", zap.Error(err))
	upstream := apperrors.NewUpstreamError("accounts unavailable", err)

	if snapshot := s.loadSnapshot(ctx); snapshot != nil {
		dropped := s.store.Replace(snapshot.Accounts)
		result := LoadResult{Count: s.store.Len(), Dropped: dropped, Stale: true, FetchedAt: snapshot.FetchedAt}
		s.metrics.RecordLoad(LoadSourceCache)
		s.publishLoaded(ctx, result)
		return result, upstream
	}

	s.store.Replace(nil)
	s.metrics.RecordLoad(LoadSourceFailed)
	return LoadResult{}, upstream
}

// Accounts returns the loaded collection in server order.
func (s *AccountService) Accounts() []domain.Account {
	return s.store.Snapshot()
}

// Account returns one loaded account.
func (s *AccountService) Account(id domain.AccountID) (domain.Account, error) {
	account, ok := s.store.Get(id)
	if !ok {
		return domain.Account{}, apperrors.NewNotFound("account", map[string]any{"id": id.String()})
	}
	return account, nil
}

// Search filters the loaded collection, best match first. The store is not modified.
func (s *AccountService) Search(query string) []domain.Account {
	return search.Filter(s.store.Snapshot(), query, s.searchOpts)
}

// ToggleActive flips the account's active flag in the store and returns the
// updated record. The remote PATCH runs in the background; its failure is
// logged, counted and audited but never undoes the local change.
func (s *AccountService) ToggleActive(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	updated, ok := s.store.Toggle(id)
	if !ok {
		return domain.Account{}, apperrors.NewNotFound("account", map[string]any{"id": id.String()})
	}
	// The caller's id may alias a request buffer; the store's copy does not.
	id = updated.ID

	s.publish(ctx, events.Event{
		Type:      events.EventAccountToggled,
		AccountID: id,
		Payload:   events.AccountToggledPayload{OldActive: !updated.IsActive, NewActive: updated.IsActive},
	})

	s.inflight.Add(1)
	go func() {
		defer s.inflight.Done()
		s.pushActive(id, updated.IsActive)
	}()

	return updated, nil
}

// Wait blocks until every background PATCH has finished.
func (s *AccountService) Wait() {
	s.inflight.Wait()
}

// pushActive sends one PATCH and reports its outcome. It does
// not retry or reconcile.
func (s *AccountService) pushActive(id domain.AccountID, active bool) domain.PatchOutcome {
	ctx := context.Background()
	if s.patchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.patchTimeout)
		defer cancel()
	}

	payload := events.AccountPatchCompletedPayload{RequestedActive: active, Outcome: domain.PatchSucceeded}
	if err := s.remote.SetActive(ctx, id, active); err != nil {
		payload.Outcome = domain.PatchFailed
		payload.Error = err.Error()
		s.logger.Warn("remote active update failed",
			zap.String("account_id", id.String()),
			zap.Bool("is_active", active),
			zap.Error(err))
	} else {
		s.logger.Debug("remote active update sent",
			zap.String("account_id", id.String()),
			zap.Bool("is_active", active))
	}

	s.metrics.RecordPatch(string(payload.Outcome))
	s.publish(context.Background(), events.Event{
		Type:      events.EventAccountPatchCompleted,
		AccountID: id,
		Payload:   payload,
	})
	return payload.Outcome
}

func (s *AccountService) saveSnapshot(ctx context.Context, snapshot domain.AccountSnapshot) {
	if s.cache == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()
	if err := s.cache.Save(ctx, snapshot); err != nil {
		s.logger.Warn("snapshot cache save failed", zap.Error(err))
	}
}

func (s *AccountService) loadSnapshot(ctx context.Context) *domain.AccountSnapshot {
	if s.cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), cacheTimeout)
	defer cancel()
	snapshot, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("snapshot cache load failed", zap.Error(err))
		return nil
	}
	return snapshot
}

func (s *AccountService) publishLoaded(ctx context.Context, result LoadResult) {
	s.publish(ctx, events.Event{
		Type:    events.EventAccountsLoaded,
		Payload: events.AccountsLoadedPayload{Count: result.Count, Dropped: result.Dropped, Stale: result.Stale},
	})
}

func (s *AccountService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	event.ID = uuid.NewString()
	event.Timestamp = s.now().UTC()
	if err := s.dispatcher.Publish(ctx, event); err != nil {
		s.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
