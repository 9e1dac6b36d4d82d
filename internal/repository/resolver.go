package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/Raju11sui/Outreacher-ai/internal/database"
	"github.com/Raju11sui/Outreacher-ai/internal/models"
)

type BackendKind string

const (
	BackendDurable   BackendKind = "durable"
	BackendEphemeral BackendKind = "ephemeral"
)

// Backend is the store chosen for the lifetime of the process.
type Backend struct {
	Kind  BackendKind
	Store Store
}

// OpenFunc opens and prepares the durable database.
type OpenFunc func(ctx context.Context, databaseURL string) (*sql.DB, error)

// OpenMySQL connects to MySQL and applies the schema.
func OpenMySQL(ctx context.Context, databaseURL string) (*sql.DB, error) {
	db, err := database.Connect(ctx, databaseURL)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Resolver picks the backend on first use and delegates every Store call to it.
// A missing or unreachable database degrades to the in-memory store; it is never an error.
type Resolver struct {
	databaseURL string
	ownerOpenID string
	open        OpenFunc
	log         *slog.Logger
	memory      *MemoryStore

	once    sync.Once
	backend Backend
	db      *sql.DB
}

func NewResolver(databaseURL, ownerOpenID string, open OpenFunc, log *slog.Logger) *Resolver {
	if open == nil {
		open = OpenMySQL
	}
	return &Resolver{
		databaseURL: databaseURL,
		ownerOpenID: ownerOpenID,
		open:        open,
		log:         log,
		memory:      NewMemoryStore(ownerOpenID),
	}
}

// Resolve returns the chosen backend, deciding it on the first call.
func (r *Resolver) Resolve(ctx context.Context) Backend {
	r.once.Do(func() {
		r.backend = r.resolve(context.WithoutCancel(ctx))
		r.log.Info("storage backend selected", "kind", r.backend.Kind)
	})
	return r.backend
}

func (r *Resolver) resolve(ctx context.Context) Backend {
	ephemeral := Backend{Kind: BackendEphemeral, Store: r.memory}
	if r.databaseURL == "" {
		return ephemeral
	}
	db, err := r.open(ctx, r.databaseURL)
	if err != nil {
		r.log.Warn("persistence unavailable, using in-memory store", "err", err)
		return ephemeral
	}
	r.db = db
	return Backend{Kind: BackendDurable, Store: NewMySQLStore(db, r.ownerOpenID)}
}

// Kind reports the chosen backend, resolving it if needed.
func (r *Resolver) Kind(ctx context.Context) BackendKind {
	return r.Resolve(ctx).Kind
}

// Close releases the database pool when the durable backend was chosen.
func (r *Resolver) Close() error {
	if r.db == nil {
		return nil
	}
	if err := r.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}
	return nil
}

func (r *Resolver) UpsertUser(ctx context.Context, in UpsertUserInput) error {
	return r.Resolve(ctx).Store.UpsertUser(ctx, in)
}

func (r *Resolver) GetUserByOpenID(ctx context.Context, openID string) (*models.User, error) {
	return r.Resolve(ctx).Store.GetUserByOpenID(ctx, openID)
}

func (r *Resolver) GetOrCreateSubscription(ctx context.Context, userID int64) (*models.Subscription, error) {
	return r.Resolve(ctx).Store.GetOrCreateSubscription(ctx, userID)
}

func (r *Resolver) UpdateSubscription(ctx context.Context, id int64, upd SubscriptionUpdate) (*models.Subscription, error) {
	return r.Resolve(ctx).Store.UpdateSubscription(ctx, id, upd)
}

func (r *Resolver) IncrementGenerationsUsed(ctx context.Context, id int64) (*models.Subscription, error) {
	return r.Resolve(ctx).Store.IncrementGenerationsUsed(ctx, id)
}

func (r *Resolver) CreateCampaign(ctx context.Context, in CreateCampaignInput) (*models.Campaign, error) {
	return r.Resolve(ctx).Store.CreateCampaign(ctx, in)
}

func (r *Resolver) GetCampaignsByUserID(ctx context.Context, userID int64) ([]models.Campaign, error) {
	return r.Resolve(ctx).Store.GetCampaignsByUserID(ctx, userID)
}

func (r *Resolver) GetCampaignByID(ctx context.Context, id int64) (*models.Campaign, error) {
	return r.Resolve(ctx).Store.GetCampaignByID(ctx, id)
}

func (r *Resolver) CreateMessage(ctx context.Context, in CreateMessageInput) (*models.Message, error) {
	return r.Resolve(ctx).Store.CreateMessage(ctx, in)
}

func (r *Resolver) GetMessagesByCampaignID(ctx context.Context, campaignID int64) ([]models.Message, error) {
	return r.Resolve(ctx).Store.GetMessagesByCampaignID(ctx, campaignID)
}

func (r *Resolver) GetMessagesByUserID(ctx context.Context, userID int64) ([]models.Message, error) {
	return r.Resolve(ctx).Store.GetMessagesByUserID(ctx, userID)
}

var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*MySQLStore)(nil)
	_ Store = (*Resolver)(nil)
)
