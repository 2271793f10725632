package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/storefront-checkout/internal/checkout"
	"github.com/angelmondragon/storefront-checkout/internal/notices"
	"github.com/angelmondragon/storefront-checkout/pkg/redis"
)

type kv interface {
	Get(ctx context.Context, key string) (string, error)
	GetDel(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	SessionKey(sessionID string) string
	NoticesKey(sessionID string) string
}

// Store persists browsing sessions in redis.
type Store struct {
	kv  kv
	ttl time.Duration
}

// NewStore builds a session store. Every write refreshes the TTL.
func NewStore(client kv, ttl time.Duration) *Store {
	return &Store{kv: client, ttl: ttl}
}

// NewID returns a fresh session id.
func NewID() string {
	return uuid.NewString()
}

// ValidID reports whether id looks like a session id issued by NewID.
func ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

type stateData struct {
	AwaitingPayment uint64                   `json:"awaiting_payment,omitempty"`
	Billing         checkout.BillingLocation `json:"billing"`
}

// State is one shopper's session. It is loaded per request.
type State struct {
	store *Store
	id    string
	data  stateData
}

// Open loads the session, starting an empty one when nothing is stored.
func (s *Store) Open(ctx context.Context, id string) (*State, error) {
	state := &State{store: s, id: id}
	raw, err := s.kv.Get(ctx, s.kv.SessionKey(id))
	if err != nil {
		if redis.IsNil(err) {
			return state, nil
		}
		return nil, fmt.Errorf("load session: %w", err)
	}
	if err := json.Unmarshal([]byte(raw), &state.data); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return state, nil
}

func (st *State) ID() string {
	return st.id
}

// AwaitingPayment is the id of the order placed in this session that has not
// been paid yet, or 0.
func (st *State) AwaitingPayment() uint64 {
	return st.data.AwaitingPayment
}

// ClearAwaitingPayment is safe to call when no marker is set.
func (st *State) ClearAwaitingPayment(ctx context.Context) error {
	st.data.AwaitingPayment = 0
	return st.save(ctx)
}

// BillingLocation is the guest shopper's billing location.
func (st *State) BillingLocation() checkout.BillingLocation {
	return st.data.Billing
}

// SetBillingLocation stores the guest billing location. Nil fields clear the
// stored value.
func (st *State) SetBillingLocation(ctx context.Context, update checkout.BillingUpdate) error {
	st.data.Billing = checkout.BillingLocation{
		Country:  value(update.Country),
		State:    value(update.State),
		Postcode: value(update.Postcode),
	}
	return st.save(ctx)
}

// QueueNotices keeps notices for the next request of this session.
func (st *State) QueueNotices(ctx context.Context, items []notices.Notice) error {
	key := st.store.kv.NoticesKey(st.id)
	if len(items) == 0 {
		return st.store.kv.Del(ctx, key)
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode notices: %w", err)
	}
	return st.store.kv.Set(ctx, key, payload, st.store.ttl)
}

// TakeNotices returns and removes the notices queued by earlier requests.
func (st *State) TakeNotices(ctx context.Context) ([]notices.Notice, error) {
	raw, err := st.store.kv.GetDel(ctx, st.store.kv.NoticesKey(st.id))
	if err != nil {
		if redis.IsNil(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("load notices: %w", err)
	}
	var items []notices.Notice
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode notices: %w", err)
	}
	return items, nil
}

func (st *State) save(ctx context.Context) error {
	payload, err := json.Marshal(st.data)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := st.store.kv.Set(ctx, st.store.kv.SessionKey(st.id), payload, st.store.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func value(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
