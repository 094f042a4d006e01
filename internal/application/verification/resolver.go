package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-otp-nosql/internal/domain"
	"github.com/go-otp-nosql/internal/pkg/phone"
)

// RecordStore is one role-partitioned user store.
type RecordStore interface {
	GetByID(ctx context.Context, userID string) (*domain.Record, error)
	GetByEmail(ctx context.Context, email string) (*domain.Record, error)
	GetByPhone(ctx context.Context, phone string) (*domain.Record, error)
	Update(ctx context.Context, userID string, updates map[string]interface{}) error
}

// Stores maps each role to its store.
type Stores map[domain.Role]RecordStore

// Lookup identifies the record an operation targets. Role and UserID are optional
// narrowing hints; UserID requires Role and the identifier must belong to that user.
type Lookup struct {
	Identifier string
	Role       domain.Role
	UserID     string
}

func (l Lookup) Channel() domain.Channel { return domain.ChannelFor(l.Identifier) }

// Resolver locates user records across the role stores.
type Resolver struct {
	stores      Stores
	countryCode string
}

func NewResolver(stores Stores, countryCode string) *Resolver {
	if countryCode == "" {
		countryCode = phone.DefaultCountryCode
	}
	return &Resolver{stores: stores, countryCode: countryCode}
}

// Resolve returns the first matching record. Without a role hint the stores are searched in
// domain.ResolutionOrder and the first hit wins. Misses are reported as domain.ErrNotFound;
// any other error is a store failure.
func (r *Resolver) Resolve(ctx context.Context, l Lookup) (*domain.Record, error) {
	if l.UserID != "" || l.Role != "" {
		return r.resolveNarrowed(ctx, l)
	}
	for _, role := range domain.ResolutionOrder {
		rec, err := r.find(ctx, role, l.Identifier)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		return rec, err
	}
	return nil, fmt.Errorf("no record for %q: %w", l.Identifier, domain.ErrNotFound)
}

// ResolveAll returns every matching record: one when the lookup is narrowed, otherwise
// one per store the identifier appears in, in domain.ResolutionOrder.
func (r *Resolver) ResolveAll(ctx context.Context, l Lookup) ([]*domain.Record, error) {
	if l.UserID != "" || l.Role != "" {
		rec, err := r.resolveNarrowed(ctx, l)
		if err != nil {
			return nil, err
		}
		return []*domain.Record{rec}, nil
	}
	var out []*domain.Record
	for _, role := range domain.ResolutionOrder {
		rec, err := r.find(ctx, role, l.Identifier)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no record for %q: %w", l.Identifier, domain.ErrNotFound)
	}
	return out, nil
}

func (r *Resolver) resolveNarrowed(ctx context.Context, l Lookup) (*domain.Record, error) {
	if l.UserID == "" {
		return r.find(ctx, l.Role, l.Identifier)
	}
	if l.Role == "" {
		return nil, fmt.Errorf("role is required with a user id: %w", domain.ErrBadRequest)
	}
	store, err := r.store(l.Role)
	if err != nil {
		return nil, err
	}
	rec, err := store.GetByID(ctx, l.UserID)
	if err != nil {
		return nil, err
	}
	if !r.owns(rec, l.Identifier) {
		return nil, fmt.Errorf("%s %s does not hold %q: %w", l.Role, l.UserID, l.Identifier, domain.ErrNotFound)
	}
	rec.Role = l.Role
	return rec, nil
}

// owns reports whether identifier is the record's email (case-insensitive) or its phone
// number once both are normalized.
func (r *Resolver) owns(rec *domain.Record, identifier string) bool {
	identifier = strings.TrimSpace(identifier)
	if domain.ChannelFor(identifier) == domain.ChannelEmail {
		return rec.Email != "" && strings.EqualFold(strings.TrimSpace(rec.Email), identifier)
	}
	stored := phone.Format(rec.PhoneNumber, r.countryCode)
	return stored != "" && stored == phone.Format(identifier, r.countryCode)
}

func (r *Resolver) find(ctx context.Context, role domain.Role, identifier string) (*domain.Record, error) {
	store, err := r.store(role)
	if err != nil {
		return nil, err
	}
	identifier = strings.TrimSpace(identifier)
	if domain.ChannelFor(identifier) == domain.ChannelEmail {
		rec, err := store.GetByEmail(ctx, identifier)
		if err != nil {
			return nil, err
		}
		rec.Role = role
		return rec, nil
	}
	for _, candidate := range r.phoneCandidates(identifier) {
		rec, err := store.GetByPhone(ctx, candidate)
		if errors.Is(err, domain.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		rec.Role = role
		return rec, nil
	}
	return nil, fmt.Errorf("%s not found: %w", role, domain.ErrNotFound)
}

// phoneCandidates lists the spellings a phone number may be stored under:
// as given, the local 10-digit form, and the E.164 form.
func (r *Resolver) phoneCandidates(p string) []string {
	formatted := phone.Format(p, r.countryCode)
	candidates := []string{p}
	if local := strings.TrimPrefix(formatted, "+"+r.countryCode); local != formatted && len(local) == 10 {
		candidates = append(candidates, local)
	}
	candidates = append(candidates, formatted)

	seen := make(map[string]bool, len(candidates))
	out := candidates[:0]
	for _, c := range candidates {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

func (r *Resolver) store(role domain.Role) (RecordStore, error) {
	s, ok := r.stores[role]
	if !ok || s == nil {
		return nil, fmt.Errorf("no store for role %q: %w", role, domain.ErrBadRequest)
	}
	return s, nil
}
