// Package app hosts the market runtime: it serializes operations, journals
// their events, and folds them into the in-memory chain state. Decisions are
// pure and folds cannot fail on a journal the runtime itself wrote, so every
// operation is atomic: either its whole event batch commits or nothing does.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/holiman/uint256"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	apperrors "github.com/deedshare/deedshare/internal/platform/errors"
	"github.com/deedshare/deedshare/internal/services/market/domain/bank"
	"github.com/deedshare/deedshare/internal/services/market/domain/chain"
	"github.com/deedshare/deedshare/internal/services/market/domain/event"
	"github.com/deedshare/deedshare/internal/services/market/domain/legal"
	"github.com/deedshare/deedshare/internal/services/market/domain/nft"
	"github.com/deedshare/deedshare/internal/services/market/domain/region"
	"github.com/deedshare/deedshare/internal/services/market/domain/roles"
	"github.com/deedshare/deedshare/internal/services/market/domain/token"
	"github.com/deedshare/deedshare/internal/services/market/storage"
)

// Capability carries the caller's administrative rights, resolved at the API
// boundary.
type Capability struct {
	Admin bool
}

// Config configures a Runtime.
type Config struct {
	Journal      storage.JournalStore
	RegionParams region.Params
	TokenParams  token.Params
	LegalParams  legal.Params
	// Clock stamps committed events; defaults to time.Now.
	Clock func() time.Time
}

// Runtime is the single-writer market state machine.
type Runtime struct {
	mu       sync.RWMutex
	journal  storage.JournalStore
	registry *event.Registry
	tracer   trace.Tracer
	clock    func() time.Time

	height  chain.BlockNumber
	ledger  *bank.Ledger
	roles   *roles.Registry
	nfts    *nft.Registry
	regions *region.State
	tokens  *token.State
	legal   *legal.State

	regionParams region.Params
	tokenParams  token.Params
	legalParams  legal.Params
}

// NewRuntime opens a runtime over the journal, replaying every event to
// rebuild state.
func NewRuntime(ctx context.Context, cfg Config) (*Runtime, error) {
	if cfg.Journal == nil {
		return nil, fmt.Errorf("journal store is required")
	}
	if cfg.RegionParams.MinimumDeposit == nil {
		cfg.RegionParams = region.DefaultParams()
	}
	if cfg.TokenParams.MaxPropertyToken == nil {
		cfg.TokenParams = token.DefaultParams()
	}
	if cfg.LegalParams.MaxCostEntries == 0 {
		cfg.LegalParams = legal.DefaultParams()
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	registry := event.NewRegistry(bank.Types()...)
	registry.Register(roles.Types()...)
	registry.Register(region.Types()...)
	registry.Register(token.Types()...)
	registry.Register(legal.Types()...)

	r := &Runtime{
		journal:      cfg.Journal,
		registry:     registry,
		tracer:       otel.Tracer("deedshare/market"),
		clock:        cfg.Clock,
		ledger:       bank.NewLedger(),
		roles:        roles.NewRegistry(),
		nfts:         nft.NewRegistry(),
		regions:      region.NewState(),
		tokens:       token.NewState(),
		legal:        legal.NewState(),
		regionParams: cfg.RegionParams,
		tokenParams:  cfg.TokenParams,
		legalParams:  cfg.LegalParams,
	}

	height, err := cfg.Journal.Height(ctx)
	if err != nil {
		return nil, fmt.Errorf("load block height: %w", err)
	}
	r.height = height

	events, err := cfg.Journal.ListEvents(ctx, 0, 0)
	if err != nil {
		return nil, fmt.Errorf("replay journal: %w", err)
	}
	for _, evt := range events {
		if err := r.fold(evt); err != nil {
			return nil, fmt.Errorf("replay event %s (%s): %w", evt.ID, evt.Type, err)
		}
	}
	return r, nil
}

func (r *Runtime) regionView() region.View {
	return region.View{
		State:  r.regions,
		Ledger: r.ledger,
		Roles:  r.roles,
		NFTs:   r.nfts,
		Height: r.height,
		Params: r.regionParams,
	}
}

func (r *Runtime) tokenView() token.View {
	return token.View{
		State:   r.tokens,
		Regions: r.regions,
		Ledger:  r.ledger,
		NFTs:    r.nfts,
		Params:  r.tokenParams,
	}
}

func (r *Runtime) legalView() legal.View {
	return legal.View{
		State:   r.legal,
		Tokens:  r.tokens,
		Regions: r.regions,
		Ledger:  r.ledger,
		NFTs:    r.nfts,
		Params:  r.legalParams,
	}
}

// fold routes one committed event to its state machine.
func (r *Runtime) fold(evt event.Event) error {
	switch evt.Namespace() {
	case "bank":
		return bank.Apply(r.ledger, evt)
	case "roles":
		return roles.Apply(r.roles, evt)
	case "region":
		return region.Apply(r.regionView(), evt)
	case "token":
		return token.Apply(r.tokenView(), evt)
	case "legal":
		return legal.Apply(r.legalView(), evt)
	}
	return fmt.Errorf("unhandled event namespace %q", evt.Namespace())
}

// commit journals and folds a decision's events under one lock. A journal
// failure commits nothing; fold failures after a successful append indicate
// a programming error and are surfaced as-is.
func (r *Runtime) commit(ctx context.Context, op string, decide func() ([]event.Event, error)) error {
	ctx, span := r.tracer.Start(ctx, op)
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	events, err := decide()
	if err != nil {
		span.SetStatus(codes.Error, string(apperrors.CodeOf(err)))
		return err
	}
	if len(events) == 0 {
		return nil
	}
	now := r.clock()
	for i := range events {
		events[i].Height = r.height
		events[i].Timestamp = now
		if err := r.registry.ValidateForAppend(events[i]); err != nil {
			span.SetStatus(codes.Error, "unregistered event type")
			return err
		}
	}
	if err := r.journal.AppendEvents(ctx, events); err != nil {
		span.SetStatus(codes.Error, "journal append failed")
		return fmt.Errorf("append events: %w", err)
	}
	for _, evt := range events {
		if err := r.fold(evt); err != nil {
			span.SetStatus(codes.Error, "fold failed")
			return fmt.Errorf("fold %s: %w", evt.Type, err)
		}
	}
	return nil
}

// Height returns the current block height.
func (r *Runtime) Height() chain.BlockNumber {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.height
}

// AdvanceBlock advances the chain by n blocks, running the expiry sweep at
// each new height and persisting the cursor.
func (r *Runtime) AdvanceBlock(ctx context.Context, n uint64) error {
	ctx, span := r.tracer.Start(ctx, "market.AdvanceBlock")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := uint64(0); i < n; i++ {
		r.height++
		events, err := region.Sweep(r.regionView())
		if err != nil {
			span.SetStatus(codes.Error, "sweep failed")
			return fmt.Errorf("sweep at height %d: %w", r.height, err)
		}
		now := r.clock()
		for j := range events {
			events[j].Height = r.height
			events[j].Timestamp = now
		}
		if len(events) > 0 {
			if err := r.journal.AppendEvents(ctx, events); err != nil {
				r.height--
				span.SetStatus(codes.Error, "journal append failed")
				return fmt.Errorf("append sweep events: %w", err)
			}
			for _, evt := range events {
				if err := r.fold(evt); err != nil {
					span.SetStatus(codes.Error, "fold failed")
					return fmt.Errorf("fold %s: %w", evt.Type, err)
				}
			}
		}
	}
	if err := r.journal.SetHeight(ctx, r.height); err != nil {
		span.SetStatus(codes.Error, "persist height failed")
		return fmt.Errorf("persist height: %w", err)
	}
	return nil
}

func requireAdmin(cap Capability) error {
	if !cap.Admin {
		return apperrors.New(apperrors.CodeAdminRequired, "admin capability required")
	}
	return nil
}

// MintFunds credits freshly issued funds to an account. Admin only.
func (r *Runtime) MintFunds(ctx context.Context, cap Capability, account chain.AccountID, cur chain.Currency, amount *uint256.Int) error {
	return r.commit(ctx, "market.MintFunds", func() ([]event.Event, error) {
		if err := requireAdmin(cap); err != nil {
			return nil, err
		}
		evt, err := event.New(bank.TypeMinted, region.SystemActor, bank.MintedPayload{
			Currency: cur,
			Account:  account,
			Amount:   amount,
		})
		if err != nil {
			return nil, err
		}
		return []event.Event{evt}, nil
	})
}

// WhitelistAccount grants the whitelist role. Admin only.
func (r *Runtime) WhitelistAccount(ctx context.Context, cap Capability, account chain.AccountID) error {
	return r.roleChange(ctx, "market.WhitelistAccount", cap, account, roles.RoleWhitelisted, true)
}

// AddRegionalOperator grants the regional operator role. Admin only.
func (r *Runtime) AddRegionalOperator(ctx context.Context, cap Capability, account chain.AccountID) error {
	return r.roleChange(ctx, "market.AddRegionalOperator", cap, account, roles.RoleRegionalOperator, true)
}

// RemoveRegionalOperator revokes the regional operator role. Admin only.
func (r *Runtime) RemoveRegionalOperator(ctx context.Context, cap Capability, account chain.AccountID) error {
	return r.roleChange(ctx, "market.RemoveRegionalOperator", cap, account, roles.RoleRegionalOperator, false)
}

func (r *Runtime) roleChange(ctx context.Context, op string, cap Capability, account chain.AccountID, role roles.Role, grant bool) error {
	return r.commit(ctx, op, func() ([]event.Event, error) {
		if err := requireAdmin(cap); err != nil {
			return nil, err
		}
		evtType := roles.TypeAssigned
		if grant {
			if r.roles.Has(account, role) {
				return nil, apperrors.New(apperrors.CodeRoleAlreadyAssigned, "role already assigned")
			}
		} else {
			evtType = roles.TypeRemoved
			if !r.roles.Has(account, role) {
				return nil, apperrors.New(apperrors.CodeRoleNotAssigned, "role not assigned")
			}
		}
		evt, err := event.New(evtType, region.SystemActor, roles.RolePayload{
			Account: account,
			Role:    role,
		})
		if err != nil {
			return nil, err
		}
		return []event.Event{evt}, nil
	})
}
