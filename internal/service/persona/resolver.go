package persona

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/sandevgo/companion/internal/core"
	"github.com/sandevgo/companion/pkg/log"
)

type SelectionKind int

const (
	SelectionNone SelectionKind = iota
	SelectionPreset
	SelectionCustom
)

// Selection is the parsed form of a personality choice: a builtin preset key,
// the name of a stored custom descriptor, or nothing at all.
type Selection struct {
	Kind SelectionKind
	Name string
}

func ParseSelection(raw string) Selection {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Selection{Kind: SelectionNone}
	}
	if name, ok := PresetName(raw); ok {
		return Selection{Kind: SelectionPreset, Name: name}
	}
	return Selection{Kind: SelectionCustom, Name: raw}
}

type Resolver struct {
	repo core.PersonasRepository
}

func NewResolver(repo core.PersonasRepository) *Resolver {
	return &Resolver{repo: repo}
}

// Resolve maps a personality selection to the description injected into the
// system instructions. It never fails: unknown or missing selections degrade
// to DefaultDescription.
func (r *Resolver) Resolve(ctx context.Context, userID, selection string) string {
	sel := ParseSelection(selection)

	switch sel.Kind {
	case SelectionNone:
		return DefaultDescription

	case SelectionPreset:
		desc, _ := PresetDescription(sel.Name)
		r.materializePreset(ctx, userID, sel.Name, desc)
		return desc

	default:
		p, err := r.repo.FindByName(ctx, userID, sel.Name)
		if err != nil {
			if !errors.Is(err, core.ErrPersonaNotFound) {
				log.FromCtx(ctx).Error().Err(err).Msg("persona lookup failed, using default")
			}
			return DefaultDescription
		}
		return p.Description
	}
}

// materializePreset saves a first-time preset selection as a custom descriptor
// so the user can edit it later. When the slot limit is reached the preset is
// used transiently without being saved.
func (r *Resolver) materializePreset(ctx context.Context, userID, name, desc string) {
	if userID == "" {
		return
	}

	if _, err := r.repo.FindByName(ctx, userID, name); err == nil {
		return
	} else if !errors.Is(err, core.ErrPersonaNotFound) {
		log.FromCtx(ctx).Error().Err(err).Msg("preset lookup failed")
		return
	}

	err := r.repo.Create(ctx, core.Persona{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        name,
		Description: desc,
	})
	if err != nil && !errors.Is(err, core.ErrPersonaLimit) {
		log.FromCtx(ctx).Error().Err(err).Str("preset", name).Msg("failed to materialize preset")
	}
}

// CreateCustom stores a user-authored descriptor, enforcing the slot limit.
func (r *Resolver) CreateCustom(ctx context.Context, userID, name, description string) (core.Persona, error) {
	if userID == "" {
		return core.Persona{}, core.ErrUserRequired
	}

	p := core.Persona{
		ID:          uuid.NewString(),
		UserID:      userID,
		Name:        strings.TrimSpace(name),
		Description: strings.TrimSpace(description),
	}
	if err := r.repo.Create(ctx, p); err != nil {
		return core.Persona{}, err
	}
	return p, nil
}

func (r *Resolver) List(ctx context.Context, userID string) ([]core.Persona, error) {
	return r.repo.ByUser(ctx, userID)
}
