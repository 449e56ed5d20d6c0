package persona

import (
	"context"
	"errors"
	"testing"

	"github.com/sandevgo/companion/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePersonas struct {
	stored []core.Persona
}

func (f *fakePersonas) Create(ctx context.Context, p core.Persona) error {
	count := 0
	for _, existing := range f.stored {
		if existing.UserID == p.UserID {
			count++
		}
	}
	if count >= core.MaxPersonas {
		return core.ErrPersonaLimit
	}
	f.stored = append(f.stored, p)
	return nil
}

func (f *fakePersonas) ByUser(ctx context.Context, userID string) ([]core.Persona, error) {
	var out []core.Persona
	for _, p := range f.stored {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePersonas) FindByName(ctx context.Context, userID, name string) (core.Persona, error) {
	for _, p := range f.stored {
		if p.UserID == userID && p.Name == name {
			return p, nil
		}
	}
	return core.Persona{}, core.ErrPersonaNotFound
}

func TestResolveDefaults(t *testing.T) {
	r := NewResolver(&fakePersonas{})
	ctx := context.Background()

	assert.Equal(t, DefaultDescription, r.Resolve(ctx, "u1", ""))
	assert.Equal(t, DefaultDescription, r.Resolve(ctx, "u1", "   "))
	assert.Equal(t, DefaultDescription, r.Resolve(ctx, "u1", "no-such-descriptor"))
}

func TestResolvePresetVerbatim(t *testing.T) {
	repo := &fakePersonas{stored: []core.Persona{
		// A stored custom descriptor with a preset's name must not shadow the
		// canned string.
		{ID: "p1", UserID: "u1", Name: "Sweet", Description: "something user-edited"},
	}}
	r := NewResolver(repo)

	got := r.Resolve(context.Background(), "u1", "Sweet")
	want, ok := PresetDescription("Sweet")
	require.True(t, ok)
	assert.Equal(t, want, got)
	assert.Contains(t, got, "gentle, caring companion")
}

func TestResolvePresetCaseInsensitive(t *testing.T) {
	r := NewResolver(&fakePersonas{})
	want, _ := PresetDescription("Romantic")
	assert.Equal(t, want, r.Resolve(context.Background(), "u1", "romantic"))
}

func TestResolveCustomDescriptor(t *testing.T) {
	repo := &fakePersonas{stored: []core.Persona{
		{ID: "p1", UserID: "u1", Name: "my vibe", Description: "sarcastic but kind"},
	}}
	r := NewResolver(repo)

	assert.Equal(t, "sarcastic but kind", r.Resolve(context.Background(), "u1", "my vibe"))
	// Another user's descriptor is invisible.
	assert.Equal(t, DefaultDescription, r.Resolve(context.Background(), "u2", "my vibe"))
}

func TestPresetMaterializesOnce(t *testing.T) {
	repo := &fakePersonas{}
	r := NewResolver(repo)
	ctx := context.Background()

	r.Resolve(ctx, "u1", "Chill")
	r.Resolve(ctx, "u1", "Chill")

	stored, err := repo.ByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Chill", stored[0].Name)
	want, _ := PresetDescription("Chill")
	assert.Equal(t, want, stored[0].Description)
}

func TestPresetTransientAtLimit(t *testing.T) {
	repo := &fakePersonas{}
	r := NewResolver(repo)
	ctx := context.Background()

	for i := 0; i < core.MaxPersonas; i++ {
		_, err := r.CreateCustom(ctx, "u1", string(rune('a'+i)), "desc")
		require.NoError(t, err)
	}

	// All slots taken: the preset still resolves to its canned string but is
	// not saved.
	want, _ := PresetDescription("Playful")
	assert.Equal(t, want, r.Resolve(ctx, "u1", "Playful"))

	stored, _ := repo.ByUser(ctx, "u1")
	assert.Len(t, stored, core.MaxPersonas)
}

func TestCreateCustomLimit(t *testing.T) {
	repo := &fakePersonas{}
	r := NewResolver(repo)
	ctx := context.Background()

	for i := 0; i < core.MaxPersonas; i++ {
		_, err := r.CreateCustom(ctx, "u1", string(rune('a'+i)), "desc")
		require.NoError(t, err)
	}

	_, err := r.CreateCustom(ctx, "u1", "one too many", "desc")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrPersonaLimit))

	stored, _ := repo.ByUser(ctx, "u1")
	assert.Len(t, stored, core.MaxPersonas)
}

func TestCreateCustomRequiresUser(t *testing.T) {
	r := NewResolver(&fakePersonas{})
	_, err := r.CreateCustom(context.Background(), "", "name", "desc")
	assert.True(t, errors.Is(err, core.ErrUserRequired))
}
