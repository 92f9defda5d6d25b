package session

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/target/mmk-rag-console/internal/mocks"
	mockauth "github.com/target/mmk-rag-console/internal/mocks/auth"
	"github.com/target/mmk-rag-console/internal/ports"
	"go.uber.org/mock/gomock"
)

func TestStore_SetThenGet(t *testing.T) {
	ctx := context.Background()

	for _, tok := range []string{"abc", "", "eyJhbGciOi.J9.x", "ünïcødé token"} {
		store := NewStore(StoreOptions{Slot: mockauth.NewMemoryTokenSlot()})
		store.Set(ctx, tok)

		got, ok := store.Get(ctx)
		require.True(t, ok, "token %q", tok)
		assert.Equal(t, tok, got)
	}
}

func TestStore_LastWriterWins(t *testing.T) {
	ctx := context.Background()
	slot := mockauth.NewMemoryTokenSlot()
	store := NewStore(StoreOptions{Slot: slot})

	store.Set(ctx, "first")
	store.Set(ctx, "second")

	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "second", got)

	persisted, _ := slot.Peek()
	assert.Equal(t, "second", persisted)
}

func TestStore_ClearFromAnyState(t *testing.T) {
	ctx := context.Background()

	empty := NewStore(StoreOptions{Slot: mockauth.NewMemoryTokenSlot()})
	empty.Clear(ctx)
	empty.Clear(ctx)
	_, ok := empty.Get(ctx)
	assert.False(t, ok)

	slot := mockauth.NewMemoryTokenSlot()
	full := NewStore(StoreOptions{Slot: slot})
	full.Set(ctx, "tok")
	full.Clear(ctx)
	_, ok = full.Get(ctx)
	assert.False(t, ok)
	_, persisted := slot.Peek()
	assert.False(t, persisted)
	assert.False(t, full.Authenticated(ctx))
}

func TestStore_ReloadRepopulatesFastSlot(t *testing.T) {
	ctx := context.Background()
	slot := mockauth.NewMemoryTokenSlot()

	NewStore(StoreOptions{Slot: slot}).Set(ctx, "survivor")

	// A fresh Store over the same slot is a reload: fast slot empty, durable slot intact.
	reloaded := NewStore(StoreOptions{Slot: slot})
	loadsBefore := slot.Loads

	got, ok := reloaded.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "survivor", got)
	assert.Equal(t, loadsBefore+1, slot.Loads)

	// Subsequent reads are served from memory.
	for range 5 {
		got, ok = reloaded.Get(ctx)
		require.True(t, ok)
		assert.Equal(t, "survivor", got)
	}
	assert.Equal(t, loadsBefore+1, slot.Loads)
}

func TestStore_DurableFailureKeepsMemoryValue(t *testing.T) {
	ctx := context.Background()
	store := NewStore(StoreOptions{Slot: mockauth.FailingTokenSlot{}})

	_, ok := store.Get(ctx)
	assert.False(t, ok)

	store.Set(ctx, "tok")
	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", got)

	store.Clear(ctx)
	_, ok = store.Get(ctx)
	assert.False(t, ok)
}

func TestStore_ReadOrderWithGomock(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := mocks.NewMockTokenSlot(ctrl)
	ctx := context.Background()

	gomock.InOrder(
		slot.EXPECT().Load(gomock.Any()).Return("", ports.ErrTokenNotFound),
		slot.EXPECT().Load(gomock.Any()).Return("from-durable", nil),
	)

	store := NewStore(StoreOptions{Slot: slot})

	_, ok := store.Get(ctx)
	assert.False(t, ok)

	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "from-durable", got)

	// Cached now: no further Load expected.
	got, ok = store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "from-durable", got)
}

func TestStore_SetWritesBothSlots(t *testing.T) {
	ctrl := gomock.NewController(t)
	slot := mocks.NewMockTokenSlot(ctrl)
	ctx := context.Background()

	slot.EXPECT().Save(gomock.Any(), "t1").Return(nil)
	slot.EXPECT().Delete(gomock.Any()).Return(nil)

	store := NewStore(StoreOptions{Slot: slot})
	store.Set(ctx, "t1")

	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "t1", got)

	store.Clear(ctx)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	slot := mockauth.NewMemoryTokenSlot()
	require.NoError(t, slot.Save(ctx, "seed"))
	store := NewStore(StoreOptions{Slot: slot})

	var wg sync.WaitGroup
	for i := range 32 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if i%8 == 0 {
				store.Set(ctx, "seed")
				return
			}
			got, ok := store.Get(ctx)
			assert.True(t, ok)
			assert.Equal(t, "seed", got)
		}(i)
	}
	wg.Wait()
}

func TestStore_NilSlotIsProcessLocal(t *testing.T) {
	ctx := context.Background()
	store := NewStore(StoreOptions{})

	_, ok := store.Get(ctx)
	assert.False(t, ok)

	store.Set(ctx, "tok")
	got, ok := store.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, "tok", got)

	reloaded := NewStore(StoreOptions{Slot: ProcessSlot{}})
	assert.False(t, reloaded.Authenticated(ctx))
}
