package tenant_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/tailoring/pkg/tenant"
)

func TestRegistry_Register(t *testing.T) {
	t.Parallel()

	t.Run("ignores blank identifiers", func(t *testing.T) {
		t.Parallel()

		reg := tenant.NewRegistry()
		assert.False(t, reg.Register(""))
		assert.False(t, reg.Register("   "))
		assert.False(t, reg.Register("\t\n"))
		assert.Empty(t, reg.Tenants())
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		reg := tenant.NewRegistry()
		assert.True(t, reg.Register("plattform"))
		assert.False(t, reg.Register("plattform"))
		assert.Equal(t, []string{"plattform"}, reg.Tenants())
		assert.Equal(t, 1, reg.Len())
	})

	t.Run("stores trimmed identifiers", func(t *testing.T) {
		t.Parallel()

		reg := tenant.NewRegistry()
		assert.True(t, reg.Register(" plattform\t"))
		assert.False(t, reg.Register("plattform"))
		assert.Equal(t, []string{"plattform"}, reg.Tenants())
		assert.True(t, reg.IsRegistered("plattform"))
		assert.True(t, reg.IsRegistered(" plattform "))
	})

	t.Run("constructor skips blank ids", func(t *testing.T) {
		t.Parallel()

		reg := tenant.NewRegistry("b", "", "a", "b")
		assert.Equal(t, []string{"a", "b"}, reg.Tenants())
		assert.True(t, reg.IsRegistered("a"))
		assert.False(t, reg.IsRegistered("c"))
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		t.Parallel()

		reg := tenant.NewRegistry("a")
		ids := reg.Tenants()
		ids[0] = "mutated"
		assert.Equal(t, []string{"a"}, reg.Tenants())
	})
}

func TestRegistry_Concurrent(t *testing.T) {
	t.Parallel()

	reg := tenant.NewRegistry()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			reg.Register(fmt.Sprintf("tenant-%d", i%10))
			_ = reg.Tenants()
		}(i)
	}
	wg.Wait()

	require.Equal(t, 10, reg.Len())
}
