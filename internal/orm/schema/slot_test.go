package schema

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestType(policy NamingPolicy) *EntityType {
	return NewEntityType("Project", NewHierarchy("Project", policy), nil)
}

func TestKeyResolutionSlot_InitialState(t *testing.T) {
	project := newTestType(PolicyNone)

	assert.Equal(t, ResolutionConvention, project.Slot().Kind())

	key, err := project.PrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "id", key)
}

func TestKeyResolutionSlot_ConstantOverridesEveryPolicy(t *testing.T) {
	for _, policy := range []NamingPolicy{PolicyNone, PolicyTableName, PolicyTableNameWithUnderscore} {
		t.Run(policy.String(), func(t *testing.T) {
			project := newTestType(policy)
			project.SetPrimaryKeyOverride(KeyName("sysid"), nil)

			key, err := project.PrimaryKeyName()
			require.NoError(t, err)
			assert.Equal(t, "sysid", key)
			assert.Equal(t, ResolutionConstant, project.Slot().Kind())
		})
	}
}

func TestKeyResolutionSlot_ValueWinsOverFunction(t *testing.T) {
	project := newTestType(PolicyNone)

	called := false
	project.SetPrimaryKeyOverride(KeyName("sysid"), func() (string, error) {
		called = true
		return "computed", nil
	})

	key, err := project.PrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "sysid", key)
	assert.False(t, called)
}

func TestKeyResolutionSlot_ComputedIsNotCached(t *testing.T) {
	project := newTestType(PolicyNone)

	var calls int32
	project.SetPrimaryKeyOverride(nil, func() (string, error) {
		if atomic.AddInt32(&calls, 1)%2 == 1 {
			return "odd_pk", nil
		}
		return "even_pk", nil
	})

	first, err := project.PrimaryKeyName()
	require.NoError(t, err)
	second, err := project.PrimaryKeyName()
	require.NoError(t, err)

	assert.Equal(t, "odd_pk", first)
	assert.Equal(t, "even_pk", second)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestKeyResolutionSlot_ComputeError(t *testing.T) {
	project := newTestType(PolicyTableNameWithUnderscore)
	cause := errors.New("sequence unavailable")
	project.SetPrimaryKeyOverride(nil, func() (string, error) { return "ignored", cause })

	key, err := project.PrimaryKeyName()
	require.Error(t, err)
	assert.Empty(t, key)
	assert.True(t, IsComputeFunctionError(err))
	assert.ErrorIs(t, err, cause)

	var fnErr *ComputeFunctionError
	require.ErrorAs(t, err, &fnErr)
	assert.Equal(t, "Project", fnErr.Type)
}

func TestKeyResolutionSlot_NilNilRestoresConvention(t *testing.T) {
	project := newTestType(PolicyTableName)
	project.SetPrimaryKeyOverride(KeyName("sysid"), nil)
	project.SetPrimaryKeyOverride(nil, nil)

	assert.Equal(t, ResolutionConvention, project.Slot().Kind())
	key, err := project.PrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "projectid", key)
}

func TestKeyResolutionSlot_EmptyConstantIsKept(t *testing.T) {
	project := newTestType(PolicyNone)
	project.SetPrimaryKeyOverride(KeyName(""), nil)

	key, err := project.PrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "", key)
	assert.Equal(t, ResolutionConstant, project.Slot().Kind())
}

// Reset discards an explicit override rather than honoring it.
func TestKeyResolutionSlot_ResetDiscardsOverride(t *testing.T) {
	project := newTestType(PolicyTableNameWithUnderscore)
	project.SetPrimaryKeyOverride(KeyName("sysid"), nil)

	key, err := project.ResetPrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "project_id", key)

	for i := 0; i < 3; i++ {
		key, err = project.PrimaryKeyName()
		require.NoError(t, err)
		assert.Equal(t, "project_id", key)
	}
	assert.Equal(t, ResolutionConvention, project.Slot().Kind())
}

func TestKeyResolutionSlot_ReadIsIdempotent(t *testing.T) {
	for _, policy := range []NamingPolicy{PolicyNone, PolicyTableName, PolicyTableNameWithUnderscore} {
		project := newTestType(policy)
		first, err := project.PrimaryKeyName()
		require.NoError(t, err)
		second, err := project.PrimaryKeyName()
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}

func TestKeyResolutionSlot_FollowsPolicyChanges(t *testing.T) {
	project := newTestType(PolicyNone)

	key, err := project.PrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "id", key)

	project.Hierarchy().SetPolicy(PolicyTableNameWithUnderscore)

	key, err = project.PrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "project_id", key)
}

func TestKeyResolutionSlot_ProjectScenario(t *testing.T) {
	project := newTestType(PolicyTableNameWithUnderscore)

	key, err := project.PrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "project_id", key)

	project.SetPrimaryKeyOverride(nil, func() (string, error) { return "custom_pk", nil })
	key, err = project.PrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "custom_pk", key)

	key, err = project.ResetPrimaryKeyName()
	require.NoError(t, err)
	assert.Equal(t, "project_id", key)
}

func TestKeyResolutionSlot_ConcurrentReadersAndWriters(t *testing.T) {
	project := newTestType(PolicyTableNameWithUnderscore)
	legal := map[string]bool{"project_id": true, "sysid": true, "custom_pk": true}

	errs := make(chan error, 1)
	unexpected := make(chan string, 1)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				switch (w + i) % 3 {
				case 0:
					project.SetPrimaryKeyOverride(KeyName("sysid"), nil)
				case 1:
					project.SetPrimaryKeyOverride(nil, func() (string, error) { return "custom_pk", nil })
				default:
					if _, err := project.ResetPrimaryKeyName(); err != nil {
						select {
						case errs <- err:
						default:
						}
						return
					}
				}
			}
		}(w)
	}

	for r := 0; r < 8; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				key, err := project.PrimaryKeyName()
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					return
				}
				if !legal[key] {
					select {
					case unexpected <- key:
					default:
					}
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	close(unexpected)

	assert.NoError(t, <-errs)
	assert.Empty(t, <-unexpected)
}

func TestResolutionKind_String(t *testing.T) {
	assert.Equal(t, "convention", ResolutionConvention.String())
	assert.Equal(t, "constant", ResolutionConstant.String())
	assert.Equal(t, "computed", ResolutionComputed.String())
	assert.Equal(t, "unknown", ResolutionKind(9).String())
}
