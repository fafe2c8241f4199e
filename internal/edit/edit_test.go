// internal/edit/edit_test.go
package edit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PakBeast/PakBeast/internal/address"
	"github.com/PakBeast/PakBeast/internal/script"
)

func TestApply_SetAndDelete(t *testing.T) {
	t.Parallel()

	src := "Param(damage, 10);\nspeed = 4\n"
	sf, err := script.Parse("weapons.scr", []byte(src))
	require.NoError(t, err)

	require.NoError(t, Apply(sf, Set(addr(t, "weapons.scr:damage"), script.NewNumber(25))))
	require.NoError(t, Apply(sf, Delete(addr(t, "weapons.scr:speed"))))

	assert.Equal(t, "Param(damage, 25);\n\n", string(sf.Render()))
}

func TestApply_ReplayComposesLastWriteWins(t *testing.T) {
	t.Parallel()

	sf, err := script.Parse("weapons.scr", []byte("Param(damage, 10);\n"))
	require.NoError(t, err)

	log := []Edit{
		Set(addr(t, "weapons.scr:damage"), script.NewNumber(20)),
		Set(addr(t, "weapons.scr:damage"), script.NewNumber(30)),
	}
	for _, e := range log {
		require.NoError(t, Apply(sf, e))
	}

	assert.Equal(t, "Param(damage, 30);\n", string(sf.Render()))
}

func TestApply_EditAfterDelete(t *testing.T) {
	t.Parallel()

	sf, err := script.Parse("weapons.scr", []byte("speed = 4\n"))
	require.NoError(t, err)

	require.NoError(t, Apply(sf, Delete(addr(t, "weapons.scr:speed"))))
	err = Apply(sf, Set(addr(t, "weapons.scr:speed"), script.NewNumber(9)))
	require.ErrorIs(t, err, script.ErrAddressNotFound)
}

func TestByFile_GroupsEnabledInRecordedOrder(t *testing.T) {
	t.Parallel()

	disabled := Delete(addr(t, "config.ini:Tuning.speed"))
	disabled.Enabled = false

	log := []Edit{
		Set(addr(t, "weapons.scr:damage"), script.NewNumber(1)),
		Set(addr(t, "config.ini:Tuning.gravity"), script.NewNumber(2)),
		disabled,
		Set(addr(t, "weapons.scr:damage"), script.NewNumber(3)),
	}

	grouped, files := ByFile(log)
	assert.Equal(t, []string{"weapons.scr", "config.ini"}, files)
	require.Len(t, grouped["weapons.scr"], 2)
	assert.Equal(t, script.NewNumber(1), grouped["weapons.scr"][0].Values[0])
	assert.Equal(t, script.NewNumber(3), grouped["weapons.scr"][1].Values[0])
	require.Len(t, grouped["config.ini"], 1, "disabled edits are not grouped")
}

func addr(t *testing.T, s string) address.Address {
	t.Helper()
	a, err := address.Parse(s)
	require.NoError(t, err)
	return a
}
