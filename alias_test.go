package pmuevents

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveAlias(t *testing.T) {
	for _, a := range Aliases() {
		assert.Equal(t, a.Canonical, ResolveAlias(a.Alias))
		assert.Equal(t, a.Canonical, ResolveAlias(strings.ToLower(a.Alias)))
		assert.Equal(t, a.Canonical, ResolveAlias(strings.ToUpper(a.Alias)))
	}

	assert.Equal(t, "inst-retired.any_p", ResolveAlias("INSTRUCTIONS"))
	assert.Equal(t, "LONGEST_LAT_CACHE.MISS", ResolveAlias("llc_misses"))
}

func TestResolveAliasPassthrough(t *testing.T) {
	for _, name := range []string{"", "LONGEST_LAT_CACHE.MISS", "event=0x2e,umask=0x41", "llc misses", "instructions2"} {
		assert.Equal(t, name, ResolveAlias(name))
	}
}
