package pmuevents

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		want Class
	}{
		{"inst_retired.any", Fixed},
		{"INST_RETIRED.ANY", Fixed},
		{"cpu_clk_unhalted.thread", Fixed},
		{"CPU_CLK_UNHALTED.THREAD_ANY", Fixed},
		{"cpu_clk_unhalted.ref_tsc", Fixed},
		{"UNC_CBO_CACHE_LOOKUP", Uncore},
		{"unc_m_cas_count.rd", Uncore},
		{"LLC_UNCORE_HITS", Uncore},
		{"INST_RETIRED.ANY_P", Programmable},
		{"inst-retired.any_p", Programmable},
		{"XUNC_FOO", Programmable},
		{"UNC", Programmable},
		{"", Programmable},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.name), tt.name)
	}
}

func TestClassifyFixedWins(t *testing.T) {
	saved := FixedCounters
	defer func() { FixedCounters = saved }()
	FixedCounters = append(saved[:len(saved):len(saved)], "unc_uncore_clockticks")

	assert.Equal(t, Fixed, Classify("UNC_UNCORE_CLOCKTICKS"))
	assert.Equal(t, Uncore, Classify("UNC_UNCORE_CLOCKTICKS.OTHER"))
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "fixed", Fixed.String())
	assert.Equal(t, "programmable", Programmable.String())
	assert.Equal(t, "uncore", Uncore.String())
	assert.Equal(t, "unknown", Class(42).String())
}
