package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zyedidia/pmuevents"
	"github.com/zyedidia/pmuevents/pkg/tables"
)

const testCPU = "TestIntel-6-55-4"

func testPMU(key string) *pmuevents.PMU {
	set := tables.NewSet(&tables.Table{CPUID: testCPU, Events: []tables.Event{
		{Name: "INST_RETIRED.ANY", Descriptor: "event=0xc0,period=2000003", Description: "Instructions retired from execution."},
		{Name: "LONGEST_LAT_CACHE.MISS", Descriptor: "event=0x2e,period=100003,umask=0x41", Description: "L3 misses"},
		{Description: "Instructions Per Cycle", MetricName: "IPC"},
		{Name: "UNC_CHA_CLOCKTICKS", Descriptor: "event=0x0", PMU: "uncore_cha"},
		{Name: "OFFCORE_RESPONSE.DEMAND_DATA_RD", Descriptor: "event=0xb7,umask=0x1,offcore_rsp=0x10001"},
	}})
	var modelKey func() (string, error)
	if key != "" {
		modelKey = func() (string, error) { return key, nil }
	}
	return pmuevents.New(pmuevents.Options{Tables: set, ModelKey: modelKey})
}

// withOpts runs f with CSV output and restores the flags afterwards.
func withOpts(t *testing.T, f func()) {
	t.Helper()
	saved := opts
	defer func() { opts = saved }()
	opts.Csv = true
	f()
}

func TestEncode(t *testing.T) {
	withOpts(t, func() {
		var buf bytes.Buffer
		err := encode(&buf, testPMU(testCPU), []string{
			"LLC_MISSES", "inst_retired.any", "UNC_CHA_CLOCKTICKS", "offcore_response.demand_data_rd", "missing",
		})
		assert.ErrorIs(t, err, pmuevents.ErrNotFound)
		assert.Contains(t, err.Error(), "missing")

		want := "Event,Class,Index,Caps,Config,Extra\n" +
			"LONGEST_LAT_CACHE.MISS,programmable,1,READ|WRITE|QUALIFIER,0x3412e,\n" +
			"INST_RETIRED.ANY,fixed,0,READ|WRITE,INSTR_RETIRED_ANY,flags=0x3\n" +
			"UNC_CHA_CLOCKTICKS,uncore,3,READ|WRITE,,\n" +
			"OFFCORE_RESPONSE.DEMAND_DATA_RD,programmable,4,READ|WRITE|QUALIFIER,0x301b7,rsp=0x10001\n"
		assert.Equal(t, want, buf.String())
	})
}

func TestEncodeInterrupt(t *testing.T) {
	withOpts(t, func() {
		opts.Intr = true
		var buf bytes.Buffer
		require.NoError(t, encode(&buf, testPMU(testCPU), []string{"llc_misses"}))
		assert.Equal(t, "Event,Class,Index,Caps,Config,Extra\n"+
			"LONGEST_LAT_CACHE.MISS,programmable,1,INT|READ|WRITE|QUALIFIER,0x13412e,\n", buf.String())
	})
}

func TestIndex(t *testing.T) {
	withOpts(t, func() {
		var buf bytes.Buffer
		err := index(&buf, testPMU(testCPU), []int{0, 2, 9, 4})
		assert.ErrorIs(t, err, pmuevents.ErrNotFound)
		assert.Equal(t, "Index,Event\n0,INST_RETIRED.ANY\n4,OFFCORE_RESPONSE.DEMAND_DATA_RD\n", buf.String())

		buf.Reset()
		require.NoError(t, index(&buf, testPMU(testCPU), []int{1}))
		assert.Equal(t, "Index,Event\n1,LONGEST_LAT_CACHE.MISS\n", buf.String())
	})
}

func TestPeriod(t *testing.T) {
	withOpts(t, func() {
		var buf bytes.Buffer
		require.NoError(t, period(&buf, testPMU(testCPU), []string{"LLC_MISSES", "nope"}))
		assert.Equal(t, "Event,Period\nLLC_MISSES,100003\nnope,65536\n", buf.String())
	})
}

func TestList(t *testing.T) {
	withOpts(t, func() {
		var buf bytes.Buffer
		require.NoError(t, list(&buf, testPMU(testCPU), "cache", false))
		assert.Equal(t, "Event\nLONGEST_LAT_CACHE.MISS\n", buf.String())

		opts.Desc = true
		buf.Reset()
		require.NoError(t, list(&buf, testPMU(testCPU), "", true))
		assert.Equal(t, "Event,Description\n"+
			"INST_RETIRED.ANY,Instructions retired from execution.\n"+
			"LONGEST_LAT_CACHE.MISS,L3 misses\n", buf.String())

		buf.Reset()
		require.NoError(t, list(&buf, testPMU(testCPU), "no such event", false))
		assert.Equal(t, "No events found\n", buf.String())
	})
}

func TestSupported(t *testing.T) {
	assert.NoError(t, supported(testPMU(testCPU)))

	err := supported(testPMU("OtherIntel-6-3F-2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no event table for CPU OtherIntel-6-3F-2")

	err = supported(testPMU(""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PMU unsupported on this host")
}
