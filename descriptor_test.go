package pmuevents

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseDescriptor(t *testing.T) {
	d := ParseDescriptor("event=0x2e,umask=0x41,cmask=1")
	assert.Equal(t, Descriptor{Event: 0x2e, Umask: 0x41, Cmask: 1}, d)

	d = ParseDescriptor("event=0xb7,any=1,ch_mask=0x3,cmask=2,edge=1,fc_mask=0x7,inv=1,period=100003,umask=0x1," +
		"offcore_rsp=0x3FBC000491,frontend=0x11,ldlat=0x4,config1=0x20")
	assert.Equal(t, Descriptor{
		Period:     100003,
		OffcoreRsp: 0x3FBC000491,
		Event:      0xb7,
		Frontend:   0x11,
		LdLat:      0x4,
		Config1:    0x20,
		Umask:      0x1,
		Cmask:      2,
		Any:        1,
		Inv:        1,
		Edge:       1,
		FCMask:     0x7,
		CHMask:     0x3,
	}, d)
}

func TestParseDescriptorBases(t *testing.T) {
	// Hex keys accept a bare hex string; decimal keys stop at the first
	// non-decimal digit.
	d := ParseDescriptor("event=2e,umask=41,period=0x10,cmask=12")
	assert.Equal(t, uint32(0x2e), d.Event)
	assert.Equal(t, uint8(0x41), d.Umask)
	assert.Zero(t, d.Period)
	assert.Equal(t, uint8(12), d.Cmask)
}

func TestParseDescriptorLenient(t *testing.T) {
	tests := []struct {
		desc string
		want Descriptor
	}{
		{"event=0x41zz", Descriptor{Event: 0x41}},
		{"period=12abc", Descriptor{Period: 12}},
		{"event=xyz", Descriptor{}},
		{"cmask= 7", Descriptor{Cmask: 7}},
		{"umask=0x1ff", Descriptor{Umask: 0xff}},
		{"any=300", Descriptor{Any: 44}},
		{"period=-1", Descriptor{Period: math.MaxUint64}},
		{"event=0x", Descriptor{}},
		{"event", Descriptor{}},
		{"event=0x2e,umask", Descriptor{Event: 0x2e}},
		{"event=0x2e,event=0x3c", Descriptor{Event: 0x3c}},
		{"", Descriptor{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseDescriptor(tt.desc), tt.desc)
	}
}

func TestParseDescriptorUnknownKeys(t *testing.T) {
	d := ParseDescriptor("event=0x3c,pc=1,name=foo,umask=0x2")
	assert.Equal(t, Descriptor{Event: 0x3c, Umask: 0x2}, d)
}

func TestParseDescriptorEmptyKey(t *testing.T) {
	for _, s := range []string{",event=1", "event=1,", "=5", "event=1,,umask=2", ","} {
		func() {
			defer func() {
				r := recover()
				require.NotNil(t, r, s)
				err, ok := r.(*MalformedDescriptorError)
				require.True(t, ok, "%s: panic value %T", s, r)
				assert.Equal(t, s, err.Descriptor)
			}()
			ParseDescriptor(s)
		}()
	}

	assert.PanicsWithError(t, `malformed descriptor "=5": empty key in "=5"`, func() {
		ParseDescriptor("=5")
	})
}

func TestParseDescriptorDeterministic(t *testing.T) {
	const s = "event=0xd1,period=100003,umask=0x20,ldlat=0x80"
	want := ParseDescriptor(s)
	for i := 0; i < 10; i++ {
		assert.Equal(t, want, ParseDescriptor(s))
	}
}

func TestParserDebugLogging(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	p := Parser{Debug: true, Logger: zap.New(core)}

	d := p.Parse("event=0x3c,pc=1,umask=0x2,flag")
	assert.Equal(t, Descriptor{Event: 0x3c, Umask: 0x2}, d)

	entries := logs.FilterMessage("unrecognized kvpair").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "pc", fields["key"])
	assert.Equal(t, "1", fields["value"])
	assert.Equal(t, "event=0x3c,pc=1,umask=0x2,flag", fields["descriptor"])
}

func TestParserDebugOff(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	p := Parser{Logger: zap.New(core)}

	debugOn := Parser{Debug: true, Logger: zap.NewNop()}
	assert.Equal(t, debugOn.Parse("event=0x3c,pc=1"), p.Parse("event=0x3c,pc=1"))
	assert.Zero(t, logs.Len())
}

func TestParseInt(t *testing.T) {
	tests := []struct {
		s    string
		base int
		want int64
	}{
		{"0x2e", 16, 0x2e},
		{"0X2E", 16, 0x2e},
		{"2e", 16, 0x2e},
		{"0x", 16, 0},
		{"0xg", 16, 0},
		{"0x10", 10, 0},
		{"100003", 10, 100003},
		{"  42", 10, 42},
		{"+7", 10, 7},
		{"-3", 10, -3},
		{"12ab", 10, 12},
		{"", 10, 0},
		{"99999999999999999999", 10, math.MaxInt64},
		{"-99999999999999999999", 10, math.MinInt64},
		{"ffffffffffffffffff", 16, math.MaxInt64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseInt(tt.s, tt.base), "%q base %d", tt.s, tt.base)
	}
}
