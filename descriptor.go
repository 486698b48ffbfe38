package pmuevents

import (
	"math"
	"strings"

	"go.uber.org/zap"
)

// A Descriptor is the numeric form of an event's descriptor string. Field
// widths follow the hardware fields they feed; wider values are truncated.
type Descriptor struct {
	Period     uint64
	OffcoreRsp uint64
	Event      uint32
	Frontend   uint32
	LdLat      uint32
	Config1    uint32
	Umask      uint8
	Cmask      uint8
	Any        uint8
	Inv        uint8
	Edge       uint8
	FCMask     uint8
	CHMask     uint8
}

type descField struct {
	base int
	set  func(d *Descriptor, v int64)
}

// descFields fixes the numeric base of every known key. The base is never
// inferred from the value.
var descFields = map[string]descField{
	"umask":       {16, func(d *Descriptor, v int64) { d.Umask = uint8(v) }},
	"event":       {16, func(d *Descriptor, v int64) { d.Event = uint32(v) }},
	"offcore_rsp": {16, func(d *Descriptor, v int64) { d.OffcoreRsp = uint64(v) }},
	"frontend":    {16, func(d *Descriptor, v int64) { d.Frontend = uint32(v) }},
	"ldlat":       {16, func(d *Descriptor, v int64) { d.LdLat = uint32(v) }},
	"fc_mask":     {16, func(d *Descriptor, v int64) { d.FCMask = uint8(v) }},
	"ch_mask":     {16, func(d *Descriptor, v int64) { d.CHMask = uint8(v) }},
	"config1":     {16, func(d *Descriptor, v int64) { d.Config1 = uint32(v) }},
	"period":      {10, func(d *Descriptor, v int64) { d.Period = uint64(v) }},
	"any":         {10, func(d *Descriptor, v int64) { d.Any = uint8(v) }},
	"cmask":       {10, func(d *Descriptor, v int64) { d.Cmask = uint8(v) }},
	"inv":         {10, func(d *Descriptor, v int64) { d.Inv = uint8(v) }},
	"edge":        {10, func(d *Descriptor, v int64) { d.Edge = uint8(v) }},
}

// A Parser decodes descriptor strings.
type Parser struct {
	// Debug logs unrecognized keys. It never changes the parse result.
	Debug bool
	// Logger receives the debug output. The package Logger is used if nil.
	Logger *zap.Logger
}

func (p *Parser) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return Logger
}

// Parse decodes a comma-separated list of key=value pairs. Unknown keys and
// keys without a value leave the descriptor unchanged. An empty key panics
// with a *MalformedDescriptorError.
func (p *Parser) Parse(s string) Descriptor {
	var d Descriptor
	if s == "" {
		return d
	}
	for _, tok := range strings.Split(s, ",") {
		key, value, hasValue := strings.Cut(tok, "=")
		if key == "" {
			panic(&MalformedDescriptorError{Descriptor: s, Token: tok})
		}
		f, ok := descFields[key]
		if !ok {
			if p.Debug && hasValue {
				p.logger().Info("unrecognized kvpair",
					zap.String("key", key),
					zap.String("value", value),
					zap.String("descriptor", s))
			}
			continue
		}
		if !hasValue {
			continue
		}
		f.set(&d, parseInt(value, f.base))
	}
	return d
}

// ParseDescriptor decodes s with debugging off.
func ParseDescriptor(s string) Descriptor {
	var p Parser
	return p.Parse(s)
}

// parseInt reads an integer the way C's strtol does: leading space and a sign
// are accepted, base 16 takes an optional 0x prefix, and reading stops at the
// first invalid digit. Text without digits is 0 and overflow saturates.
func parseInt(s string, base int) int64 {
	s = strings.TrimLeft(s, " \t\n\v\f\r")
	neg := false
	if s != "" && (s[0] == '+' || s[0] == '-') {
		neg = s[0] == '-'
		s = s[1:]
	}
	if base == 16 && len(s) > 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') && digitVal(s[2]) < 16 {
		s = s[2:]
	}

	var v uint64
	overflow := false
	limit := uint64(math.MaxInt64)
	if neg {
		limit++
	}
	for i := 0; i < len(s); i++ {
		d := digitVal(s[i])
		if d >= base {
			break
		}
		if overflow {
			continue
		}
		if v > (limit-uint64(d))/uint64(base) {
			overflow = true
			v = limit
			continue
		}
		v = v*uint64(base) + uint64(d)
	}
	if neg {
		return int64(-v)
	}
	return int64(v)
}

func digitVal(c byte) int {
	switch {
	case '0' <= c && c <= '9':
		return int(c - '0')
	case 'a' <= c && c <= 'z':
		return int(c-'a') + 10
	case 'A' <= c && c <= 'Z':
		return int(c-'A') + 10
	}
	return 36
}
