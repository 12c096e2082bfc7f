// Package chtype parses ClickHouse Native type descriptors ("Array(Nullable(String))",
// "Decimal(18, 4)", "DateTime64(3, 'UTC')", ...) into a typed Descriptor that
// the column package uses to instantiate the right codec.
package chtype

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/0xMihalich/chnative/errs"
)

// Kind identifies which family of Native type a Descriptor describes.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindUInt8
	KindUInt16
	KindUInt32
	KindUInt64
	KindUInt128
	KindUInt256
	KindInt8
	KindInt16
	KindInt32
	KindInt64
	KindInt128
	KindInt256
	KindFloat32
	KindFloat64
	KindBFloat16
	KindDecimal
	KindString
	KindFixedString
	KindBool
	KindDate
	KindDate32
	KindDateTime
	KindDateTime64
	KindEnum8
	KindEnum16
	KindUUID
	KindIPv4
	KindIPv6
	KindNothing
	KindInterval
	KindNullable
	KindArray
	KindLowCardinality
)

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}

	return "Invalid"
}

var kindNames = map[Kind]string{
	KindUInt8: "UInt8", KindUInt16: "UInt16", KindUInt32: "UInt32", KindUInt64: "UInt64",
	KindUInt128: "UInt128", KindUInt256: "UInt256",
	KindInt8: "Int8", KindInt16: "Int16", KindInt32: "Int32", KindInt64: "Int64",
	KindInt128: "Int128", KindInt256: "Int256",
	KindFloat32: "Float32", KindFloat64: "Float64", KindBFloat16: "BFloat16",
	KindDecimal: "Decimal", KindString: "String", KindFixedString: "FixedString",
	KindBool: "Bool", KindDate: "Date", KindDate32: "Date32",
	KindDateTime: "DateTime", KindDateTime64: "DateTime64",
	KindEnum8: "Enum8", KindEnum16: "Enum16",
	KindUUID: "UUID", KindIPv4: "IPv4", KindIPv6: "IPv6",
	KindNothing: "Nothing", KindInterval: "Interval",
	KindNullable: "Nullable", KindArray: "Array", KindLowCardinality: "LowCardinality",
}

// integerWidths maps each fixed-width integer Kind to its on-wire byte width.
var integerWidths = map[Kind]int{
	KindUInt8: 1, KindUInt16: 2, KindUInt32: 4, KindUInt64: 8, KindUInt128: 16, KindUInt256: 32,
	KindInt8: 1, KindInt16: 2, KindInt32: 4, KindInt64: 8, KindInt128: 16, KindInt256: 32,
}

// IntervalUnit identifies the unit an Interval* descriptor carries (display only).
type IntervalUnit uint8

const (
	IntervalNanosecond IntervalUnit = iota
	IntervalMicrosecond
	IntervalMillisecond
	IntervalSecond
	IntervalMinute
	IntervalHour
	IntervalDay
	IntervalWeek
	IntervalMonth
	IntervalQuarter
	IntervalYear
)

var intervalNames = map[string]IntervalUnit{
	"Nanosecond": IntervalNanosecond, "Microsecond": IntervalMicrosecond,
	"Millisecond": IntervalMillisecond, "Second": IntervalSecond,
	"Minute": IntervalMinute, "Hour": IntervalHour, "Day": IntervalDay,
	"Week": IntervalWeek, "Month": IntervalMonth, "Quarter": IntervalQuarter,
	"Year": IntervalYear,
}

func (u IntervalUnit) String() string {
	for name, v := range intervalNames {
		if v == u {
			return name
		}
	}

	return "Unknown"
}

// Descriptor is the parsed form of a Native type string.
//
// Only the fields relevant to Kind are populated; the zero value of the
// others is meaningless for that Kind.
type Descriptor struct {
	Kind Kind

	Width int // on-wire byte width for fixed-width scalars (incl. Decimal)

	FixedLen int // FixedString(N)

	Precision int // Decimal(P,S)
	Scale     int // Decimal(P,S)

	TZ string // DateTime[(tz)], DateTime64(p[, tz])

	DateTimePrecision int // DateTime64(p)

	EnumByCode map[int32]string // code -> name
	EnumByName map[string]int32 // name -> code

	Interval IntervalUnit

	Inner *Descriptor // Array(T), Nullable(T), LowCardinality(T)
}

// IsWideInteger reports whether the Decimal width is wide enough to require
// big.Int-based math (P >= 19).
func (d Descriptor) IsWideInteger() bool {
	return d.Width == 16 || d.Width == 32
}

var headRe = regexp.MustCompile(`^([A-Za-z0-9_]+)(?:\((.*)\))?$`)

// Parse parses a Native type descriptor string.
func Parse(s string) (Descriptor, error) {
	s = strings.TrimSpace(s)
	m := headRe.FindStringSubmatch(s)
	if m == nil {
		return Descriptor{}, fmt.Errorf("%w: %q", errs.ErrInvalidTypeDescriptor, s)
	}

	name, args := m[1], m[2]

	switch name {
	case "Array":
		inner, err := Parse(args)
		if err != nil {
			return Descriptor{}, err
		}

		return Descriptor{Kind: KindArray, Inner: &inner}, nil

	case "Nullable":
		inner, err := Parse(args)
		if err != nil {
			return Descriptor{}, err
		}

		return Descriptor{Kind: KindNullable, Inner: &inner}, nil

	case "LowCardinality":
		inner, err := Parse(args)
		if err != nil {
			return Descriptor{}, err
		}

		return Descriptor{Kind: KindLowCardinality, Inner: &inner}, nil

	case "Nothing":
		return Descriptor{Kind: KindNothing, Width: 1}, nil

	case "Bool":
		return Descriptor{Kind: KindBool, Width: 1}, nil

	case "String":
		return Descriptor{Kind: KindString}, nil

	case "FixedString":
		n, err := strconv.Atoi(strings.TrimSpace(args))
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: FixedString(%s)", errs.ErrInvalidTypeDescriptor, args)
		}

		return Descriptor{Kind: KindFixedString, FixedLen: n, Width: n}, nil

	case "Float32":
		return Descriptor{Kind: KindFloat32, Width: 4}, nil
	case "Float64":
		return Descriptor{Kind: KindFloat64, Width: 8}, nil
	case "BFloat16":
		return Descriptor{Kind: KindBFloat16, Width: 2}, nil

	case "Date":
		return Descriptor{Kind: KindDate, Width: 2}, nil
	case "Date32":
		return Descriptor{Kind: KindDate32, Width: 4}, nil

	case "DateTime":
		return Descriptor{Kind: KindDateTime, Width: 4, TZ: strings.Trim(strings.TrimSpace(args), "'\"")}, nil

	case "DateTime64":
		return parseDateTime64(args)

	case "Decimal":
		return parseDecimal(args)

	case "Enum8", "Enum16":
		return parseEnum(name, s)

	case "UUID":
		return Descriptor{Kind: KindUUID, Width: 16}, nil

	case "IPv4":
		return Descriptor{Kind: KindIPv4, Width: 4}, nil
	case "IPv6":
		return Descriptor{Kind: KindIPv6, Width: 16}, nil

	default:
		if k := nameToKind(name); k != KindInvalid {
			return Descriptor{Kind: k, Width: integerWidths[k]}, nil
		}
		if strings.HasPrefix(name, "Interval") {
			unitName := strings.TrimPrefix(name, "Interval")
			unit, ok := intervalNames[unitName]
			if !ok {
				return Descriptor{}, fmt.Errorf("%w: %s", errs.ErrUnknownIntervalUnit, unitName)
			}

			return Descriptor{Kind: KindInterval, Width: 8, Interval: unit}, nil
		}

		return Descriptor{}, fmt.Errorf("%w: %s", errs.ErrUnknownType, name)
	}
}

func nameToKind(name string) Kind {
	switch name {
	case "UInt8":
		return KindUInt8
	case "UInt16":
		return KindUInt16
	case "UInt32":
		return KindUInt32
	case "UInt64":
		return KindUInt64
	case "UInt128":
		return KindUInt128
	case "UInt256":
		return KindUInt256
	case "Int8":
		return KindInt8
	case "Int16":
		return KindInt16
	case "Int32":
		return KindInt32
	case "Int64":
		return KindInt64
	case "Int128":
		return KindInt128
	case "Int256":
		return KindInt256
	default:
		return KindInvalid
	}
}

var dt64Re = regexp.MustCompile(`^\s*(\d+)\s*(?:,\s*'([^']*)'\s*)?$`)

func parseDateTime64(args string) (Descriptor, error) {
	m := dt64Re.FindStringSubmatch(args)
	if m == nil {
		return Descriptor{}, fmt.Errorf("%w: DateTime64(%s)", errs.ErrInvalidTypeDescriptor, args)
	}

	p, err := strconv.Atoi(m[1])
	if err != nil {
		return Descriptor{}, fmt.Errorf("%w: DateTime64(%s)", errs.ErrInvalidTypeDescriptor, args)
	}

	if p < 1 || p > 8 {
		return Descriptor{}, fmt.Errorf("%w: DateTime64 precision %d must be in [1,8]", errs.ErrPrecisionOutOfRange, p)
	}

	return Descriptor{Kind: KindDateTime64, Width: 8, DateTimePrecision: p, TZ: m[2]}, nil
}

var decimalRe = regexp.MustCompile(`^\s*(\d+)\s*,\s*(-?\d+)\s*$`)

func parseDecimal(args string) (Descriptor, error) {
	m := decimalRe.FindStringSubmatch(args)
	if m == nil {
		return Descriptor{}, fmt.Errorf("%w: Decimal(%s)", errs.ErrInvalidTypeDescriptor, args)
	}

	p, _ := strconv.Atoi(m[1])
	s, _ := strconv.Atoi(m[2])

	var width int
	switch {
	case p >= 1 && p <= 9:
		width = 4
	case p >= 10 && p <= 18:
		width = 8
	case p >= 19 && p <= 38:
		width = 16
	case p >= 39 && p <= 76:
		width = 32
	default:
		return Descriptor{}, fmt.Errorf("%w: Decimal precision %d must be in [1,76]", errs.ErrPrecisionOutOfRange, p)
	}

	return Descriptor{Kind: KindDecimal, Width: width, Precision: p, Scale: s}, nil
}

var enumPairRe = regexp.MustCompile(`'((?:[^'\\]|\\.)*)'\s*=\s*(-?[0-9]+)\s*,`)

func parseEnum(name, full string) (Descriptor, error) {
	open := strings.IndexByte(full, '(')
	if open < 0 || !strings.HasSuffix(full, ")") {
		return Descriptor{}, fmt.Errorf("%w: %s", errs.ErrInvalidEnumDescriptor, full)
	}

	body := full[open+1 : len(full)-1]
	matches := enumPairRe.FindAllStringSubmatch(body+",", -1)
	if len(matches) == 0 {
		return Descriptor{}, fmt.Errorf("%w: %s", errs.ErrInvalidEnumDescriptor, full)
	}

	byCode := make(map[int32]string, len(matches))
	byName := make(map[string]int32, len(matches))

	for _, mm := range matches {
		code, err := strconv.Atoi(mm[2])
		if err != nil {
			return Descriptor{}, fmt.Errorf("%w: %s", errs.ErrInvalidEnumDescriptor, full)
		}

		n := strings.ReplaceAll(mm[1], `\'`, "'")
		byCode[int32(code)] = n
		byName[n] = int32(code)
	}

	if name == "Enum8" {
		return Descriptor{Kind: KindEnum8, Width: 1, EnumByCode: byCode, EnumByName: byName}, nil
	}

	return Descriptor{Kind: KindEnum16, Width: 2, EnumByCode: byCode, EnumByName: byName}, nil
}

// String renders the Descriptor back to its canonical Native type text.
func (d Descriptor) String() string {
	switch d.Kind {
	case KindArray:
		return "Array(" + d.Inner.String() + ")"
	case KindNullable:
		return "Nullable(" + d.Inner.String() + ")"
	case KindLowCardinality:
		return "LowCardinality(" + d.Inner.String() + ")"
	case KindFixedString:
		return fmt.Sprintf("FixedString(%d)", d.FixedLen)
	case KindDecimal:
		return fmt.Sprintf("Decimal(%d, %d)", d.Precision, d.Scale)
	case KindDateTime:
		if d.TZ != "" {
			return fmt.Sprintf("DateTime('%s')", d.TZ)
		}

		return "DateTime"
	case KindDateTime64:
		if d.TZ != "" {
			return fmt.Sprintf("DateTime64(%d, '%s')", d.DateTimePrecision, d.TZ)
		}

		return fmt.Sprintf("DateTime64(%d)", d.DateTimePrecision)
	case KindEnum8, KindEnum16:
		return fmt.Sprintf("%s(%s)", d.Kind, d.enumBody())
	case KindInterval:
		return "Interval" + d.Interval.String()
	default:
		return d.Kind.String()
	}
}

func (d Descriptor) enumBody() string {
	codes := make([]int32, 0, len(d.EnumByCode))
	for c := range d.EnumByCode {
		codes = append(codes, c)
	}
	// simple insertion sort: enum descriptors are never large
	for i := 1; i < len(codes); i++ {
		for j := i; j > 0 && codes[j-1] > codes[j]; j-- {
			codes[j-1], codes[j] = codes[j], codes[j-1]
		}
	}

	parts := make([]string, 0, len(codes))
	for _, c := range codes {
		parts = append(parts, fmt.Sprintf("'%s' = %d", d.EnumByCode[c], c))
	}

	return strings.Join(parts, ", ")
}
