// Package infer derives a Native type descriptor from a column of values,
// mirroring the reference implementation's pandas/polars-agnostic dtype
// rules (spec §4.8 "Type inference").
package infer

import (
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/0xMihalich/chnative/chtype"
	"github.com/0xMihalich/chnative/table"
)

// date1970 and date2149 bound the Date range (spec §4.8 "Date").
var (
	date1970 = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	date2149 = time.Date(2149, 6, 6, 0, 0, 0, 0, time.UTC)

	dateTime1970 = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	dateTime2106 = time.Date(2106, 2, 7, 6, 28, 15, 0, time.UTC)

	float32Min = 1.401298464324817e-45
	float32Max = 3.4028234663852886e+38
)

// tzones maps a fixed UTC offset (ClickHouse-style "+HHMM"/"-HHMM") to a
// representative IANA zone name, used to name the zone of a column inferred
// as DateTime64 (spec §4.8 "DateTime" — the reference implementation's
// TZONES table). inferDateTime looks up the offset of the column's maximum,
// which it always computes in UTC, so that lookup yields "UTC".
var tzones = map[string]string{
	"+0000": "UTC",
	"+0100": "Europe/Amsterdam",
	"+0200": "Europe/Kaliningrad",
	"+0300": "Europe/Moscow",
	"+0330": "Asia/Tehran",
	"+0400": "Europe/Samara",
	"+0430": "Asia/Kabul",
	"+0500": "Asia/Yekaterinburg",
	"+0530": "Asia/Colombo",
	"+0545": "Asia/Katmandu",
	"+0600": "Asia/Omsk",
	"+0630": "Asia/Yangon",
	"+0700": "Asia/Krasnoyarsk",
	"+0800": "Asia/Irkutsk",
	"+0845": "Australia/Eucla",
	"+0900": "Asia/Yakutsk",
	"+0930": "Australia/Darwin",
	"+1000": "Asia/Vladivostok",
	"+1030": "Australia/Yancowinna",
	"+1100": "Asia/Magadan",
	"+1200": "Asia/Kamchatka",
	"+1300": "Pacific/Enderbury",
	"+1345": "Pacific/Chatham",
	"+1400": "Pacific/Kiritimati",
	"-0100": "Atlantic/Azores",
	"-0200": "America/Noronha",
	"-0300": "America/Araguaina",
	"-0400": "America/Antigua",
	"-0430": "Canada/Newfoundland",
	"-0500": "America/Panama",
	"-0600": "America/Chicago",
	"-0700": "America/Boise",
	"-0800": "America/Tijuana",
	"-0900": "America/Anchorage",
	"-1000": "America/Adak",
	"-1030": "Pacific/Marquesas",
	"-1100": "Pacific/Samoa",
	"-1200": "Etc/GMT+12",
}

// ZoneFor resolves a fixed UTC offset like "+0300" to a representative IANA
// zone name, defaulting to UTC for an offset outside the table.
func ZoneFor(offset string) string {
	if z, ok := tzones[offset]; ok {
		return z
	}

	return "UTC"
}

// Column derives the canonical type descriptor for vals. An all-null column
// infers Nothing; a nullable-and-non-empty column wraps the inferred inner
// type in Nullable(...).
func Column(vals []table.Value) (chtype.Descriptor, error) {
	text, err := inferText(vals)
	if err != nil {
		return chtype.Descriptor{}, err
	}

	return chtype.Parse(text)
}

// Table derives a type descriptor for every column of t, in t.ColumnNames
// order, letting a writer fall back to inference for columns whose
// declared type is left unset.
func Table(t table.Table) ([]chtype.Descriptor, error) {
	names := t.ColumnNames()
	out := make([]chtype.Descriptor, len(names))

	for i, name := range names {
		desc, err := Column(t.Column(name))
		if err != nil {
			return nil, fmt.Errorf("infer: column %q: %w", name, err)
		}

		out[i] = desc
	}

	return out, nil
}

func inferText(vals []table.Value) (string, error) {
	nonNull := make([]table.Value, 0, len(vals))
	isNullable := false

	for _, v := range vals {
		if v.IsNull() {
			isNullable = true

			continue
		}

		nonNull = append(nonNull, v)
	}

	if len(nonNull) == 0 {
		return "Nothing", nil
	}

	inner, err := inferNonNull(nonNull)
	if err != nil {
		return "", err
	}

	if isNullable {
		return "Nullable(" + inner + ")", nil
	}

	return inner, nil
}

func inferNonNull(vals []table.Value) (string, error) {
	kind := vals[0].Kind

	switch kind {
	case chtype.KindBool:
		return "Bool", nil
	case chtype.KindUUID:
		return "UUID", nil
	case chtype.KindIPv4:
		return "IPv4", nil
	case chtype.KindIPv6:
		return "IPv6", nil
	case chtype.KindFloat32, chtype.KindFloat64:
		return inferFloat(vals), nil
	case chtype.KindDate, chtype.KindDate32:
		return inferDate(vals), nil
	case chtype.KindDateTime, chtype.KindDateTime64:
		return inferDateTime(vals), nil
	case chtype.KindString, chtype.KindFixedString:
		return inferString(vals), nil
	case chtype.KindArray:
		return inferArray(vals)
	case chtype.KindEnum8, chtype.KindEnum16:
		return inferEnum(vals), nil
	default:
		if isIntegerKind(kind) {
			return inferInteger(vals), nil
		}
	}

	return "", fmt.Errorf("infer: cannot infer a type for kind %s", kind)
}

func isIntegerKind(k chtype.Kind) bool {
	switch k {
	case chtype.KindUInt8, chtype.KindUInt16, chtype.KindUInt32, chtype.KindUInt64, chtype.KindUInt128, chtype.KindUInt256,
		chtype.KindInt8, chtype.KindInt16, chtype.KindInt32, chtype.KindInt64, chtype.KindInt128, chtype.KindInt256:
		return true
	}

	return false
}

func valueBig(v table.Value) *big.Int {
	if v.Big != nil {
		return v.Big
	}

	if v.I64 != 0 || v.Kind == chtype.KindInt8 || v.Kind == chtype.KindInt16 || v.Kind == chtype.KindInt32 || v.Kind == chtype.KindInt64 {
		return big.NewInt(v.I64)
	}

	return new(big.Int).SetUint64(v.U64)
}

func inferInteger(vals []table.Value) string {
	min := valueBig(vals[0])
	max := valueBig(vals[0])

	for _, v := range vals[1:] {
		b := valueBig(v)
		if b.Cmp(min) < 0 {
			min = b
		}

		if b.Cmp(max) > 0 {
			max = b
		}
	}

	if min.Sign() >= 0 {
		switch {
		case max.Cmp(big.NewInt(255)) <= 0:
			return "UInt8"
		case max.Cmp(big.NewInt(65535)) <= 0:
			return "UInt16"
		case max.Cmp(big.NewInt(4294967295)) <= 0:
			return "UInt32"
		case fitsUint64(max):
			return "UInt64"
		case fitsBits(max, 128):
			return "UInt128"
		default:
			return "UInt256"
		}
	}

	switch {
	case fitsSigned(min, max, 8):
		return "Int8"
	case fitsSigned(min, max, 16):
		return "Int16"
	case fitsSigned(min, max, 32):
		return "Int32"
	case fitsSigned(min, max, 64):
		return "Int64"
	case fitsSigned(min, max, 128):
		return "Int128"
	default:
		return "Int256"
	}
}

func fitsUint64(v *big.Int) bool {
	return v.Cmp(new(big.Int).SetUint64(^uint64(0))) <= 0
}

func fitsBits(v *big.Int, bits uint) bool {
	max := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), bits), big.NewInt(1))

	return v.Cmp(max) <= 0
}

func fitsSigned(min, max *big.Int, bits uint) bool {
	half := new(big.Int).Lsh(big.NewInt(1), bits-1)
	lo := new(big.Int).Neg(half)
	hi := new(big.Int).Sub(half, big.NewInt(1))

	return min.Cmp(lo) >= 0 && max.Cmp(hi) <= 0
}

func inferFloat(vals []table.Value) string {
	for _, v := range vals {
		f := v.F64
		if v.Kind == chtype.KindFloat32 {
			f = float64(v.F32)
		}

		abs := math.Abs(f)
		if abs != 0 && (abs < float32Min || abs > float32Max) {
			return "Float64"
		}
	}

	return "Float32"
}

func inferDate(vals []table.Value) string {
	min, max := dateRange(vals)

	if !min.Before(date1970) && !max.After(date2149) {
		return "Date"
	}

	return "Date32"
}

func dateRange(vals []table.Value) (time.Time, time.Time) {
	toTime := func(v table.Value) time.Time {
		if v.Kind == chtype.KindDate32 {
			return date1970.AddDate(0, 0, int(v.I64))
		}

		return date1970.AddDate(0, 0, int(v.U64))
	}

	min, max := toTime(vals[0]), toTime(vals[0])

	for _, v := range vals[1:] {
		tm := toTime(v)
		if tm.Before(min) {
			min = tm
		}

		if tm.After(max) {
			max = tm
		}
	}

	return min, max
}

func inferDateTime(vals []table.Value) string {
	toTime := func(v table.Value) time.Time {
		if v.Kind == chtype.KindDateTime64 {
			return dateTime1970.Add(time.Duration(v.I64) * time.Millisecond)
		}

		return dateTime1970.Add(time.Duration(v.I64) * time.Second)
	}

	min, max := toTime(vals[0]), toTime(vals[0])

	for _, v := range vals[1:] {
		tm := toTime(v)
		if tm.Before(min) {
			min = tm
		}

		if tm.After(max) {
			max = tm
		}
	}

	if !min.Before(dateTime1970) && !max.After(dateTime2106) {
		return "DateTime"
	}

	zone := ZoneFor(max.Format("-0700"))

	return fmt.Sprintf("DateTime64(3, '%s')", zone)
}

func inferString(vals []table.Value) string {
	n := len(vals[0].TrimmedStr())

	for _, v := range vals[1:] {
		if len(v.TrimmedStr()) != n {
			return "String"
		}
	}

	return fmt.Sprintf("FixedString(%d)", n)
}

func inferEnum(vals []table.Value) string {
	for _, v := range vals {
		if v.I64 < -128 || v.I64 > 127 {
			return "Enum16"
		}
	}

	return "Enum8"
}

func inferArray(vals []table.Value) (string, error) {
	var flat []table.Value

	for _, v := range vals {
		flat = append(flat, v.Arr...)
	}

	inner, err := inferText(flat)
	if err != nil {
		return "", err
	}

	return "Array(" + inner + ")", nil
}
