package compress

import "fmt"

// Method identifies a ClickHouse block compression codec by its wire byte
// (spec §6 "Method codes").
type Method byte

const (
	MethodNone            Method = 0x02
	MethodLZ4             Method = 0x82
	MethodZSTD            Method = 0x90
	MethodMultiple        Method = 0x91
	MethodDelta           Method = 0x92
	MethodT64             Method = 0x93
	MethodDoubleDelta      Method = 0x94
	MethodGorilla          Method = 0x95
	MethodAES128GCMSIV     Method = 0x96
	MethodAES256GCMSIV     Method = 0x97
	MethodFPC              Method = 0x98
	MethodDeflateQPL       Method = 0x99
	MethodGCD              Method = 0x9a
	MethodZSTDQPL          Method = 0x9b
	MethodSZ3              Method = 0x9c
)

var methodNames = map[Method]string{
	MethodNone:         "NONE",
	MethodLZ4:          "LZ4",
	MethodZSTD:         "ZSTD",
	MethodMultiple:     "Multiple",
	MethodDelta:        "Delta",
	MethodT64:          "T64",
	MethodDoubleDelta:  "DoubleDelta",
	MethodGorilla:      "Gorilla",
	MethodAES128GCMSIV: "AES_128_GCM_SIV",
	MethodAES256GCMSIV: "AES_256_GCM_SIV",
	MethodFPC:          "FPC",
	MethodDeflateQPL:   "DeflateQpl",
	MethodGCD:          "GCD",
	MethodZSTDQPL:      "ZSTD_QPL",
	MethodSZ3:          "SZ3",
}

func (m Method) String() string {
	if name, ok := methodNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Method(0x%02x)", byte(m))
}

// Supported reports whether this method is compressible/decompressible by
// this package, as opposed to merely parseable on the wire.
func (m Method) Supported() bool {
	_, ok := builtinCodecs[m]

	return ok
}

// Recognized reports whether m is one of the method codes ClickHouse's wire
// format defines, whether or not this package can actually compress or
// decompress it.
func (m Method) Recognized() bool {
	_, ok := methodNames[m]

	return ok
}
