package compress

// noneCodec is the identity codec for MethodNone: the frame payload equals
// the original bytes (spec §4.7 "Method support": "NONE (identity)").
type noneCodec struct{}

func (noneCodec) Compress(data []byte, level int) ([]byte, error) {
	return data, nil
}

func (noneCodec) Decompress(data []byte, expectedSize int) ([]byte, error) {
	return data, nil
}
