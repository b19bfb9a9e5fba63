// export_test.go exports private functions for white-box testing.
package cas

var (
	MarshalBody  = marshalBody
	EncodeRecord = encodeRecord
)
