package cas

import (
	"bytes"
	"encoding/binary"
	"errors"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/klauspost/compress/zstd"
	"go.trai.ch/dupe/internal/core/domain"
	"go.trai.ch/zerr"
)

const formatVersion = 1

var magic = []byte("DUPE")

var encoderPool = sync.Pool{
	New: func() any {
		enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
		return enc
	},
}

var decoderPool = sync.Pool{
	New: func() any {
		dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
		return dec
	},
}

// encodeRecord produces the on-disk representation of rec:
// magic, version byte, then the zstd frame of the body and its checksum.
func encodeRecord(rec domain.CacheRecord) ([]byte, error) {
	if rec.Form == nil {
		return nil, zerr.Wrap(domain.ErrStoreEncodeFailed, "record has no form")
	}
	body := marshalBody(rec)
	body = binary.LittleEndian.AppendUint64(body, xxhash.Sum64(body))

	enc := encoderPool.Get().(*zstd.Encoder)
	defer encoderPool.Put(enc)

	out := make([]byte, 0, len(magic)+1+len(body)/2)
	out = append(out, magic...)
	out = append(out, formatVersion)
	return enc.EncodeAll(body, out), nil
}

func decodeRecord(data []byte) (*domain.CacheRecord, error) {
	if len(data) < len(magic)+1 || !bytes.Equal(data[:len(magic)], magic) {
		return nil, zerr.Wrap(domain.ErrCacheCorrupt, "bad magic")
	}
	if v := data[len(magic)]; v != formatVersion {
		return nil, zerr.With(zerr.Wrap(domain.ErrCacheCorrupt, "unsupported format version"), "version", v)
	}

	dec := decoderPool.Get().(*zstd.Decoder)
	body, err := dec.DecodeAll(data[len(magic)+1:], nil)
	decoderPool.Put(dec)
	if err != nil {
		return nil, zerr.Wrap(domain.ErrCacheCorrupt, "decompress: "+err.Error())
	}

	if len(body) < 8 {
		return nil, zerr.Wrap(domain.ErrCacheCorrupt, "truncated body")
	}
	payload, sum := body[:len(body)-8], binary.LittleEndian.Uint64(body[len(body)-8:])
	if xxhash.Sum64(payload) != sum {
		return nil, zerr.Wrap(domain.ErrCacheCorrupt, "checksum mismatch")
	}

	rec, err := unmarshalBody(payload)
	if err != nil {
		return nil, err
	}
	if err := rec.Form.Validate(); err != nil {
		return nil, errors.Join(domain.ErrCacheCorrupt, err)
	}
	return rec, nil
}

// marshalBody lays the record out as varints. Runs store their length
// followed by the packed color as a little-endian uint32.
func marshalBody(rec domain.CacheRecord) []byte {
	f := rec.Form
	buf := make([]byte, 0, 64+len(rec.Identity.Path)+len(f.Runs)*6)

	buf = appendString(buf, rec.Identity.Path)
	buf = binary.AppendVarint(buf, rec.Identity.Signature.Size)
	buf = binary.AppendVarint(buf, rec.Identity.Signature.ModTimeNano)
	buf = binary.AppendUvarint(buf, rec.Identity.Signature.ContentHash)
	buf = appendString(buf, string(rec.Variant))

	buf = binary.AppendUvarint(buf, uint64(f.Width))
	buf = binary.AppendUvarint(buf, uint64(f.Height))
	prev := 0
	for _, end := range f.RowEnds {
		buf = binary.AppendUvarint(buf, uint64(end-prev))
		prev = end
	}
	buf = binary.AppendUvarint(buf, uint64(len(f.Runs)))
	for _, run := range f.Runs {
		buf = binary.AppendUvarint(buf, uint64(run.Length))
		buf = binary.LittleEndian.AppendUint32(buf, uint32(run.Color))
	}
	return buf
}

func unmarshalBody(data []byte) (*domain.CacheRecord, error) {
	r := &reader{data: data}
	rec := &domain.CacheRecord{Form: &domain.EncodedForm{}}

	rec.Identity.Path = r.string()
	rec.Identity.Signature.Size = r.varint()
	rec.Identity.Signature.ModTimeNano = r.varint()
	rec.Identity.Signature.ContentHash = r.uvarint()
	rec.Variant = domain.Palette(r.string())

	f := rec.Form
	f.Width = r.int()
	f.Height = r.int()
	if r.err == nil && f.Height > len(r.data) {
		r.fail("height exceeds payload")
	}
	if r.err == nil {
		f.RowEnds = make([]int, f.Height)
		end := 0
		for y := range f.Height {
			end += r.int()
			f.RowEnds[y] = end
		}
	}

	n := r.int()
	if r.err == nil && n > len(r.data) {
		r.fail("run count exceeds payload")
	}
	if r.err == nil && n > 0 {
		f.Runs = make([]domain.Run, n)
		for i := range f.Runs {
			length := r.uvarint()
			if length > uint64(^uint32(0)) {
				r.fail("run length overflow")
			}
			f.Runs[i] = domain.Run{Length: uint32(length), Color: domain.Color(r.uint32())}
		}
	}

	if r.err == nil && len(r.data) != 0 {
		r.fail("trailing bytes")
	}
	if r.err != nil {
		return nil, r.err
	}
	return rec, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

// reader consumes a body and remembers the first decoding failure.
type reader struct {
	data []byte
	err  error
}

func (r *reader) fail(msg string) {
	if r.err == nil {
		r.err = zerr.Wrap(domain.ErrCacheCorrupt, msg)
	}
	r.data = nil
}

func (r *reader) uvarint() uint64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Uvarint(r.data)
	if n <= 0 {
		r.fail("malformed uvarint")
		return 0
	}
	r.data = r.data[n:]
	return v
}

func (r *reader) varint() int64 {
	if r.err != nil {
		return 0
	}
	v, n := binary.Varint(r.data)
	if n <= 0 {
		r.fail("malformed varint")
		return 0
	}
	r.data = r.data[n:]
	return v
}

func (r *reader) int() int {
	v := r.uvarint()
	if v > uint64(maxInt) {
		r.fail("integer overflow")
		return 0
	}
	return int(v)
}

func (r *reader) uint32() uint32 {
	if r.err != nil {
		return 0
	}
	if len(r.data) < 4 {
		r.fail("truncated color")
		return 0
	}
	v := binary.LittleEndian.Uint32(r.data)
	r.data = r.data[4:]
	return v
}

func (r *reader) string() string {
	n := r.int()
	if r.err != nil {
		return ""
	}
	if n > len(r.data) {
		r.fail("truncated string")
		return ""
	}
	s := string(r.data[:n])
	r.data = r.data[n:]
	return s
}

const maxInt = int(^uint(0) >> 1)
