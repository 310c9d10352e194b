package tree

import (
	"bytes"
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/Congllspkt/xtreemap/lib/infra"
)

// maxSnapshotPrealloc bounds the entry slice capacity reserved up front
// when restoring, so a corrupt count cannot trigger a giant allocation.
const maxSnapshotPrealloc = 1 << 16

// Snapshot wire layout, before compression: msgpack entry count, then
// the (key, value) pairs in ascending comparator order. The comparator
// itself is not serialized; the reading side must construct the
// container with an equivalent one. A snapshot occupies the rest of the
// stream it is written to.

func writeSnapshotEntries[K infra.OrderedKey, V any](
	w io.Writer,
	c Compression,
	size int64,
	foreach func(action func(idx int64, key K, val V) bool),
) error {
	buf := bytes.Buffer{}
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeInt(size); err != nil {
		return infra.WrapErrorStackWithMessage(err, "encode snapshot entry count")
	}

	var encErr error
	foreach(func(idx int64, key K, val V) bool {
		if encErr = enc.Encode(key); encErr != nil {
			return false
		}
		if encErr = enc.Encode(val); encErr != nil {
			return false
		}
		return true
	})
	if encErr != nil {
		return infra.WrapErrorStackWithMessage(encErr, "encode snapshot entry")
	}

	if _, err := w.Write(c.Encode(buf.Bytes())); err != nil {
		return infra.WrapErrorStackWithMessage(err, "flush snapshot payload")
	}
	return nil
}

// ReadSnapshot restores a container from a snapshot stream. The entries
// arrive sorted under the comparator they were written with, so the
// rebuild is the O(n) balanced bulk-load. Pass the options the snapshot
// was written under, a different order fails with
// ErrXTreeMapUnsortedEntries.
func ReadSnapshot[K infra.OrderedKey, V any](r io.Reader, c Compression, opts ...TreeMapOpt[K, V]) (TreeMap[K, V], error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "read snapshot payload")
	}
	data, err := c.Decode(raw)
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "decompress snapshot payload")
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	size, err := dec.DecodeInt64()
	if err != nil {
		return nil, infra.WrapErrorStackWithMessage(err, "decode snapshot entry count")
	}
	if size < 0 {
		return nil, infra.WrapErrorStackWithMessage(ErrXTreeMapBadSnapshot, "negative snapshot entry count")
	}

	// The count arrives from the stream, so the pre-allocation is capped
	// and a huge count has to be paid for by actual entry bytes.
	entries := make([]Entry[K, V], 0, min(size, maxSnapshotPrealloc))
	for i := int64(0); i < size; i++ {
		var (
			key K
			val V
		)
		if err := dec.Decode(&key); err != nil {
			return nil, infra.WrapErrorStackWithMessage(err, "decode snapshot entry key")
		}
		if err := dec.Decode(&val); err != nil {
			return nil, infra.WrapErrorStackWithMessage(err, "decode snapshot entry value")
		}
		entries = append(entries, Entry[K, V]{Key: key, Val: val})
	}

	return NewTreeMapFromSortedEntries(entries, opts...)
}
