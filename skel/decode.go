package skel

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/grailbio/base/recordio"
	"github.com/grailbio/base/recordio/recordiozstd"
	"github.com/pkg/errors"
)

func init() {
	recordiozstd.Init()
}

// skeletonRecord is the single gob-encoded payload framed by recordio; the
// shape-graph assembler that produces this file is an external
// collaborator -- Decode only has to agree with it on wire format.
type skeletonRecord struct {
	Skeleton Skeleton
}

func marshalSkeleton(scratch []byte, v interface{}) ([]byte, error) {
	buf := bytes.NewBuffer(scratch[:0])
	if err := gob.NewEncoder(buf).Encode(v.(*skeletonRecord)); err != nil {
		return nil, errors.Wrap(err, "skel: encode")
	}
	return buf.Bytes(), nil
}

func unmarshalSkeleton(in []byte) (interface{}, error) {
	var rec skeletonRecord
	if err := gob.NewDecoder(bytes.NewReader(in)).Decode(&rec); err != nil {
		return nil, errors.Wrap(err, "skel: decode")
	}
	return &rec, nil
}

// Decode reads a single recordio-framed, zstd-compressed, gob-encoded
// Skeleton from r (the format skel.Encode below writes, and the format an
// external shape-graph assembler is expected to produce).
func Decode(r io.Reader) (*Skeleton, error) {
	scanner := recordio.NewScanner(r, recordio.ScannerOpts{Unmarshal: unmarshalSkeleton})
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, errors.Wrap(err, "skel: scan")
		}
		return nil, errors.New("skel: empty input, expected one skeleton record")
	}
	rec := scanner.Get().(*skeletonRecord)
	return &rec.Skeleton, nil
}

// Encode writes sk to w in the format Decode reads, for tests and for
// producing fixtures from a trusted in-process builder.
func Encode(w io.Writer, sk *Skeleton) error {
	rw := recordio.NewWriter(w, recordio.WriterOpts{
		Marshal:      marshalSkeleton,
		Transformers: []string{recordiozstd.Name},
	})
	rw.AddHeader(recordio.KeyTrailer, true)
	if err := rw.Append(&skeletonRecord{Skeleton: *sk}); err != nil {
		return errors.Wrap(err, "skel: append")
	}
	return errors.Wrap(rw.Finish(), "skel: finish")
}
