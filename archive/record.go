package archive

import (
	"fmt"
	"math"

	"github.com/arloliu/chemlab/endian"
	"github.com/arloliu/chemlab/experiment"
	"github.com/arloliu/chemlab/format"
)

// minRecordSize is a kind byte, four empty strings and an empty mask.
const minRecordSize = 1 + 4*4 + 2

func recordKind(k experiment.Kind) (format.RecordKind, error) {
	switch k {
	case experiment.KindGas:
		return format.RecordGas, nil
	case experiment.KindDaniell:
		return format.RecordDaniell, nil
	default:
		return 0, fmt.Errorf("%w: %q", experiment.ErrUnknownKind, k)
	}
}

func experimentKind(k format.RecordKind) (experiment.Kind, error) {
	switch k {
	case format.RecordGas:
		return experiment.KindGas, nil
	case format.RecordDaniell:
		return experiment.KindDaniell, nil
	default:
		return "", fmt.Errorf("%w: record kind %d", ErrCorruptRecord, k)
	}
}

func recordSize(r *experiment.Run) int {
	return minRecordSize + len(r.ID) + len(r.Date) + len(r.WeekTag) + len(r.Notes) +
		8*len(experiment.NumericFields(r.Kind))
}

func appendString(engine endian.EndianEngine, dst []byte, s string) []byte {
	dst = engine.AppendUint32(dst, uint32(len(s))) //nolint: gosec
	return append(dst, s...)
}

func appendRecord(engine endian.EndianEngine, dst []byte, r *experiment.Run) ([]byte, error) {
	kind, err := recordKind(r.Kind)
	if err != nil {
		return dst, err
	}

	dst = append(dst, byte(kind))
	dst = appendString(engine, dst, r.ID)
	dst = appendString(engine, dst, r.Date)
	dst = appendString(engine, dst, r.WeekTag)
	dst = appendString(engine, dst, r.Notes)

	fields := experiment.NumericFields(r.Kind)
	var mask uint16
	values := make([]float64, 0, len(fields))
	for i, name := range fields {
		if v, ok := experiment.Field(r, name); ok {
			mask |= 1 << i
			values = append(values, v)
		}
	}

	dst = engine.AppendUint16(dst, mask)
	for _, v := range values {
		dst = endian.AppendFloat64(engine, dst, v)
	}

	return dst, nil
}

// reader walks a decompressed payload.
type reader struct {
	engine endian.EndianEngine
	data   []byte
	off    int
}

func (rd *reader) take(n int) ([]byte, error) {
	if n < 0 || n > len(rd.data)-rd.off {
		return nil, fmt.Errorf("%w: need %d bytes at offset %d", ErrCorruptRecord, n, rd.off)
	}
	b := rd.data[rd.off : rd.off+n]
	rd.off += n

	return b, nil
}

func (rd *reader) readByte() (byte, error) {
	b, err := rd.take(1)
	if err != nil {
		return 0, err
	}

	return b[0], nil
}

func (rd *reader) readString() (string, error) {
	b, err := rd.take(4)
	if err != nil {
		return "", err
	}
	n := rd.engine.Uint32(b)
	if uint64(n) > math.MaxInt32 {
		return "", fmt.Errorf("%w: string length %d", ErrCorruptRecord, n)
	}
	s, err := rd.take(int(n))
	if err != nil {
		return "", err
	}

	return string(s), nil
}

func (rd *reader) remaining() int {
	return len(rd.data) - rd.off
}

func (rd *reader) record() (*experiment.Run, error) {
	kb, err := rd.readByte()
	if err != nil {
		return nil, err
	}
	kind, err := experimentKind(format.RecordKind(kb))
	if err != nil {
		return nil, err
	}

	r, err := experiment.NewRun(kind)
	if err != nil {
		return nil, err
	}
	for _, dst := range []*string{&r.ID, &r.Date, &r.WeekTag, &r.Notes} {
		if *dst, err = rd.readString(); err != nil {
			return nil, err
		}
	}

	mb, err := rd.take(2)
	if err != nil {
		return nil, err
	}
	mask := rd.engine.Uint16(mb)

	fields := experiment.NumericFields(kind)
	if mask>>len(fields) != 0 {
		return nil, fmt.Errorf("%w: presence mask %#x for %s", ErrCorruptRecord, mask, kind)
	}
	for i, name := range fields {
		if mask&(1<<i) == 0 {
			continue
		}
		b, err := rd.take(8)
		if err != nil {
			return nil, err
		}
		if err := experiment.SetField(r, name, endian.Float64(rd.engine, b)); err != nil {
			return nil, err
		}
	}

	return r, nil
}
