// Package wire provides the field primitives every record layer is built from.
//
// All integers are big-endian. int = 4 bytes, long = 8 bytes, bool = 1 byte (1 is true),
// string = 4 byte length followed by UTF-8 bytes, lists = 4 byte count followed by items.
// There is no null string on the wire.
package wire

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/e1732a364fed/vs_profile/utils"
)

var (
	ErrTruncatedRecord          = errors.New("truncated record")
	ErrUnsupportedSchemaVersion = errors.New("unsupported schema version")
	ErrUnknownDiscriminator     = errors.New("unknown discriminator")
)

// UnsupportedVersion 给出一个 ErrUnsupportedSchemaVersion.
func UnsupportedVersion(layer string, version, current int32) error {
	return utils.ErrInErr{
		ErrDesc:   layer,
		ErrDetail: ErrUnsupportedSchemaVersion,
		Data:      fmt.Sprintf("version %d, newest known %d", version, current),
	}
}

// UnknownDiscriminator 给出一个 ErrUnknownDiscriminator.
func UnknownDiscriminator(field string, value any) error {
	return utils.ErrInErr{
		ErrDesc:   field,
		ErrDetail: ErrUnknownDiscriminator,
		Data:      value,
	}
}

type Output struct {
	buf []byte
}

func NewOutput() *Output {
	return &Output{buf: make([]byte, 0, 128)}
}

func (o *Output) Bytes() []byte { return o.buf }

func (o *Output) Len() int { return len(o.buf) }

func (o *Output) WriteInt(v int32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], uint32(v))
	o.buf = append(o.buf, b[:]...)
}

func (o *Output) WriteLong(v int64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v))
	o.buf = append(o.buf, b[:]...)
}

func (o *Output) WriteBool(v bool) {
	if v {
		o.buf = append(o.buf, 1)
	} else {
		o.buf = append(o.buf, 0)
	}
}

func (o *Output) WriteString(s string) {
	o.WriteInt(int32(len(s)))
	o.buf = append(o.buf, s...)
}

func (o *Output) WriteStringList(l []string) {
	o.WriteInt(int32(len(l)))
	for _, s := range l {
		o.WriteString(s)
	}
}

func (o *Output) WriteLongList(l []int64) {
	o.WriteInt(int32(len(l)))
	for _, v := range l {
		o.WriteLong(v)
	}
}

// 下面几个写入可缺失字段, nil 按零值写.

func (o *Output) Str(p *string)  { o.WriteString(utils.Val(p)) }
func (o *Output) Int32(p *int32) { o.WriteInt(utils.Val(p)) }
func (o *Output) Int64(p *int64) { o.WriteLong(utils.Val(p)) }
func (o *Output) Bool(p *bool)   { o.WriteBool(utils.Val(p)) }

// Input reads primitives from a byte slice. The first failure is sticky: later reads
// return zero values and Err keeps reporting the first error, so a layer decoder may read
// a whole run of fields and check once. Check Err before branching on a read value.
type Input struct {
	data []byte
	off  int
	err  error
}

func NewInput(data []byte) *Input {
	return &Input{data: data}
}

func (in *Input) Err() error { return in.err }

func (in *Input) Remaining() int { return len(in.data) - in.off }

func (in *Input) Offset() int { return in.off }

// Fail 记录一个错误, 若之前已有错误则保留之前的
func (in *Input) Fail(err error) {
	if in.err == nil {
		in.err = err
	}
}

func (in *Input) take(n int, what string) []byte {
	if in.err != nil {
		return nil
	}
	if n < 0 || n > in.Remaining() {
		in.err = utils.ErrInErr{
			ErrDesc:   what,
			ErrDetail: ErrTruncatedRecord,
			Data:      fmt.Sprintf("need %d bytes at offset %d, have %d", n, in.off, in.Remaining()),
		}
		return nil
	}
	b := in.data[in.off : in.off+n]
	in.off += n
	return b
}

func (in *Input) ReadInt() int32 {
	b := in.take(4, "int")
	if b == nil {
		return 0
	}
	return int32(binary.BigEndian.Uint32(b))
}

func (in *Input) ReadLong() int64 {
	b := in.take(8, "long")
	if b == nil {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}

func (in *Input) ReadBool() bool {
	b := in.take(1, "bool")
	if b == nil {
		return false
	}
	return b[0] == 1
}

// 长度按无符号处理, 负数长度必然超出剩余字节, 归为截断.
func (in *Input) readLen(what string, itemMin int) int {
	b := in.take(4, what)
	if b == nil {
		return 0
	}
	n := binary.BigEndian.Uint32(b)
	if uint64(n)*uint64(itemMin) > uint64(in.Remaining()) {
		in.err = utils.ErrInErr{
			ErrDesc:   what,
			ErrDetail: ErrTruncatedRecord,
			Data:      fmt.Sprintf("declared %d items at offset %d, have %d bytes", n, in.off, in.Remaining()),
		}
		return 0
	}
	return int(n)
}

func (in *Input) ReadString() string {
	n := in.readLen("string", 1)
	if in.err != nil {
		return ""
	}
	return string(in.take(n, "string"))
}

func (in *Input) ReadStringList() []string {
	n := in.readLen("string list", 4)
	if in.err != nil {
		return nil
	}
	l := make([]string, 0, n)
	for i := 0; i < n; i++ {
		l = append(l, in.ReadString())
	}
	if in.err != nil {
		return nil
	}
	return l
}

func (in *Input) ReadLongList() []int64 {
	n := in.readLen("long list", 8)
	if in.err != nil {
		return nil
	}
	l := make([]int64, n)
	for i := range l {
		l[i] = in.ReadLong()
	}
	return l
}

func (in *Input) SkipInt()        { in.ReadInt() }
func (in *Input) SkipBool()       { in.ReadBool() }
func (in *Input) SkipString()     { in.ReadString() }
func (in *Input) SkipStringList() { in.ReadStringList() }

// 下面几个读出可缺失字段; 出错时返回nil

func (in *Input) Str() *string {
	s := in.ReadString()
	if in.err != nil {
		return nil
	}
	return &s
}

func (in *Input) Int32() *int32 {
	v := in.ReadInt()
	if in.err != nil {
		return nil
	}
	return &v
}

func (in *Input) Int64() *int64 {
	v := in.ReadLong()
	if in.err != nil {
		return nil
	}
	return &v
}

// WidenInt reads an int and widens it, for fields whose width grew from int to long.
func (in *Input) WidenInt() *int64 {
	v := in.ReadInt()
	if in.err != nil {
		return nil
	}
	w := int64(v)
	return &w
}

func (in *Input) Bool() *bool {
	v := in.ReadBool()
	if in.err != nil {
		return nil
	}
	return &v
}

// ReadVersion reads a layer version counter. Negative versions and versions newer than
// current fail with ErrUnsupportedSchemaVersion.
func (in *Input) ReadVersion(layer string, current int32) int32 {
	v := in.ReadInt()
	if in.err != nil {
		return 0
	}
	if v < 0 || v > current {
		in.err = UnsupportedVersion(layer, v, current)
		return 0
	}
	return v
}
