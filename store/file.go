package store

import (
	"bytes"
	"os"
	"path/filepath"
	"sync"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
	"github.com/klauspost/compress/zstd"
	"go.uber.org/zap"
)

const (
	fileMagic   = "VSPS"
	fileVersion = 1
)

var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("store: zstd encoder: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("store: zstd decoder: " + err.Error())
	}
}

// File is a Memory that writes itself to Path after every change.
type File struct {
	*Memory
	Path string

	// 快照与 rename 之间不能插入别的 Save
	saveMu sync.Mutex
}

// OpenFile loads path, or starts empty if it does not exist yet.
func OpenFile(path string) (*File, error) {
	f := &File{Memory: NewMemory(), Path: path}
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return f, nil
	}
	if err != nil {
		return nil, err
	}
	if err = f.load(data); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "load store " + path, ErrDetail: err}
	}
	if ce := utils.CanLogInfo("store loaded"); ce != nil {
		ce.Write(zap.String("path", path), zap.Int("groups", len(f.groups)), zap.Int("rows", len(f.rows)))
	}
	return f, nil
}

func (f *File) load(data []byte) error {
	if !bytes.HasPrefix(data, []byte(fileMagic)) {
		return utils.ErrInvalidData
	}
	raw, err := zstdDecoder.DecodeAll(data[len(fileMagic):], nil)
	if err != nil {
		return err
	}

	in := wire.NewInput(raw)
	in.ReadVersion("store file", fileVersion)
	for n := in.ReadInt(); n > 0 && in.Err() == nil; n-- {
		g := Group{ID: in.ReadLong(), Name: in.ReadString(), Subscription: readBlob(in)}
		if in.Err() == nil {
			f.groups[g.ID] = g
			f.seen(g.ID)
		}
	}
	for n := in.ReadInt(); n > 0 && in.Err() == nil; n-- {
		r := Row{ID: in.ReadLong(), GroupID: in.ReadLong(), Order: in.ReadLong(), Kind: bean.Kind(in.ReadInt())}
		r.Data = readBlob(in)
		if in.Err() == nil {
			f.rows[r.ID] = r
			f.seen(r.ID)
		}
	}
	return in.Err()
}

// 空的读回 nil
func readBlob(in *wire.Input) []byte {
	s := in.ReadString()
	if s == "" {
		return nil
	}
	return []byte(s)
}

// Save writes the whole store to a temporary file and renames it over Path.
func (f *File) Save() error {
	f.saveMu.Lock()
	defer f.saveMu.Unlock()

	f.mu.RLock()
	out := wire.NewOutput()
	out.WriteInt(fileVersion)
	out.WriteInt(int32(len(f.groups)))
	for _, id := range utils.GetMapSortedKeySlice(f.groups) {
		g := f.groups[id]
		out.WriteLong(g.ID)
		out.WriteString(g.Name)
		out.WriteString(string(g.Subscription))
	}
	out.WriteInt(int32(len(f.rows)))
	for _, id := range utils.GetMapSortedKeySlice(f.rows) {
		r := f.rows[id]
		out.WriteLong(r.ID)
		out.WriteLong(r.GroupID)
		out.WriteLong(r.Order)
		out.WriteInt(int32(r.Kind))
		out.WriteString(string(r.Data))
	}
	f.mu.RUnlock()

	data := append([]byte(fileMagic), zstdEncoder.EncodeAll(out.Bytes(), nil)...)

	tmp, err := os.CreateTemp(filepath.Dir(f.Path), filepath.Base(f.Path)+".*")
	if err != nil {
		return err
	}
	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err = tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), f.Path)
}

func (f *File) PutGroup(g Group) (Group, error) {
	g, err := f.Memory.PutGroup(g)
	if err != nil {
		return g, err
	}
	return g, f.Save()
}

func (f *File) DeleteGroup(id int64) error {
	if err := f.Memory.DeleteGroup(id); err != nil {
		return err
	}
	return f.Save()
}

func (f *File) PutRows(rows ...Row) ([]Row, error) {
	r, err := f.Memory.PutRows(rows...)
	if err != nil {
		return nil, err
	}
	return r, f.Save()
}

func (f *File) DeleteRows(ids ...int64) error {
	if err := f.Memory.DeleteRows(ids...); err != nil {
		return err
	}
	return f.Save()
}
