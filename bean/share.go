package bean

import (
	"errors"

	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

// share payloads version independently of the stored form
const shareVersion = 1

var ErrNotShareable = errors.New("record kind is not shareable")

// EncodeShare encodes b for handing to another installation: the kind, the protocol
// layer with mTLS private keys blanked, then the name. The extra-metadata layer is local
// and not included.
func EncodeShare(b Bean) ([]byte, error) {
	if b.Kind() == KindBalancer {
		return nil, utils.ErrInErr{ErrDesc: "EncodeShare", ErrDetail: ErrNotShareable, Data: b.Kind().String()}
	}
	out := wire.NewOutput()
	out.WriteInt(shareVersion)
	out.WriteInt(int32(b.Kind()))
	encodeProtocol(out, b, modeShare)
	out.Str(b.GetBase().Name)
	return out.Bytes(), nil
}

// DecodeShare decodes and materializes a share payload. Version 0 payloads carry no name.
func DecodeShare(data []byte) (Bean, error) {
	in := wire.NewInput(data)
	version := in.ReadVersion("share payload", shareVersion)
	k := Kind(in.ReadInt())
	if err := in.Err(); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "DecodeShare", ErrDetail: errDetail(err), Data: err}
	}
	if k == KindBalancer {
		return nil, utils.ErrInErr{ErrDesc: "DecodeShare", ErrDetail: ErrNotShareable, Data: k.String()}
	}
	b, ok := newRaw(k)
	if !ok {
		return nil, utils.ErrInErr{ErrDesc: "DecodeShare", ErrDetail: wire.ErrUnknownDiscriminator, Data: int32(k)}
	}
	decodeProtocol(in, b)
	if version >= 1 {
		b.GetBase().Name = in.Str()
	}
	if err := in.Err(); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "DecodeShare " + k.String(), ErrDetail: errDetail(err), Data: err}
	}
	Materialize(b)
	return b, nil
}
