package bean

import (
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

type mode uint8

const (
	modeStore     mode = iota
	modeCanonical      // 不写 name, 用于身份比较
	modeShare          // 不写私钥
)

const extraVersion = 2

// Encode writes b at the current version of every layer.
// Absent attributes are written as zero values; encode materialized records.
func Encode(b Bean) []byte {
	out := wire.NewOutput()
	encodeProtocol(out, b, modeStore)
	encodeExtra(out, b.GetBase(), modeStore)
	return out.Bytes()
}

// DecodeRaw decodes bytes stored for kind k without materializing them.
// Fields missing from an old layout stay nil.
func DecodeRaw(k Kind, data []byte) (Bean, error) {
	b, ok := newRaw(k)
	if !ok {
		return nil, wire.UnknownDiscriminator("record kind", int32(k))
	}
	in := wire.NewInput(data)
	decodeProtocol(in, b)
	decodeExtra(in, b.GetBase())
	if err := in.Err(); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "decode " + k.String(), ErrDetail: errDetail(err), Data: err}
	}
	return b, nil
}

// Decode is DecodeRaw followed by Materialize.
func Decode(k Kind, data []byte) (Bean, error) {
	b, err := DecodeRaw(k, data)
	if err != nil {
		return nil, err
	}
	Materialize(b)
	return b, nil
}

// 取出 wire 的三种错误之一, 让外层的 ErrInErr 可以直接被 errors.Is 匹配
func errDetail(err error) error {
	if ee, ok := err.(utils.ErrInErr); ok && ee.ErrDetail != nil {
		return ee.ErrDetail
	}
	return err
}

func encodeProtocol(out *wire.Output, b Bean, m mode) {
	switch v := b.(type) {
	case *SOCKS:
		encodeSOCKS(out, v)
	case *HTTP:
		encodeHTTP(out, v)
	case *Shadowsocks:
		encodeShadowsocks(out, v)
	case *VMess:
		encodeVMess(out, v)
	case *VLESS:
		encodeVLESS(out, v)
	case *Trojan:
		encodeTrojan(out, v)
	case *Hysteria:
		encodeHysteria(out, v)
	case *Hysteria2:
		encodeHysteria2(out, v, m)
	case *Tuic5:
		encodeTuic5(out, v, m)
	case *Juicity:
		encodeJuicity(out, v, m)
	case *AnyTLS:
		encodeAnyTLS(out, v, m)
	case *ShadowTLS:
		encodeShadowTLS(out, v)
	case *HTTP3:
		encodeHTTP3(out, v, m)
	case *ShadowQUIC:
		encodeShadowQUIC(out, v)
	case *TrustTunnel:
		encodeTrustTunnel(out, v)
	case *Balancer:
		encodeBalancer(out, v)
	}
}

func decodeProtocol(in *wire.Input, b Bean) {
	switch v := b.(type) {
	case *SOCKS:
		decodeSOCKS(in, v)
	case *HTTP:
		decodeHTTP(in, v)
	case *Shadowsocks:
		decodeShadowsocks(in, v)
	case *VMess:
		decodeVMess(in, v)
	case *VLESS:
		decodeVLESS(in, v)
	case *Trojan:
		decodeTrojan(in, v)
	case *Hysteria:
		decodeHysteria(in, v)
	case *Hysteria2:
		decodeHysteria2(in, v)
	case *Tuic5:
		decodeTuic5(in, v)
	case *Juicity:
		decodeJuicity(in, v)
	case *AnyTLS:
		decodeAnyTLS(in, v)
	case *ShadowTLS:
		decodeShadowTLS(in, v)
	case *HTTP3:
		decodeHTTP3(in, v)
	case *ShadowQUIC:
		decodeShadowQUIC(in, v)
	case *TrustTunnel:
		decodeTrustTunnel(in, v)
	case *Balancer:
		decodeBalancer(in, v)
	}
}

// endpoint 这一段没有版本号, 格式永远不变
func encodeEndpoint(out *wire.Output, b *Base) {
	out.Str(b.ServerAddress)
	out.Int32(b.ServerPort)
}

func decodeEndpoint(in *wire.Input, b *Base) {
	b.ServerAddress = in.Str()
	b.ServerPort = in.Int32()
}

func writePrivateKey(out *wire.Output, key *string, m mode) {
	if m == modeShare {
		out.WriteString("")
		return
	}
	out.Str(key)
}

func encodeExtra(out *wire.Output, b *Base, m mode) {
	out.WriteInt(extraVersion)
	if m != modeCanonical {
		out.Str(b.Name)
	}
	out.Int32(b.ExtraType)
	if utils.Val(b.ExtraType) == ExtraTypeNone {
		return
	}
	out.Str(b.ProfileID)
}

func decodeExtra(in *wire.Input, b *Base) {
	version := in.ReadVersion("extra layer", extraVersion)
	b.Name = in.Str()
	b.ExtraType = in.Int32()
	if in.Err() != nil {
		return
	}
	switch *b.ExtraType {
	case ExtraTypeNone:
		return
	case ExtraTypeSIP008, ExtraTypeOOCv1:
	default:
		in.Fail(wire.UnknownDiscriminator("extraType", *b.ExtraType))
		return
	}
	b.ProfileID = in.Str()

	// 旧的 OOCv1 记录还带着服务器给的几项附加信息, 已不再使用
	if version < 2 && *b.ExtraType == ExtraTypeOOCv1 {
		in.SkipString()
		if version >= 1 {
			in.SkipString()
		}
		in.SkipStringList()
	}
}
