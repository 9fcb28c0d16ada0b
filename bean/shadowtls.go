package bean

import (
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

const shadowTLSVersion = 1

const (
	ShadowTLSProtocol2 int32 = 2
	ShadowTLSProtocol3 int32 = 3
)

type ShadowTLS struct {
	Base

	SNI             *string
	Password        *string
	ALPN            *string
	AllowInsecure   *bool
	Certificates    *string
	ProtocolVersion *int32
}

func encodeShadowTLS(out *wire.Output, b *ShadowTLS) {
	out.WriteInt(shadowTLSVersion)
	encodeEndpoint(out, &b.Base)
	out.Str(b.SNI)
	out.Str(b.Password)
	out.Str(b.ALPN)
	out.Bool(b.AllowInsecure)
	out.Str(b.Certificates)
	out.Int32(b.ProtocolVersion)
}

func decodeShadowTLS(in *wire.Input, b *ShadowTLS) {
	version := in.ReadVersion("shadowtls layer", shadowTLSVersion)
	decodeEndpoint(in, &b.Base)
	b.SNI = in.Str()
	b.Password = in.Str()
	b.ALPN = in.Str()
	if version == 0 {
		v3 := in.Bool()
		if v3 != nil {
			if *v3 {
				b.ProtocolVersion = utils.Ptr(ShadowTLSProtocol3)
			} else {
				b.ProtocolVersion = utils.Ptr(ShadowTLSProtocol2)
			}
		}
		return
	}
	b.AllowInsecure = in.Bool()
	b.Certificates = in.Str()
	b.ProtocolVersion = in.Int32()
}
