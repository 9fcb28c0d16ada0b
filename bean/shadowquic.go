package bean

import (
	"github.com/e1732a364fed/vs_profile/wire"
)

const shadowQUICVersion = 1

type ShadowQUIC struct {
	Base

	Username          *string
	Password          *string
	SNI               *string
	ALPN              *string
	CongestionControl *string
	ZeroRTT           *bool
	UDPOverStream     *bool
	DisableALPN       *bool
	UseSunnyQUIC      *bool
}

// shadowquic 的 endpoint 写在版本号之前, 历史原因, 不能改
func encodeShadowQUIC(out *wire.Output, b *ShadowQUIC) {
	encodeEndpoint(out, &b.Base)
	out.WriteInt(shadowQUICVersion)
	out.Str(b.Username)
	out.Str(b.Password)
	out.Str(b.SNI)
	out.Str(b.ALPN)
	out.Str(b.CongestionControl)
	out.Bool(b.ZeroRTT)
	out.Bool(b.UDPOverStream)
	out.Bool(b.DisableALPN)
	out.Bool(b.UseSunnyQUIC)
}

func decodeShadowQUIC(in *wire.Input, b *ShadowQUIC) {
	decodeEndpoint(in, &b.Base)
	version := in.ReadVersion("shadowquic layer", shadowQUICVersion)
	b.Username = in.Str()
	b.Password = in.Str()
	b.SNI = in.Str()
	b.ALPN = in.Str()
	b.CongestionControl = in.Str()
	b.ZeroRTT = in.Bool()
	b.UDPOverStream = in.Bool()
	if version >= 1 {
		b.DisableALPN = in.Bool()
		b.UseSunnyQUIC = in.Bool()
	}
}
