package bean

import (
	"github.com/e1732a364fed/vs_profile/wire"
)

const trustTunnelVersion = 0

type TrustTunnel struct {
	Base

	Protocol        *string // https 或 quic
	Username        *string
	Password        *string
	SNI             *string
	Certificate     *string
	UtlsFingerprint *string
}

func encodeTrustTunnel(out *wire.Output, b *TrustTunnel) {
	out.WriteInt(trustTunnelVersion)
	encodeEndpoint(out, &b.Base)
	out.Str(b.Protocol)
	out.Str(b.Username)
	out.Str(b.Password)
	out.Str(b.SNI)
	out.Str(b.Certificate)
	out.Str(b.UtlsFingerprint)
}

func decodeTrustTunnel(in *wire.Input, b *TrustTunnel) {
	in.ReadVersion("trusttunnel layer", trustTunnelVersion)
	decodeEndpoint(in, &b.Base)
	b.Protocol = in.Str()
	b.Username = in.Str()
	b.Password = in.Str()
	b.SNI = in.Str()
	b.Certificate = in.Str()
	b.UtlsFingerprint = in.Str()
}
