package bean

import (
	"github.com/e1732a364fed/vs_profile/wire"
)

const tuic5Version = 4

type Tuic5 struct {
	Base

	UUID              *string
	Password          *string
	Certificates      *string
	UDPRelayMode      *string
	CongestionControl *string
	ALPN              *string
	DisableSNI        *bool
	ZeroRTTHandshake  *bool
	SNI               *string
	AllowInsecure     *bool
	EchConfig         *string

	PinnedPeerCertificateChainSha256     *string
	PinnedPeerCertificatePublicKeySha256 *string
	PinnedPeerCertificateSha256          *string
	MtlsCertificate                      *string
	MtlsCertificatePrivateKey            *string

	SingUDPOverStream *bool
}

func encodeTuic5(out *wire.Output, b *Tuic5, m mode) {
	out.WriteInt(tuic5Version)
	encodeEndpoint(out, &b.Base)
	out.Str(b.Password)
	out.Str(b.Certificates)
	out.Str(b.UDPRelayMode)
	out.Str(b.CongestionControl)
	out.Str(b.ALPN)
	out.Bool(b.DisableSNI)
	out.Bool(b.ZeroRTTHandshake)
	out.Str(b.SNI)
	out.Str(b.UUID)
	out.Bool(b.AllowInsecure)
	out.Str(b.EchConfig)
	out.Str(b.PinnedPeerCertificateChainSha256)
	out.Str(b.PinnedPeerCertificatePublicKeySha256)
	out.Str(b.PinnedPeerCertificateSha256)
	out.Str(b.MtlsCertificate)
	writePrivateKey(out, b.MtlsCertificatePrivateKey, m)
	out.Bool(b.SingUDPOverStream)
}

func decodeTuic5(in *wire.Input, b *Tuic5) {
	version := in.ReadVersion("tuic5 layer", tuic5Version)
	decodeEndpoint(in, &b.Base)
	b.Password = in.Str()
	b.Certificates = in.Str()
	b.UDPRelayMode = in.Str()
	b.CongestionControl = in.Str()
	b.ALPN = in.Str()
	b.DisableSNI = in.Bool()
	b.ZeroRTTHandshake = in.Bool()
	if version < 4 {
		in.SkipInt() // mtu
	}
	b.SNI = in.Str()
	b.UUID = in.Str()
	if version >= 1 {
		b.AllowInsecure = in.Bool()
	}
	if version >= 2 {
		b.EchConfig = in.Str()
		b.PinnedPeerCertificateChainSha256 = in.Str()
		b.PinnedPeerCertificatePublicKeySha256 = in.Str()
		b.PinnedPeerCertificateSha256 = in.Str()
		b.MtlsCertificate = in.Str()
		b.MtlsCertificatePrivateKey = in.Str()
	}
	if version >= 3 {
		b.SingUDPOverStream = in.Bool()
	}
}
