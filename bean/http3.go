package bean

import (
	"github.com/e1732a364fed/vs_profile/wire"
)

const http3Version = 2

type HTTP3 struct {
	Base

	Username     *string
	Password     *string
	SNI          *string
	Certificates *string

	PinnedPeerCertificateChainSha256     *string
	PinnedPeerCertificatePublicKeySha256 *string
	PinnedPeerCertificateSha256          *string

	AllowInsecure             *bool
	EchConfig                 *string
	MtlsCertificate           *string
	MtlsCertificatePrivateKey *string

	TrustTunnelUot *bool // deprecated, still persisted
}

func encodeHTTP3(out *wire.Output, b *HTTP3, m mode) {
	out.WriteInt(http3Version)
	encodeEndpoint(out, &b.Base)
	out.Str(b.Username)
	out.Str(b.Password)
	out.Str(b.SNI)
	out.Str(b.Certificates)
	out.Str(b.PinnedPeerCertificateChainSha256)
	out.Str(b.PinnedPeerCertificatePublicKeySha256)
	out.Str(b.PinnedPeerCertificateSha256)
	out.Bool(b.AllowInsecure)
	out.Str(b.EchConfig)
	out.Str(b.MtlsCertificate)
	writePrivateKey(out, b.MtlsCertificatePrivateKey, m)
	out.Bool(b.TrustTunnelUot)
}

func decodeHTTP3(in *wire.Input, b *HTTP3) {
	version := in.ReadVersion("http3 layer", http3Version)
	decodeEndpoint(in, &b.Base)
	b.Username = in.Str()
	b.Password = in.Str()
	b.SNI = in.Str()
	b.Certificates = in.Str()
	b.PinnedPeerCertificateChainSha256 = in.Str()
	if version >= 1 {
		b.PinnedPeerCertificatePublicKeySha256 = in.Str()
		b.PinnedPeerCertificateSha256 = in.Str()
	}
	b.AllowInsecure = in.Bool()
	b.EchConfig = in.Str()
	if version == 0 {
		in.SkipString() // echDohServer
	}
	if version >= 1 {
		b.MtlsCertificate = in.Str()
		b.MtlsCertificatePrivateKey = in.Str()
	}
	if version >= 2 {
		b.TrustTunnelUot = in.Bool()
	}
}
