package bean

import (
	"github.com/e1732a364fed/vs_profile/wire"
)

const anyTLSVersion = 4

type AnyTLS struct {
	Base

	Password                 *string
	IdleSessionCheckInterval *int32
	IdleSessionTimeout       *int32
	MinIdleSession           *int32

	Security     *string
	SNI          *string
	ALPN         *string
	Certificates *string

	PinnedPeerCertificateChainSha256     *string
	PinnedPeerCertificatePublicKeySha256 *string
	PinnedPeerCertificateSha256          *string

	AllowInsecure   *bool
	UtlsFingerprint *string
	EchConfig       *string

	RealityPublicKey             *string
	RealityShortID               *string
	RealityFingerprint           *string
	RealityDisableX25519Mlkem768 *bool

	MtlsCertificate           *string
	MtlsCertificatePrivateKey *string
}

func encodeAnyTLS(out *wire.Output, b *AnyTLS, m mode) {
	out.WriteInt(anyTLSVersion)
	encodeEndpoint(out, &b.Base)
	out.Str(b.Password)
	out.Int32(b.IdleSessionCheckInterval)
	out.Int32(b.IdleSessionTimeout)
	out.Int32(b.MinIdleSession)
	out.Str(b.Security)
	out.Str(b.SNI)
	out.Str(b.ALPN)
	out.Str(b.Certificates)
	out.Str(b.PinnedPeerCertificateChainSha256)
	out.Str(b.PinnedPeerCertificatePublicKeySha256)
	out.Str(b.PinnedPeerCertificateSha256)
	out.Bool(b.AllowInsecure)
	out.Str(b.UtlsFingerprint)
	out.Str(b.EchConfig)
	out.Str(b.RealityPublicKey)
	out.Str(b.RealityShortID)
	out.Str(b.RealityFingerprint)
	out.Bool(b.RealityDisableX25519Mlkem768)
	out.Str(b.MtlsCertificate)
	writePrivateKey(out, b.MtlsCertificatePrivateKey, m)
}

func decodeAnyTLS(in *wire.Input, b *AnyTLS) {
	version := in.ReadVersion("anytls layer", anyTLSVersion)
	decodeEndpoint(in, &b.Base)
	b.Password = in.Str()
	if version >= 2 {
		b.IdleSessionCheckInterval = in.Int32()
		b.IdleSessionTimeout = in.Int32()
		b.MinIdleSession = in.Int32()
	}
	b.Security = in.Str()
	b.SNI = in.Str()
	b.ALPN = in.Str()
	b.Certificates = in.Str()
	b.PinnedPeerCertificateChainSha256 = in.Str()
	if version >= 4 {
		b.PinnedPeerCertificatePublicKeySha256 = in.Str()
		b.PinnedPeerCertificateSha256 = in.Str()
	}
	b.AllowInsecure = in.Bool()
	b.UtlsFingerprint = in.Str()
	b.EchConfig = in.Str()
	if version <= 2 {
		in.SkipString() // echDohServer
	}
	b.RealityPublicKey = in.Str()
	b.RealityShortID = in.Str()
	b.RealityFingerprint = in.Str()
	if version >= 1 {
		b.RealityDisableX25519Mlkem768 = in.Bool()
	}
	if version <= 2 {
		in.SkipBool() // realityReenableChacha20Poly1305
	}
	if version >= 4 {
		b.MtlsCertificate = in.Str()
		b.MtlsCertificatePrivateKey = in.Str()
	}
}
