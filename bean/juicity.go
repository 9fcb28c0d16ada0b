package bean

import (
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

const juicityVersion = 4

type Juicity struct {
	Base

	UUID          *string
	Password      *string
	SNI           *string
	AllowInsecure *bool
	Certificates  *string

	PinnedPeerCertificateChainSha256     *string
	PinnedPeerCertificatePublicKeySha256 *string
	PinnedPeerCertificateSha256          *string
	MtlsCertificate                      *string
	MtlsCertificatePrivateKey            *string
	EchConfig                            *string
}

func encodeJuicity(out *wire.Output, b *Juicity, m mode) {
	out.WriteInt(juicityVersion)
	encodeEndpoint(out, &b.Base)
	out.Str(b.UUID)
	out.Str(b.Password)
	out.Str(b.SNI)
	out.Bool(b.AllowInsecure)
	out.Str(b.Certificates)
	out.Str(b.PinnedPeerCertificateChainSha256)
	out.Str(b.PinnedPeerCertificatePublicKeySha256)
	out.Str(b.PinnedPeerCertificateSha256)
	out.Str(b.MtlsCertificate)
	writePrivateKey(out, b.MtlsCertificatePrivateKey, m)
	out.Str(b.EchConfig)
}

func decodeJuicity(in *wire.Input, b *Juicity) {
	version := in.ReadVersion("juicity layer", juicityVersion)
	decodeEndpoint(in, &b.Base)
	b.UUID = in.Str()
	b.Password = in.Str()
	b.SNI = in.Str()
	b.AllowInsecure = in.Bool()
	if version < 4 {
		in.SkipString() // congestionControl
	}
	if version >= 3 {
		b.Certificates = in.Str()
	}
	if version >= 2 {
		b.PinnedPeerCertificateChainSha256 = in.Str()
		// 版本2里 填了证书链指纹就意味着跳过证书校验
		if version == 2 && utils.Val(b.PinnedPeerCertificateChainSha256) != "" {
			b.AllowInsecure = utils.Ptr(true)
		}
	}
	if version >= 3 {
		b.PinnedPeerCertificatePublicKeySha256 = in.Str()
		b.PinnedPeerCertificateSha256 = in.Str()
		b.MtlsCertificate = in.Str()
		b.MtlsCertificatePrivateKey = in.Str()
		b.EchConfig = in.Str()
	}
}
