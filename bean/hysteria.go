package bean

import (
	"strconv"

	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

const hysteriaVersion = 7

const (
	HysteriaAuthNone int32 = iota
	HysteriaAuthString
	HysteriaAuthBase64
)

const (
	HysteriaProtocolUDP int32 = iota
	HysteriaProtocolFakeTCP
	HysteriaProtocolWechatVideo
)

type Hysteria struct {
	Base

	AuthPayloadType *int32
	AuthPayload     *string
	Protocol        *int32
	Obfuscation     *string
	SNI             *string
	ALPN            *string
	CaText          *string

	UploadMbps   *int64
	DownloadMbps *int64

	AllowInsecure           *bool
	StreamReceiveWindow     *int32
	ConnectionReceiveWindow *int32
	DisableMtuDiscovery     *bool

	ServerPorts *string
	HopInterval *int64
}

func encodeHysteria(out *wire.Output, b *Hysteria) {
	out.WriteInt(hysteriaVersion)
	encodeEndpoint(out, &b.Base)
	out.Int32(b.AuthPayloadType)
	out.Str(b.AuthPayload)
	out.Int32(b.Protocol)
	out.Str(b.Obfuscation)
	out.Str(b.SNI)
	out.Str(b.ALPN)
	out.Int64(b.UploadMbps)
	out.Int64(b.DownloadMbps)
	out.Bool(b.AllowInsecure)
	out.Str(b.CaText)
	out.Int32(b.StreamReceiveWindow)
	out.Int32(b.ConnectionReceiveWindow)
	out.Bool(b.DisableMtuDiscovery)
	out.Str(b.ServerPorts)
	out.Int64(b.HopInterval)
}

func decodeHysteria(in *wire.Input, b *Hysteria) {
	version := in.ReadVersion("hysteria layer", hysteriaVersion)
	decodeEndpoint(in, &b.Base)
	b.AuthPayloadType = in.Int32()
	b.AuthPayload = in.Str()
	if version >= 3 {
		b.Protocol = in.Int32()
	}
	b.Obfuscation = in.Str()
	b.SNI = in.Str()
	if version >= 2 {
		b.ALPN = in.Str()
	}

	//6及以前是int
	if version <= 6 {
		b.UploadMbps = in.WidenInt()
		b.DownloadMbps = in.WidenInt()
	} else {
		b.UploadMbps = in.Int64()
		b.DownloadMbps = in.Int64()
	}
	b.AllowInsecure = in.Bool()

	if version >= 1 {
		b.CaText = in.Str()
		b.StreamReceiveWindow = in.Int32()
		b.ConnectionReceiveWindow = in.Int32()
		if version != 4 {
			b.DisableMtuDiscovery = in.Bool()
		}
	}

	if version < 6 {
		if b.ServerPort != nil {
			b.ServerPorts = utils.Ptr(strconv.Itoa(int(*b.ServerPort)))
		}
		return
	}
	b.ServerPorts = in.Str()
	if version == 6 {
		b.HopInterval = in.WidenInt()
	} else {
		b.HopInterval = in.Int64()
	}
}

const hysteria2Version = 4

type Hysteria2 struct {
	Base

	Auth *string
	Obfs *string
	SNI  *string

	PinnedPeerCertificateSha256          *string
	PinnedPeerCertificatePublicKeySha256 *string
	PinnedPeerCertificateChainSha256     *string
	Certificates                         *string
	AllowInsecure                        *bool

	UploadMbps   *int64
	DownloadMbps *int64

	DisableMtuDiscovery     *bool
	InitStreamReceiveWindow *int32
	MaxStreamReceiveWindow  *int32
	InitConnReceiveWindow   *int32
	MaxConnReceiveWindow    *int32

	ServerPorts *string
	HopInterval *int64

	EchConfig                 *string
	MtlsCertificate           *string
	MtlsCertificatePrivateKey *string
}

func encodeHysteria2(out *wire.Output, b *Hysteria2, m mode) {
	out.WriteInt(hysteria2Version)
	encodeEndpoint(out, &b.Base)
	out.Str(b.Auth)
	out.Str(b.Obfs)
	out.Str(b.SNI)
	out.Str(b.PinnedPeerCertificateSha256)
	out.Str(b.PinnedPeerCertificatePublicKeySha256)
	out.Str(b.PinnedPeerCertificateChainSha256)
	out.Str(b.Certificates)
	out.Bool(b.AllowInsecure)
	out.Int64(b.UploadMbps)
	out.Int64(b.DownloadMbps)
	out.Bool(b.DisableMtuDiscovery)
	out.Int32(b.InitStreamReceiveWindow)
	out.Int32(b.MaxStreamReceiveWindow)
	out.Int32(b.InitConnReceiveWindow)
	out.Int32(b.MaxConnReceiveWindow)
	out.Str(b.ServerPorts)
	out.Int64(b.HopInterval)
	out.Str(b.EchConfig)
	out.Str(b.MtlsCertificate)
	writePrivateKey(out, b.MtlsCertificatePrivateKey, m)
}

func decodeHysteria2(in *wire.Input, b *Hysteria2) {
	version := in.ReadVersion("hysteria2 layer", hysteria2Version)
	decodeEndpoint(in, &b.Base)
	b.Auth = in.Str()
	b.Obfs = in.Str()
	b.SNI = in.Str()
	b.PinnedPeerCertificateSha256 = in.Str()
	if version >= 4 {
		b.PinnedPeerCertificatePublicKeySha256 = in.Str()
		b.PinnedPeerCertificateChainSha256 = in.Str()
	}
	b.Certificates = in.Str()
	b.AllowInsecure = in.Bool()

	if version <= 2 {
		b.UploadMbps = in.WidenInt()
		b.DownloadMbps = in.WidenInt()
	} else {
		b.UploadMbps = in.Int64()
		b.DownloadMbps = in.Int64()
	}
	b.DisableMtuDiscovery = in.Bool()
	b.InitStreamReceiveWindow = in.Int32()
	b.MaxStreamReceiveWindow = in.Int32()
	b.InitConnReceiveWindow = in.Int32()
	b.MaxConnReceiveWindow = in.Int32()

	if version < 2 {
		if b.ServerPort != nil {
			b.ServerPorts = utils.Ptr(strconv.Itoa(int(*b.ServerPort)))
		}
	} else {
		b.ServerPorts = in.Str()
		if version == 2 {
			b.HopInterval = in.WidenInt()
		} else {
			b.HopInterval = in.Int64()
		}
	}

	if version >= 4 {
		b.EchConfig = in.Str()
		b.MtlsCertificate = in.Str()
		b.MtlsCertificatePrivateKey = in.Str()
	}
}
