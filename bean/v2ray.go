package bean

import (
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

const v2rayVersion = 18

// StandardV2Ray is the transport and security layer shared by the v2ray family
// (SOCKS, HTTP, Shadowsocks, VMess, VLESS, Trojan).
type StandardV2Ray struct {
	Base

	UUID       *string
	Encryption *string // vmess 的 security, vless 的 encryption

	// transport, one of tcp kcp ws http httpupgrade splithttp quic grpc meek hysteria2
	Type         *string
	Host         *string
	Path         *string
	HeaderType   *string
	MKcpSeed     *string
	QuicSecurity *string
	QuicKey      *string

	GrpcServiceName       *string
	WsMaxEarlyData        *int32
	WsUseBrowserForwarder *bool
	EarlyDataHeaderName   *string
	MeekURL               *string

	Hy2DownMbps     *int32
	Hy2UpMbps       *int32
	Hy2Password     *string
	Hy2ObfsPassword *string

	// security, one of none tls reality
	Security                         *string
	SNI                              *string
	ALPN                             *string
	Certificates                     *string
	PinnedPeerCertificateChainSha256 *string
	AllowInsecure                    *bool
	UtlsFingerprint                  *string

	RealityPublicKey   *string
	RealityShortID     *string
	RealitySpiderX     *string
	RealityFingerprint *string

	PacketEncoding *string
}

type VMess struct {
	StandardV2Ray

	AlterID                         *int32
	ExperimentalAuthenticatedLength *bool
	ExperimentalNoTerminationSignal *bool
}

type VLESS struct {
	StandardV2Ray

	Flow *string
}

type Trojan struct {
	StandardV2Ray

	Password *string
}

const (
	SOCKSProtocol4 int32 = iota
	SOCKSProtocol4A
	SOCKSProtocol5
)

type SOCKS struct {
	StandardV2Ray

	Protocol *int32
	Username *string
	Password *string
}

type HTTP struct {
	StandardV2Ray

	Username *string
	Password *string
}

func encodeV2Ray(out *wire.Output, v *StandardV2Ray, owner Bean) {
	out.WriteInt(v2rayVersion)
	encodeEndpoint(out, &v.Base)

	out.Str(v.UUID)
	out.Str(v.Encryption)
	out.Str(v.Type)

	switch utils.Val(v.Type) {
	case "tcp":
		out.Str(v.HeaderType)
		out.Str(v.Host)
		out.Str(v.Path)
	case "kcp":
		out.Str(v.HeaderType)
		out.Str(v.MKcpSeed)
	case "ws":
		out.Str(v.Host)
		out.Str(v.Path)
		out.Int32(v.WsMaxEarlyData)
		out.Bool(v.WsUseBrowserForwarder)
		out.Str(v.EarlyDataHeaderName)
	case "http", "httpupgrade", "splithttp":
		out.Str(v.Host)
		out.Str(v.Path)
	case "quic":
		out.Str(v.HeaderType)
		out.Str(v.QuicSecurity)
		out.Str(v.QuicKey)
	case "grpc":
		out.Str(v.GrpcServiceName)
	case "meek":
		out.Str(v.MeekURL)
	case "hysteria2":
		out.Int32(v.Hy2DownMbps)
		out.Int32(v.Hy2UpMbps)
		out.Str(v.Hy2ObfsPassword)
		out.Str(v.Hy2Password)
	}

	out.Str(v.Security)

	switch utils.Val(v.Security) {
	case "tls":
		out.Str(v.SNI)
		out.Str(v.ALPN)
		out.Str(v.Certificates)
		out.Str(v.PinnedPeerCertificateChainSha256)
		out.Bool(v.AllowInsecure)
		out.Str(v.UtlsFingerprint)
	case "reality":
		out.Str(v.SNI)
		out.Str(v.RealityPublicKey)
		out.Str(v.RealityShortID)
		out.Str(v.RealitySpiderX)
		out.Str(v.RealityFingerprint)
	}

	switch t := owner.(type) {
	case *VMess:
		out.Int32(t.AlterID)
		out.Bool(t.ExperimentalAuthenticatedLength)
		out.Bool(t.ExperimentalNoTerminationSignal)
	case *VLESS:
		out.Str(t.Flow)
	}

	out.Str(v.PacketEncoding)
}

func decodeV2Ray(in *wire.Input, v *StandardV2Ray, owner Bean) {
	version := in.ReadVersion("v2ray layer", v2rayVersion)
	decodeEndpoint(in, &v.Base)

	v.UUID = in.Str()
	v.Encryption = in.Str()
	v.Type = in.Str()
	if in.Err() != nil {
		return
	}

	switch *v.Type {
	case "":
	case "tcp":
		v.HeaderType = in.Str()
		v.Host = in.Str()
		v.Path = in.Str()
	case "kcp":
		v.HeaderType = in.Str()
		v.MKcpSeed = in.Str()
	case "ws":
		v.Host = in.Str()
		v.Path = in.Str()
		v.WsMaxEarlyData = in.Int32()
		v.WsUseBrowserForwarder = in.Bool()
		if version >= 2 {
			v.EarlyDataHeaderName = in.Str()
		}
	case "http", "h2":
		v.Host = in.Str()
		v.Path = in.Str()

	// 16 之前这几种的解码是连在一起的, 后面的字段在前面的类型里也会被读到
	case "quic":
		v.HeaderType = in.Str()
		v.QuicSecurity = in.Str()
		v.QuicKey = in.Str()
		if version >= 16 {
			break
		}
		fallthrough
	case "grpc":
		v.GrpcServiceName = in.Str()
		if version >= 8 && version <= 12 {
			in.SkipString() // grpcMode
		}
		if version >= 16 {
			break
		}
		fallthrough
	case "meek":
		if version >= 10 {
			v.MeekURL = in.Str()
		}
		if version >= 16 {
			break
		}
		fallthrough
	case "httpupgrade":
		if version >= 12 {
			v.Host = in.Str()
			v.Path = in.Str()
		}
		if version >= 16 {
			break
		}
		fallthrough
	case "hysteria2":
		if version >= 14 {
			v.Hy2DownMbps = in.Int32()
			v.Hy2UpMbps = in.Int32()
			v.Hy2ObfsPassword = in.Str()
		}
		if version >= 15 {
			v.Hy2Password = in.Str()
		}

	case "splithttp":
		if version >= 18 {
			v.Host = in.Str()
			v.Path = in.Str()
		}
	default:
		in.Fail(wire.UnknownDiscriminator("v2ray transport type", *v.Type))
		return
	}

	v.Security = in.Str()
	if in.Err() != nil {
		return
	}

	switch *v.Security {
	case "", "none":
	case "tls":
		v.SNI = in.Str()
		v.ALPN = in.Str()
		if version >= 1 {
			v.Certificates = in.Str()
			v.PinnedPeerCertificateChainSha256 = in.Str()
		}
		if version >= 3 {
			v.AllowInsecure = in.Bool()
		}
		if version >= 9 {
			v.UtlsFingerprint = in.Str()
		}
	case "xtls":
		// xtls 已移除, 读成 tls
		v.Security = utils.Ptr("tls")
		v.SNI = in.Str()
		v.ALPN = in.Str()
		in.SkipString() // flow
		if version >= 16 {
			break
		}
		fallthrough
	case "reality":
		if version >= 11 {
			v.SNI = in.Str()
			v.RealityPublicKey = in.Str()
			v.RealityShortID = in.Str()
			v.RealitySpiderX = in.Str()
			v.RealityFingerprint = in.Str()
		}
	default:
		in.Fail(wire.UnknownDiscriminator("v2ray security", *v.Security))
		return
	}

	switch t := owner.(type) {
	case *VMess:
		if version != 4 && version < 6 {
			t.AlterID = in.Int32()
		}
		if version >= 4 {
			if version >= 17 {
				t.AlterID = in.Int32()
			}
			t.ExperimentalAuthenticatedLength = in.Bool()
			t.ExperimentalNoTerminationSignal = in.Bool()
		}
	case *VLESS:
		if version >= 11 {
			t.Flow = in.Str()
		}
	}

	if version >= 7 && version <= 15 {
		switch in.ReadInt() {
		case 0:
			v.PacketEncoding = utils.Ptr("none")
		case 1:
			v.PacketEncoding = utils.Ptr("packet")
		case 2:
			v.PacketEncoding = utils.Ptr("xudp")
		}
	}
	if version >= 16 {
		v.PacketEncoding = in.Str()
	}
}

// vmess 与 vless 没有自己的层, 直接就是 v2ray 层

func encodeVMess(out *wire.Output, b *VMess) { encodeV2Ray(out, &b.StandardV2Ray, b) }
func decodeVMess(in *wire.Input, b *VMess)   { decodeV2Ray(in, &b.StandardV2Ray, b) }
func encodeVLESS(out *wire.Output, b *VLESS) { encodeV2Ray(out, &b.StandardV2Ray, b) }
func decodeVLESS(in *wire.Input, b *VLESS)   { decodeV2Ray(in, &b.StandardV2Ray, b) }

const trojanVersion = 2

func encodeTrojan(out *wire.Output, b *Trojan) {
	out.WriteInt(trojanVersion)
	encodeV2Ray(out, &b.StandardV2Ray, b)
	out.Str(b.Password)
}

// 2 之前trojan自带一个固定tls的短布局, 不含传输层.
func decodeTrojan(in *wire.Input, b *Trojan) {
	version := in.ReadVersion("trojan layer", trojanVersion)
	if version >= 2 {
		decodeV2Ray(in, &b.StandardV2Ray, b)
		b.Password = in.Str()
		return
	}
	decodeEndpoint(in, &b.Base)
	b.Password = in.Str()
	b.SNI = in.Str()
	b.ALPN = in.Str()
	if version >= 1 {
		b.AllowInsecure = in.Bool()
	}
	b.Security = utils.Ptr("tls")
}

const socksVersion = 2

func encodeSOCKS(out *wire.Output, b *SOCKS) {
	out.WriteInt(socksVersion)
	encodeV2Ray(out, &b.StandardV2Ray, b)
	out.Int32(b.Protocol)
	out.Str(b.Username)
	out.Str(b.Password)
}

func decodeSOCKS(in *wire.Input, b *SOCKS) {
	version := in.ReadVersion("socks layer", socksVersion)
	if version >= 2 {
		decodeV2Ray(in, &b.StandardV2Ray, b)
	} else {
		decodeEndpoint(in, &b.Base)
	}
	b.Protocol = in.Int32()
	b.Username = in.Str()
	b.Password = in.Str()
	if version == 1 {
		if in.ReadBool() { // tls
			b.Security = utils.Ptr("tls")
		}
	}
}

const httpVersion = 1

func encodeHTTP(out *wire.Output, b *HTTP) {
	out.WriteInt(httpVersion)
	encodeV2Ray(out, &b.StandardV2Ray, b)
	out.Str(b.Username)
	out.Str(b.Password)
}

func decodeHTTP(in *wire.Input, b *HTTP) {
	version := in.ReadVersion("http layer", httpVersion)
	if version >= 1 {
		decodeV2Ray(in, &b.StandardV2Ray, b)
		b.Username = in.Str()
		b.Password = in.Str()
		return
	}
	decodeEndpoint(in, &b.Base)
	b.Username = in.Str()
	b.Password = in.Str()
	if in.ReadBool() { // tls
		b.Security = utils.Ptr("tls")
	}
	b.SNI = in.Str()
}
