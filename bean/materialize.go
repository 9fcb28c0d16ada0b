package bean

import (
	"strings"

	"github.com/e1732a364fed/vs_profile/utils"
)

// Materialize fills every absent attribute of b with its default and derives the final
// address. Calling it again changes nothing.
func Materialize(b Bean) {
	switch v := b.(type) {
	case *SOCKS:
		utils.SetDefault(&v.Protocol, SOCKSProtocol5)
		utils.SetDefault(&v.Username, "")
		utils.SetDefault(&v.Password, "")
		materializeV2Ray(&v.StandardV2Ray)
	case *HTTP:
		utils.SetDefault(&v.Username, "")
		utils.SetDefault(&v.Password, "")
		materializeV2Ray(&v.StandardV2Ray)
	case *Shadowsocks:
		materializeV2Ray(&v.StandardV2Ray)
		utils.SetDefault(&v.Method, "none")
		utils.SetDefault(&v.Password, "")
		utils.SetDefault(&v.Plugin, "")
		utils.SetDefault(&v.ExperimentReducedIvHeadEntropy, false)
		utils.SetDefault(&v.SingUoT, false)
	case *VMess:
		utils.SetDefault(&v.AlterID, 0)
		utils.SetDefault(&v.ExperimentalAuthenticatedLength, false)
		utils.SetDefault(&v.ExperimentalNoTerminationSignal, false)
		utils.SetDefault(&v.Encryption, "auto")
		materializeV2Ray(&v.StandardV2Ray)
	case *VLESS:
		utils.SetDefault(&v.Flow, "")
		utils.SetDefault(&v.Encryption, "none")
		materializeV2Ray(&v.StandardV2Ray)
	case *Trojan:
		utils.SetDefault(&v.Password, "")
		if isBlank(v.Security) {
			v.Security = utils.Ptr("tls")
		}
		materializeV2Ray(&v.StandardV2Ray)
	case *Hysteria:
		materializeBase(&v.Base)
		utils.SetDefault(&v.AuthPayloadType, HysteriaAuthNone)
		utils.SetDefault(&v.AuthPayload, "")
		utils.SetDefault(&v.Protocol, HysteriaProtocolUDP)
		utils.SetDefault(&v.Obfuscation, "")
		utils.SetDefault(&v.SNI, "")
		utils.SetDefault(&v.ALPN, "")
		utils.SetDefault(&v.CaText, "")
		utils.SetDefault(&v.UploadMbps, 10)
		utils.SetDefault(&v.DownloadMbps, 50)
		utils.SetDefault(&v.AllowInsecure, false)
		utils.SetDefault(&v.StreamReceiveWindow, 0)
		utils.SetDefault(&v.ConnectionReceiveWindow, 0)
		utils.SetDefault(&v.DisableMtuDiscovery, false)
		utils.SetDefault(&v.ServerPorts, "1080")
		utils.SetDefault(&v.HopInterval, 0)
	case *Hysteria2:
		materializeBase(&v.Base)
		setEmpty(&v.Auth, &v.Obfs, &v.SNI,
			&v.PinnedPeerCertificateSha256, &v.PinnedPeerCertificatePublicKeySha256,
			&v.PinnedPeerCertificateChainSha256, &v.Certificates,
			&v.EchConfig, &v.MtlsCertificate, &v.MtlsCertificatePrivateKey)
		utils.SetDefault(&v.AllowInsecure, false)
		utils.SetDefault(&v.UploadMbps, 0)
		utils.SetDefault(&v.DownloadMbps, 0)
		utils.SetDefault(&v.DisableMtuDiscovery, false)
		utils.SetDefault(&v.InitStreamReceiveWindow, 0)
		utils.SetDefault(&v.MaxStreamReceiveWindow, 0)
		utils.SetDefault(&v.InitConnReceiveWindow, 0)
		utils.SetDefault(&v.MaxConnReceiveWindow, 0)
		utils.SetDefault(&v.ServerPorts, "1080")
		utils.SetDefault(&v.HopInterval, 0)
	case *Tuic5:
		materializeBase(&v.Base)
		setEmpty(&v.UUID, &v.Password, &v.Certificates, &v.ALPN, &v.SNI, &v.EchConfig,
			&v.PinnedPeerCertificateChainSha256, &v.PinnedPeerCertificatePublicKeySha256,
			&v.PinnedPeerCertificateSha256, &v.MtlsCertificate, &v.MtlsCertificatePrivateKey)
		utils.SetDefault(&v.UDPRelayMode, "native")
		utils.SetDefault(&v.CongestionControl, "cubic")
		utils.SetDefault(&v.DisableSNI, false)
		utils.SetDefault(&v.ZeroRTTHandshake, false)
		utils.SetDefault(&v.AllowInsecure, false)
		utils.SetDefault(&v.SingUDPOverStream, false)
	case *Juicity:
		materializeBase(&v.Base)
		setEmpty(&v.UUID, &v.Password, &v.SNI, &v.Certificates,
			&v.PinnedPeerCertificateChainSha256, &v.PinnedPeerCertificatePublicKeySha256,
			&v.PinnedPeerCertificateSha256, &v.MtlsCertificate, &v.MtlsCertificatePrivateKey, &v.EchConfig)
		utils.SetDefault(&v.AllowInsecure, false)
	case *AnyTLS:
		materializeBase(&v.Base)
		setEmpty(&v.Password, &v.SNI, &v.ALPN, &v.Certificates,
			&v.PinnedPeerCertificateChainSha256, &v.PinnedPeerCertificatePublicKeySha256,
			&v.PinnedPeerCertificateSha256, &v.UtlsFingerprint, &v.EchConfig,
			&v.RealityPublicKey, &v.RealityShortID, &v.MtlsCertificate, &v.MtlsCertificatePrivateKey)
		utils.SetDefault(&v.IdleSessionCheckInterval, 30)
		utils.SetDefault(&v.IdleSessionTimeout, 30)
		utils.SetDefault(&v.MinIdleSession, 0)
		utils.SetDefault(&v.Security, "tls")
		utils.SetDefault(&v.AllowInsecure, false)
		utils.SetDefault(&v.RealityFingerprint, "chrome")
		utils.SetDefault(&v.RealityDisableX25519Mlkem768, false)
	case *ShadowTLS:
		materializeBase(&v.Base)
		setEmpty(&v.SNI, &v.Password, &v.ALPN, &v.Certificates)
		utils.SetDefault(&v.AllowInsecure, false)
		utils.SetDefault(&v.ProtocolVersion, ShadowTLSProtocol2)
	case *HTTP3:
		materializeBase(&v.Base)
		setEmpty(&v.Username, &v.Password, &v.SNI, &v.Certificates,
			&v.PinnedPeerCertificateChainSha256, &v.PinnedPeerCertificatePublicKeySha256,
			&v.PinnedPeerCertificateSha256, &v.EchConfig, &v.MtlsCertificate, &v.MtlsCertificatePrivateKey)
		utils.SetDefault(&v.AllowInsecure, false)
		utils.SetDefault(&v.TrustTunnelUot, false)
	case *ShadowQUIC:
		materializeBase(&v.Base)
		setEmpty(&v.Username, &v.Password, &v.SNI, &v.ALPN)
		utils.SetDefault(&v.CongestionControl, "bbr")
		utils.SetDefault(&v.ZeroRTT, false)
		utils.SetDefault(&v.UDPOverStream, false)
		utils.SetDefault(&v.DisableALPN, false)
		utils.SetDefault(&v.UseSunnyQUIC, false)
	case *TrustTunnel:
		materializeBase(&v.Base)
		setEmpty(&v.Username, &v.Password, &v.SNI, &v.Certificate, &v.UtlsFingerprint)
		utils.SetDefault(&v.Protocol, "https")
	case *Balancer:
		materializeBase(&v.Base)
		utils.SetDefault(&v.Type, BalancerTypeList)
		setEmpty(&v.Strategy, &v.ProbeURL, &v.NameFilter, &v.NameFilter1)
		if v.Proxies == nil {
			v.Proxies = []int64{}
		}
		utils.SetDefault(&v.GroupID, 0)
		utils.SetDefault(&v.ProbeInterval, 300)
	}
}

func materializeBase(b *Base) {
	utils.SetDefault(&b.ServerAddress, "127.0.0.1")
	utils.SetDefault(&b.ServerPort, 1080)
	utils.SetDefault(&b.Name, "")
	utils.SetDefault(&b.ExtraType, ExtraTypeNone)
	utils.SetDefault(&b.ProfileID, "")

	b.FinalAddress = *b.ServerAddress
	b.FinalPort = *b.ServerPort
}

func materializeV2Ray(v *StandardV2Ray) {
	materializeBase(&v.Base)

	if isBlank(v.Type) {
		v.Type = utils.Ptr("tcp")
	} else if *v.Type == "h2" {
		v.Type = utils.Ptr("http")
	}

	blankToEmpty(&v.UUID, &v.Host, &v.Path, &v.HeaderType, &v.MKcpSeed, &v.QuicSecurity, &v.QuicKey,
		&v.MeekURL, &v.Security, &v.SNI, &v.ALPN, &v.GrpcServiceName, &v.UtlsFingerprint,
		&v.RealityPublicKey, &v.RealityShortID, &v.RealitySpiderX, &v.Hy2Password, &v.Hy2ObfsPassword)
	setEmpty(&v.Encryption, &v.Certificates, &v.PinnedPeerCertificateChainSha256,
		&v.EarlyDataHeaderName, &v.PacketEncoding)

	if isBlank(v.RealityFingerprint) {
		v.RealityFingerprint = utils.Ptr("chrome")
	}
	utils.SetDefault(&v.WsMaxEarlyData, 0)
	utils.SetDefault(&v.WsUseBrowserForwarder, false)
	utils.SetDefault(&v.AllowInsecure, false)
	utils.SetDefault(&v.Hy2DownMbps, 0)
	utils.SetDefault(&v.Hy2UpMbps, 0)
}

// 空白 (nil 或只有空白字符)
func isBlank(p *string) bool {
	return p == nil || strings.TrimSpace(*p) == ""
}

func setEmpty(ps ...**string) {
	for _, p := range ps {
		utils.SetDefault(p, "")
	}
}

func blankToEmpty(ps ...**string) {
	for _, p := range ps {
		if isBlank(*p) {
			*p = utils.Ptr("")
		}
	}
}
