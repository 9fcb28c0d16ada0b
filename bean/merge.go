package bean

import (
	"github.com/e1732a364fed/vs_profile/utils"
)

// Merge carries the locally tuned settings of source over to target, which must be of
// the same kind; otherwise nothing happens. Only target is modified.
//
// Three kinds of rule apply: a trust flag set on source is set on target, a certificate
// or pin that target lacks is taken from source, and the tuning knobs listed per kind
// are copied unconditionally.
func Merge(source, target Bean) {
	if source == nil || target == nil || source.Kind() != target.Kind() {
		return
	}

	switch s := source.(type) {
	case *SOCKS:
		mergeV2Ray(&s.StandardV2Ray, &target.(*SOCKS).StandardV2Ray)
	case *HTTP:
		mergeV2Ray(&s.StandardV2Ray, &target.(*HTTP).StandardV2Ray)
	case *VLESS:
		mergeV2Ray(&s.StandardV2Ray, &target.(*VLESS).StandardV2Ray)
	case *Trojan:
		mergeV2Ray(&s.StandardV2Ray, &target.(*Trojan).StandardV2Ray)
	case *VMess:
		t := target.(*VMess)
		mergeV2Ray(&s.StandardV2Ray, &t.StandardV2Ray)
		t.ExperimentalAuthenticatedLength = utils.ClonePtr(s.ExperimentalAuthenticatedLength)
		t.ExperimentalNoTerminationSignal = utils.ClonePtr(s.ExperimentalNoTerminationSignal)

	case *Shadowsocks:
		// 不继承 v2ray 层的规则
		t := target.(*Shadowsocks)
		t.ExperimentReducedIvHeadEntropy = utils.ClonePtr(s.ExperimentReducedIvHeadEntropy)
		t.SingUoT = utils.ClonePtr(s.SingUoT)

	case *Hysteria:
		t := target.(*Hysteria)
		escalate(s.AllowInsecure, &t.AllowInsecure)
		t.UploadMbps = utils.ClonePtr(s.UploadMbps)
		t.DownloadMbps = utils.ClonePtr(s.DownloadMbps)
		t.DisableMtuDiscovery = utils.ClonePtr(s.DisableMtuDiscovery)
		t.StreamReceiveWindow = utils.ClonePtr(s.StreamReceiveWindow)
		t.ConnectionReceiveWindow = utils.ClonePtr(s.ConnectionReceiveWindow)
		t.HopInterval = utils.ClonePtr(s.HopInterval)
		t.CaText = utils.ClonePtr(s.CaText)

	case *Hysteria2:
		t := target.(*Hysteria2)
		escalate(s.AllowInsecure, &t.AllowInsecure)
		t.UploadMbps = utils.ClonePtr(s.UploadMbps)
		t.DownloadMbps = utils.ClonePtr(s.DownloadMbps)
		t.DisableMtuDiscovery = utils.ClonePtr(s.DisableMtuDiscovery)
		fillIfBlank(s.PinnedPeerCertificateSha256, &t.PinnedPeerCertificateSha256)
		fillIfBlank(s.PinnedPeerCertificatePublicKeySha256, &t.PinnedPeerCertificatePublicKeySha256)
		fillIfBlank(s.PinnedPeerCertificateChainSha256, &t.PinnedPeerCertificateChainSha256)
		fillIfBlank(s.Certificates, &t.Certificates)
		t.EchConfig = utils.ClonePtr(s.EchConfig)
		t.HopInterval = utils.ClonePtr(s.HopInterval)
		t.InitConnReceiveWindow = utils.ClonePtr(s.InitConnReceiveWindow)
		t.InitStreamReceiveWindow = utils.ClonePtr(s.InitStreamReceiveWindow)
		t.MaxConnReceiveWindow = utils.ClonePtr(s.MaxConnReceiveWindow)
		t.MaxStreamReceiveWindow = utils.ClonePtr(s.MaxStreamReceiveWindow)

	case *Tuic5:
		t := target.(*Tuic5)
		fillIfBlank(s.Certificates, &t.Certificates)
		t.ZeroRTTHandshake = utils.ClonePtr(s.ZeroRTTHandshake)
		escalate(s.AllowInsecure, &t.AllowInsecure)
		fillIfBlank(s.PinnedPeerCertificateChainSha256, &t.PinnedPeerCertificateChainSha256)
		fillIfBlank(s.PinnedPeerCertificatePublicKeySha256, &t.PinnedPeerCertificatePublicKeySha256)
		fillIfBlank(s.PinnedPeerCertificateSha256, &t.PinnedPeerCertificateSha256)
		t.EchConfig = utils.ClonePtr(s.EchConfig)
		t.SingUDPOverStream = utils.ClonePtr(s.SingUDPOverStream)

	case *Juicity:
		t := target.(*Juicity)
		escalate(s.AllowInsecure, &t.AllowInsecure)
		fillIfBlank(s.Certificates, &t.Certificates)
		fillIfBlank(s.PinnedPeerCertificateChainSha256, &t.PinnedPeerCertificateChainSha256)
		fillIfBlank(s.PinnedPeerCertificatePublicKeySha256, &t.PinnedPeerCertificatePublicKeySha256)
		fillIfBlank(s.PinnedPeerCertificateSha256, &t.PinnedPeerCertificateSha256)

	case *AnyTLS:
		t := target.(*AnyTLS)
		escalate(s.AllowInsecure, &t.AllowInsecure)
		fillIfBlank(s.Certificates, &t.Certificates)
		fillIfBlank(s.PinnedPeerCertificateChainSha256, &t.PinnedPeerCertificateChainSha256)
		fillIfBlank(s.PinnedPeerCertificatePublicKeySha256, &t.PinnedPeerCertificatePublicKeySha256)
		fillIfBlank(s.PinnedPeerCertificateSha256, &t.PinnedPeerCertificateSha256)
		t.UtlsFingerprint = utils.ClonePtr(s.UtlsFingerprint)
		t.EchConfig = utils.ClonePtr(s.EchConfig)
		t.RealityFingerprint = utils.ClonePtr(s.RealityFingerprint)
		t.RealityDisableX25519Mlkem768 = utils.ClonePtr(s.RealityDisableX25519Mlkem768)

	case *HTTP3:
		t := target.(*HTTP3)
		escalate(s.AllowInsecure, &t.AllowInsecure)
		fillIfBlank(s.Certificates, &t.Certificates)
		fillIfBlank(s.PinnedPeerCertificateChainSha256, &t.PinnedPeerCertificateChainSha256)
		fillIfBlank(s.PinnedPeerCertificatePublicKeySha256, &t.PinnedPeerCertificatePublicKeySha256)
		fillIfBlank(s.PinnedPeerCertificateSha256, &t.PinnedPeerCertificateSha256)
		t.EchConfig = utils.ClonePtr(s.EchConfig)
		t.TrustTunnelUot = utils.ClonePtr(s.TrustTunnelUot)

	case *ShadowTLS:
		t := target.(*ShadowTLS)
		escalate(s.AllowInsecure, &t.AllowInsecure)
		t.Certificates = utils.ClonePtr(s.Certificates)

	case *TrustTunnel:
		t := target.(*TrustTunnel)
		fillIfBlank(s.Certificate, &t.Certificate)
		t.UtlsFingerprint = utils.ClonePtr(s.UtlsFingerprint)
	}
}

func mergeV2Ray(s, t *StandardV2Ray) {
	escalate(s.WsUseBrowserForwarder, &t.WsUseBrowserForwarder)
	escalate(s.AllowInsecure, &t.AllowInsecure)
}

// 只会把 target 放宽为 true, 从不收紧
func escalate(source *bool, target **bool) {
	if utils.Val(source) {
		*target = utils.Ptr(true)
	}
}

// target 缺失时总是取 source; target 为空串时只在 source 非空时取
func fillIfBlank(source *string, target **string) {
	if *target == nil || (**target == "" && utils.Val(source) != "") {
		*target = utils.ClonePtr(source)
	}
}
