package bean

import (
	"errors"
	"reflect"
	"testing"

	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

// fx 用于手写历史版本的字节布局
type fx struct{ *wire.Output }

func newFx() fx { return fx{wire.NewOutput()} }

func (f fx) i(v int32) fx { f.WriteInt(v); return f }
func (f fx) l(v int64) fx { f.WriteLong(v); return f }
func (f fx) b(v bool) fx  { f.WriteBool(v); return f }

func (f fx) s(ss ...string) fx {
	for _, s := range ss {
		f.WriteString(s)
	}
	return f
}

func (f fx) ep() fx { return f.s("1.2.3.4").i(8388) }

func (f fx) extra(name string) fx { return f.i(2).s(name).i(ExtraTypeNone) }

// v2ray 层的头部, 之后由调用者写 type 对应的字段
func (f fx) v2(version int32, typ string) fx {
	return f.i(version).ep().s("uuid-1", "", typ)
}

func mustDecode(t *testing.T, k Kind, f fx) Bean {
	t.Helper()
	b, err := Decode(k, f.Bytes())
	if err != nil {
		t.Fatalf("decode %s: %v", k, err)
	}
	return b
}

func expectErr(t *testing.T, k Kind, f fx, target error) {
	t.Helper()
	b, err := Decode(k, f.Bytes())
	if !errors.Is(err, target) {
		t.Fatalf("decode %s: want %v, got %v (%v)", k, target, err, b)
	}
}

func expect(t *testing.T, what string, got, want any) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("%s: got %#v, want %#v", what, got, want)
	}
}

func TestGoldenShadowsocks(t *testing.T) {
	body := func(v int32) fx {
		return newFx().i(v).ep().s("aes-256-gcm", "pw", "")
	}

	b := mustDecode(t, KindShadowsocks, body(0).extra("ss0")).(*Shadowsocks)
	expect(t, "v0 name", utils.Val(b.Name), "ss0")
	expect(t, "v0 port", utils.Val(b.ServerPort), int32(8388))
	expect(t, "v0 reducedIv", utils.Val(b.ExperimentReducedIvHeadEntropy), false)
	expect(t, "v0 type", utils.Val(b.Type), "tcp")
	expect(t, "v0 final", b.FinalAddress, "1.2.3.4")

	b = mustDecode(t, KindShadowsocks, body(1).b(true).extra("ss1")).(*Shadowsocks)
	expect(t, "v1 reducedIv", utils.Val(b.ExperimentReducedIvHeadEntropy), true)

	// 2 and 3 carry removed bools that must be skipped
	b = mustDecode(t, KindShadowsocks, body(2).b(true).b(true).extra("ss2")).(*Shadowsocks)
	expect(t, "v2 name", utils.Val(b.Name), "ss2")
	expect(t, "v2 singUoT", utils.Val(b.SingUoT), false)

	b = mustDecode(t, KindShadowsocks, body(3).b(false).b(true).b(true).extra("ss3")).(*Shadowsocks)
	expect(t, "v3 name", utils.Val(b.Name), "ss3")
	expect(t, "v3 reducedIv", utils.Val(b.ExperimentReducedIvHeadEntropy), false)

	b = mustDecode(t, KindShadowsocks, body(4).b(true).extra("ss4")).(*Shadowsocks)
	expect(t, "v4 name", utils.Val(b.Name), "ss4")

	f := newFx().i(5).v2(18, "tcp").s("http", "h.com", "/").s("").s("").
		s("aes-128-gcm", "pw", "obfs-local;obfs=http").b(true).extra("ss5")
	b = mustDecode(t, KindShadowsocks, f).(*Shadowsocks)
	expect(t, "v5 uuid", utils.Val(b.UUID), "uuid-1")
	expect(t, "v5 header", utils.Val(b.HeaderType), "http")
	expect(t, "v5 plugin", b.PluginName(), "obfs-local")
	expect(t, "v5 singUoT", utils.Val(b.SingUoT), false)
	expect(t, "v5 name", utils.Val(b.Name), "ss5")

	f = newFx().i(6).v2(18, "tcp").s("", "", "").s("").s("").
		s("none", "", "").b(false).b(true).extra("ss6")
	b = mustDecode(t, KindShadowsocks, f).(*Shadowsocks)
	expect(t, "v6 singUoT", utils.Val(b.SingUoT), true)
}

func TestGoldenV2RayLayer(t *testing.T) {
	// 1: tls without allowInsecure and utls, vmess alterId before any flag
	f := newFx().v2(1, "tcp").s("none", "h.com", "/p").
		s("tls").s("sni.com", "h2").s("CERT", "CHAIN").
		i(64).extra("v1")
	vm := mustDecode(t, KindVMess, f).(*VMess)
	expect(t, "v1 alterId", utils.Val(vm.AlterID), int32(64))
	expect(t, "v1 certs", utils.Val(vm.Certificates), "CERT")
	expect(t, "v1 allowInsecure", utils.Val(vm.AllowInsecure), false)
	expect(t, "v1 encryption", utils.Val(vm.Encryption), "")
	expect(t, "v1 path", utils.Val(vm.Path), "/p")
	expect(t, "v1 name", utils.Val(vm.Name), "v1")

	// 4: no alterId at all, flags present
	f = newFx().v2(4, "ws").s("h", "/ws").i(0).b(false).s("hdr").
		s("none").
		b(true).b(true).extra("v4")
	vm = mustDecode(t, KindVMess, f).(*VMess)
	expect(t, "v4 alterId", utils.Val(vm.AlterID), int32(0))
	expect(t, "v4 authLen", utils.Val(vm.ExperimentalAuthenticatedLength), true)
	expect(t, "v4 noTerm", utils.Val(vm.ExperimentalNoTerminationSignal), true)
	expect(t, "v4 earlyDataHeader", utils.Val(vm.EarlyDataHeaderName), "hdr")

	// 5: alterId then flags
	f = newFx().v2(5, "ws").s("h", "/ws").i(16).b(true).s("").
		s("").
		i(32).b(true).b(false).extra("v5")
	vm = mustDecode(t, KindVMess, f).(*VMess)
	expect(t, "v5 alterId", utils.Val(vm.AlterID), int32(32))
	expect(t, "v5 earlyData", utils.Val(vm.WsMaxEarlyData), int32(16))
	expect(t, "v5 forwarder", utils.Val(vm.WsUseBrowserForwarder), true)

	// 10: quic falls through grpc (with grpcMode) and meek; int packet encoding
	f = newFx().v2(10, "quic").s("none", "aes-128-gcm", "key").
		s("grpc-svc").s("grpcMode").s("https://meek").
		s("reality").
		i(2).extra("v10")
	vl := mustDecode(t, KindVLESS, f).(*VLESS)
	expect(t, "v10 quicKey", utils.Val(vl.QuicKey), "key")
	expect(t, "v10 grpc", utils.Val(vl.GrpcServiceName), "grpc-svc")
	expect(t, "v10 meek", utils.Val(vl.MeekURL), "https://meek")
	expect(t, "v10 security", utils.Val(vl.Security), "reality")
	expect(t, "v10 packetEncoding", utils.Val(vl.PacketEncoding), "xudp")
	expect(t, "v10 flow", utils.Val(vl.Flow), "")
	expect(t, "v10 name", utils.Val(vl.Name), "v10")

	// 15: grpc falls through to hysteria2; xtls becomes tls and falls into reality
	f = newFx().v2(15, "grpc").s("svc").s("https://m").s("uh", "/up").
		i(100).i(20).s("obfs").s("hy2pw").
		s("xtls").s("xsni", "h2").s("flow-x").s("rsni", "pk", "sid", "spx", "safari").
		s("xtls-rprx-vision").
		i(1).extra("v15")
	vl = mustDecode(t, KindVLESS, f).(*VLESS)
	expect(t, "v15 grpc", utils.Val(vl.GrpcServiceName), "svc")
	expect(t, "v15 meek", utils.Val(vl.MeekURL), "https://m")
	expect(t, "v15 host", utils.Val(vl.Host), "uh")
	expect(t, "v15 hy2 down", utils.Val(vl.Hy2DownMbps), int32(100))
	expect(t, "v15 hy2 password", utils.Val(vl.Hy2Password), "hy2pw")
	expect(t, "v15 security", utils.Val(vl.Security), "tls")
	expect(t, "v15 sni", utils.Val(vl.SNI), "rsni")
	expect(t, "v15 alpn", utils.Val(vl.ALPN), "h2")
	expect(t, "v15 fingerprint", utils.Val(vl.RealityFingerprint), "safari")
	expect(t, "v15 flow", utils.Val(vl.Flow), "xtls-rprx-vision")
	expect(t, "v15 packetEncoding", utils.Val(vl.PacketEncoding), "packet")

	// 16: no more fall through, string packet encoding, vmess without alterId
	f = newFx().v2(16, "quic").s("srtp", "none", "").
		s("tls").s("sni", "alpn", "", "").b(true).s("ios").
		b(false).b(false).
		s("packet").extra("v16")
	vm = mustDecode(t, KindVMess, f).(*VMess)
	expect(t, "v16 header", utils.Val(vm.HeaderType), "srtp")
	expect(t, "v16 grpc", utils.Val(vm.GrpcServiceName), "")
	expect(t, "v16 allowInsecure", utils.Val(vm.AllowInsecure), true)
	expect(t, "v16 utls", utils.Val(vm.UtlsFingerprint), "ios")
	expect(t, "v16 packetEncoding", utils.Val(vm.PacketEncoding), "packet")
	expect(t, "v16 alterId", utils.Val(vm.AlterID), int32(0))

	// 17: alterId comes back
	f = newFx().v2(17, "tcp").s("", "", "").s("").
		i(8).b(false).b(true).s("").extra("v17")
	vm = mustDecode(t, KindVMess, f).(*VMess)
	expect(t, "v17 alterId", utils.Val(vm.AlterID), int32(8))
	expect(t, "v17 noTerm", utils.Val(vm.ExperimentalNoTerminationSignal), true)

	// splithttp only has host and path from 18 on
	f = newFx().v2(17, "splithttp").s("").s("flow").s("pe").extra("v17s")
	vl = mustDecode(t, KindVLESS, f).(*VLESS)
	expect(t, "v17 splithttp host", utils.Val(vl.Host), "")
	expect(t, "v17 splithttp flow", utils.Val(vl.Flow), "flow")

	f = newFx().v2(18, "splithttp").s("sh", "/s").s("none").s("").s("").extra("v18")
	vl = mustDecode(t, KindVLESS, f).(*VLESS)
	expect(t, "v18 splithttp host", utils.Val(vl.Host), "sh")

	// h2 is the legacy name of http
	f = newFx().v2(18, "").s("").s("").s("").extra("blank")
	vl = mustDecode(t, KindVLESS, f).(*VLESS)
	expect(t, "blank type", utils.Val(vl.Type), "tcp")
	expect(t, "vless encryption", utils.Val(vl.Encryption), "")
}

func TestGoldenV2RayDiscriminators(t *testing.T) {
	expectErr(t, KindVMess, newFx().v2(18, "xhttp").s("a"), wire.ErrUnknownDiscriminator)
	expectErr(t, KindVMess, newFx().v2(18, "tcp").s("", "", "").s("shadow"), wire.ErrUnknownDiscriminator)

	// a cut stream must not be reported as an unknown discriminator
	f := newFx().i(18).ep().s("uuid", "")
	expectErr(t, KindVMess, f, wire.ErrTruncatedRecord)
}

func TestGoldenLegacyV2RayFamily(t *testing.T) {
	sk := mustDecode(t, KindSOCKS, newFx().i(0).ep().i(SOCKSProtocol4).s("u", "p").extra("s0")).(*SOCKS)
	expect(t, "socks0 protocol", utils.Val(sk.Protocol), SOCKSProtocol4)
	expect(t, "socks0 security", utils.Val(sk.Security), "")
	expect(t, "socks0 type", utils.Val(sk.Type), "tcp")

	sk = mustDecode(t, KindSOCKS, newFx().i(1).ep().i(SOCKSProtocol5).s("u", "p").b(true).extra("s1")).(*SOCKS)
	expect(t, "socks1 security", utils.Val(sk.Security), "tls")
	expect(t, "socks1 name", utils.Val(sk.Name), "s1")

	h := mustDecode(t, KindHTTP, newFx().i(0).ep().s("u", "p").b(true).s("sni").extra("h0")).(*HTTP)
	expect(t, "http0 security", utils.Val(h.Security), "tls")
	expect(t, "http0 sni", utils.Val(h.SNI), "sni")
	expect(t, "http0 user", utils.Val(h.Username), "u")

	tr := mustDecode(t, KindTrojan, newFx().i(0).ep().s("pw", "sni", "h2").extra("t0")).(*Trojan)
	expect(t, "trojan0 security", utils.Val(tr.Security), "tls")
	expect(t, "trojan0 allowInsecure", utils.Val(tr.AllowInsecure), false)
	expect(t, "trojan0 password", utils.Val(tr.Password), "pw")

	tr = mustDecode(t, KindTrojan, newFx().i(1).ep().s("pw", "sni", "").b(true).extra("t1")).(*Trojan)
	expect(t, "trojan1 allowInsecure", utils.Val(tr.AllowInsecure), true)
	expect(t, "trojan1 name", utils.Val(tr.Name), "t1")
}

func TestGoldenHysteria(t *testing.T) {
	b := mustDecode(t, KindHysteria, newFx().i(0).ep().
		i(HysteriaAuthString).s("auth").s("obfs", "sni").
		i(100).i(200).b(true).extra("h0")).(*Hysteria)
	expect(t, "v0 protocol", utils.Val(b.Protocol), HysteriaProtocolUDP)
	expect(t, "v0 up", utils.Val(b.UploadMbps), int64(100))
	expect(t, "v0 down", utils.Val(b.DownloadMbps), int64(200))
	expect(t, "v0 allowInsecure", utils.Val(b.AllowInsecure), true)
	expect(t, "v0 ports", utils.Val(b.ServerPorts), "8388")
	expect(t, "v0 hop", utils.Val(b.HopInterval), int64(0))

	// 4 has no mtu flag
	b = mustDecode(t, KindHysteria, newFx().i(4).ep().
		i(0).s("").i(HysteriaProtocolFakeTCP).s("o", "s").s("h3").
		i(10).i(20).b(false).
		s("CA").i(1).i(2).extra("h4")).(*Hysteria)
	expect(t, "v4 protocol", utils.Val(b.Protocol), HysteriaProtocolFakeTCP)
	expect(t, "v4 ca", utils.Val(b.CaText), "CA")
	expect(t, "v4 mtu", utils.Val(b.DisableMtuDiscovery), false)
	expect(t, "v4 name", utils.Val(b.Name), "h4")

	b = mustDecode(t, KindHysteria, newFx().i(5).ep().
		i(0).s("").i(0).s("", "").s("").
		i(10).i(20).b(false).
		s("").i(1).i(2).b(true).extra("h5")).(*Hysteria)
	expect(t, "v5 mtu", utils.Val(b.DisableMtuDiscovery), true)

	// 6 has ports with an int hop interval
	b = mustDecode(t, KindHysteria, newFx().i(6).ep().
		i(0).s("").i(0).s("", "").s("").
		i(30).i(40).b(false).
		s("").i(0).i(0).b(false).
		s("1000-2000").i(15).extra("h6")).(*Hysteria)
	expect(t, "v6 ports", utils.Val(b.ServerPorts), "1000-2000")
	expect(t, "v6 hop", utils.Val(b.HopInterval), int64(15))
	expect(t, "v6 up", utils.Val(b.UploadMbps), int64(30))

	b = mustDecode(t, KindHysteria, newFx().i(7).ep().
		i(0).s("").i(0).s("", "").s("").
		l(1<<40).l(5).b(false).
		s("").i(0).i(0).b(false).
		s("443").l(1<<33).extra("h7")).(*Hysteria)
	expect(t, "v7 up", utils.Val(b.UploadMbps), int64(1<<40))
	expect(t, "v7 hop", utils.Val(b.HopInterval), int64(1<<33))
}

func TestGoldenHysteria2(t *testing.T) {
	head := func(v int32) fx {
		return newFx().i(v).ep().s("auth", "obfs", "sni", "PIN")
	}

	b := mustDecode(t, KindHysteria2, head(1).s("CERTS").b(false).
		i(10).i(20).b(true).i(1).i(2).i(3).i(4).extra("v1")).(*Hysteria2)
	expect(t, "v1 ports", utils.Val(b.ServerPorts), "8388")
	expect(t, "v1 up", utils.Val(b.UploadMbps), int64(10))
	expect(t, "v1 pin", utils.Val(b.PinnedPeerCertificateSha256), "PIN")
	expect(t, "v1 pubkey", utils.Val(b.PinnedPeerCertificatePublicKeySha256), "")
	expect(t, "v1 window", utils.Val(b.MaxConnReceiveWindow), int32(4))
	expect(t, "v1 mtls", utils.Val(b.MtlsCertificate), "")

	b = mustDecode(t, KindHysteria2, head(2).s("").b(true).
		i(10).i(20).b(false).i(0).i(0).i(0).i(0).
		s("443,1000-2000").i(30).extra("v2")).(*Hysteria2)
	expect(t, "v2 ports", utils.Val(b.ServerPorts), "443,1000-2000")
	expect(t, "v2 hop", utils.Val(b.HopInterval), int64(30))

	b = mustDecode(t, KindHysteria2, head(3).s("").b(true).
		l(1<<35).l(7).b(false).i(0).i(0).i(0).i(0).
		s("443").l(60).extra("v3")).(*Hysteria2)
	expect(t, "v3 up", utils.Val(b.UploadMbps), int64(1<<35))
	expect(t, "v3 hop", utils.Val(b.HopInterval), int64(60))
	expect(t, "v3 name", utils.Val(b.Name), "v3")
}

func TestGoldenTuic5(t *testing.T) {
	b := mustDecode(t, KindTuic5, newFx().i(0).ep().
		s("pw", "certs", "quic", "bbr", "h3").b(false).b(true).i(1500).
		s("sni", "uuid").extra("t0")).(*Tuic5)
	expect(t, "v0 uuid", utils.Val(b.UUID), "uuid")
	expect(t, "v0 zeroRTT", utils.Val(b.ZeroRTTHandshake), true)
	expect(t, "v0 allowInsecure", utils.Val(b.AllowInsecure), false)
	expect(t, "v0 relay", utils.Val(b.UDPRelayMode), "quic")

	b = mustDecode(t, KindTuic5, newFx().i(3).ep().
		s("pw", "certs", "native", "cubic", "h3").b(true).b(false).i(1400).
		s("sni", "uuid").b(true).
		s("ech", "chain", "pub", "cert", "mc", "mk").b(true).extra("t3")).(*Tuic5)
	expect(t, "v3 disableSNI", utils.Val(b.DisableSNI), true)
	expect(t, "v3 allowInsecure", utils.Val(b.AllowInsecure), true)
	expect(t, "v3 pin", utils.Val(b.PinnedPeerCertificateSha256), "cert")
	expect(t, "v3 key", utils.Val(b.MtlsCertificatePrivateKey), "mk")
	expect(t, "v3 uos", utils.Val(b.SingUDPOverStream), true)
}

func TestGoldenJuicity(t *testing.T) {
	// 2: a pinned chain implied skipping verification
	b := mustDecode(t, KindJuicity, newFx().i(2).ep().
		s("uuid", "pw", "sni").b(false).s("bbr").s("CHAIN").extra("j2")).(*Juicity)
	expect(t, "v2 allowInsecure", utils.Val(b.AllowInsecure), true)
	expect(t, "v2 certs", utils.Val(b.Certificates), "")
	expect(t, "v2 chain", utils.Val(b.PinnedPeerCertificateChainSha256), "CHAIN")

	b = mustDecode(t, KindJuicity, newFx().i(2).ep().
		s("uuid", "pw", "sni").b(false).s("bbr").s("").extra("j2e")).(*Juicity)
	expect(t, "v2 empty chain", utils.Val(b.AllowInsecure), false)

	b = mustDecode(t, KindJuicity, newFx().i(3).ep().
		s("uuid", "pw", "sni").b(false).s("bbr").s("certs").s("chain").
		s("pub", "cert", "mc", "mk", "ech").extra("j3")).(*Juicity)
	expect(t, "v3 allowInsecure", utils.Val(b.AllowInsecure), false)
	expect(t, "v3 ech", utils.Val(b.EchConfig), "ech")
	expect(t, "v3 name", utils.Val(b.Name), "j3")

	b = mustDecode(t, KindJuicity, newFx().i(1).ep().
		s("uuid", "pw", "sni").b(true).s("bbr").extra("j1")).(*Juicity)
	expect(t, "v1 allowInsecure", utils.Val(b.AllowInsecure), true)
}

func TestGoldenAnyTLS(t *testing.T) {
	b := mustDecode(t, KindAnyTLS, newFx().i(0).ep().s("pw").
		s("reality", "sni", "", "", "").b(false).s("", "").
		s("doh").s("pk", "sid", "firefox").b(false).extra("a0")).(*AnyTLS)
	expect(t, "v0 idle", utils.Val(b.IdleSessionCheckInterval), int32(30))
	expect(t, "v0 security", utils.Val(b.Security), "reality")
	expect(t, "v0 fingerprint", utils.Val(b.RealityFingerprint), "firefox")
	expect(t, "v0 mlkem", utils.Val(b.RealityDisableX25519Mlkem768), false)
	expect(t, "v0 name", utils.Val(b.Name), "a0")

	b = mustDecode(t, KindAnyTLS, newFx().i(2).ep().s("pw").i(10).i(20).i(1).
		s("tls", "sni", "h2", "certs", "chain").b(true).s("chrome", "ech").
		s("doh").s("pk", "sid", "fp").b(true).b(true).extra("a2")).(*AnyTLS)
	expect(t, "v2 idle", utils.Val(b.IdleSessionTimeout), int32(20))
	expect(t, "v2 minIdle", utils.Val(b.MinIdleSession), int32(1))
	expect(t, "v2 mlkem", utils.Val(b.RealityDisableX25519Mlkem768), true)
	expect(t, "v2 pubkey", utils.Val(b.PinnedPeerCertificatePublicKeySha256), "")
	expect(t, "v2 name", utils.Val(b.Name), "a2")

	b = mustDecode(t, KindAnyTLS, newFx().i(3).ep().s("pw").i(10).i(20).i(1).
		s("tls", "sni", "h2", "certs", "chain").b(false).s("", "ech").
		s("pk", "sid", "fp").b(false).extra("a3")).(*AnyTLS)
	expect(t, "v3 name", utils.Val(b.Name), "a3")
}

func TestGoldenHTTP3(t *testing.T) {
	b := mustDecode(t, KindHTTP3, newFx().i(0).ep().
		s("u", "p", "sni", "certs", "chain").b(false).s("ech").s("doh").extra("q0")).(*HTTP3)
	expect(t, "v0 ech", utils.Val(b.EchConfig), "ech")
	expect(t, "v0 uot", utils.Val(b.TrustTunnelUot), false)
	expect(t, "v0 name", utils.Val(b.Name), "q0")

	b = mustDecode(t, KindHTTP3, newFx().i(1).ep().
		s("u", "p", "sni", "certs", "chain").s("pub", "cert").b(true).s("ech").
		s("mc", "mk").extra("q1")).(*HTTP3)
	expect(t, "v1 pin", utils.Val(b.PinnedPeerCertificateSha256), "cert")
	expect(t, "v1 key", utils.Val(b.MtlsCertificatePrivateKey), "mk")
}

func TestGoldenSmallLayers(t *testing.T) {
	st := mustDecode(t, KindShadowTLS, newFx().i(0).ep().s("sni", "pw", "h2").b(true).extra("st")).(*ShadowTLS)
	expect(t, "shadowtls v0 true", utils.Val(st.ProtocolVersion), ShadowTLSProtocol3)
	expect(t, "shadowtls v0 allowInsecure", utils.Val(st.AllowInsecure), false)

	st = mustDecode(t, KindShadowTLS, newFx().i(0).ep().s("sni", "pw", "h2").b(false).extra("st")).(*ShadowTLS)
	expect(t, "shadowtls v0 false", utils.Val(st.ProtocolVersion), ShadowTLSProtocol2)

	sq := mustDecode(t, KindShadowQUIC, newFx().ep().i(0).s("u", "p", "sni", "h3", "cubic").b(true).b(false).extra("sq")).(*ShadowQUIC)
	expect(t, "shadowquic cc", utils.Val(sq.CongestionControl), "cubic")
	expect(t, "shadowquic zeroRTT", utils.Val(sq.ZeroRTT), true)
	expect(t, "shadowquic disableALPN", utils.Val(sq.DisableALPN), false)
	expect(t, "shadowquic port", utils.Val(sq.ServerPort), int32(8388))

	tt := mustDecode(t, KindTrustTunnel, newFx().i(0).ep().s("quic", "u", "p", "sni", "cert", "chrome").extra("tt")).(*TrustTunnel)
	expect(t, "trusttunnel protocol", utils.Val(tt.Protocol), "quic")
	expect(t, "trusttunnel utls", utils.Val(tt.UtlsFingerprint), "chrome")
}

func TestGoldenBalancer(t *testing.T) {
	b := mustDecode(t, KindBalancer, newFx().i(0).i(BalancerTypeList).s("round-robin").i(2).l(7).l(9).extra("b0")).(*Balancer)
	expect(t, "v0 proxies", b.Proxies, []int64{7, 9})
	expect(t, "v0 probeInterval", utils.Val(b.ProbeInterval), int32(300))
	expect(t, "v0 name", utils.Val(b.Name), "b0")

	b = mustDecode(t, KindBalancer, newFx().i(1).i(BalancerTypeGroup).s("").l(42).s("http://probe").i(60).extra("b1")).(*Balancer)
	expect(t, "v1 group", utils.Val(b.GroupID), int64(42))
	expect(t, "v1 probe", utils.Val(b.ProbeURL), "http://probe")
	expect(t, "v1 filter", utils.Val(b.NameFilter), "")
	expect(t, "v1 proxies", b.Proxies, []int64{})

	b = mustDecode(t, KindBalancer, newFx().i(2).i(BalancerTypeGroup).s("").l(42).s("").i(60).s("^hk").extra("b2")).(*Balancer)
	expect(t, "v2 filter", utils.Val(b.NameFilter), "^hk")
	expect(t, "v2 filter1", utils.Val(b.NameFilter1), "")

	// list balancers never had filters
	b = mustDecode(t, KindBalancer, newFx().i(3).i(BalancerTypeList).s("").i(0).s("").i(60).extra("b3")).(*Balancer)
	expect(t, "v3 list name", utils.Val(b.Name), "b3")

	expectErr(t, KindBalancer, newFx().i(3).i(5).s(""), wire.ErrUnknownDiscriminator)
}

func TestGoldenExtraLayer(t *testing.T) {
	body := func() fx {
		return newFx().i(0).ep().s("https", "u", "p", "sni", "", "")
	}

	b := mustDecode(t, KindTrustTunnel, body().i(0).s("n0").i(ExtraTypeOOCv1).s("pid").
		s("token").i(2).s("a", "b"))
	expect(t, "v0 oocv1 name", utils.Val(b.GetBase().Name), "n0")
	expect(t, "v0 oocv1 profile", utils.Val(b.GetBase().ProfileID), "pid")

	b = mustDecode(t, KindTrustTunnel, body().i(1).s("n1").i(ExtraTypeOOCv1).s("pid").
		s("token", "url").i(0))
	expect(t, "v1 oocv1 profile", utils.Val(b.GetBase().ProfileID), "pid")

	b = mustDecode(t, KindTrustTunnel, body().i(1).s("n1").i(ExtraTypeSIP008).s("sip"))
	expect(t, "v1 sip008 profile", utils.Val(b.GetBase().ProfileID), "sip")
	expect(t, "v1 sip008 type", utils.Val(b.GetBase().ExtraType), ExtraTypeSIP008)

	b = mustDecode(t, KindTrustTunnel, body().i(2).s("n2").i(ExtraTypeOOCv1).s("pid"))
	expect(t, "v2 oocv1 profile", utils.Val(b.GetBase().ProfileID), "pid")

	b = mustDecode(t, KindTrustTunnel, body().i(2).s("n2").i(ExtraTypeNone))
	expect(t, "none profile", utils.Val(b.GetBase().ProfileID), "")

	expectErr(t, KindTrustTunnel, body().i(2).s("n").i(7).s("pid"), wire.ErrUnknownDiscriminator)
	expectErr(t, KindTrustTunnel, body().i(3).s("n").i(0), wire.ErrUnsupportedSchemaVersion)
	expectErr(t, KindTrustTunnel, body().i(-1).s("n").i(0), wire.ErrUnsupportedSchemaVersion)
}

func TestUnknownKind(t *testing.T) {
	_, err := Decode(Kind(77), []byte{0, 0, 0, 0})
	if !errors.Is(err, wire.ErrUnknownDiscriminator) {
		t.Fatal(err)
	}
}
