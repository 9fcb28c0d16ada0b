package group

import (
	"strings"

	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

var ssMethods = map[string]bool{
	"none":                          true,
	"aes-128-gcm":                   true,
	"aes-192-gcm":                   true,
	"aes-256-gcm":                   true,
	"chacha20-ietf-poly1305":        true,
	"xchacha20-ietf-poly1305":       true,
	"2022-blake3-aes-128-gcm":       true,
	"2022-blake3-aes-256-gcm":       true,
	"2022-blake3-chacha20-poly1305": true,
	"rc4-md5":                       true,
	"aes-128-ctr":                   true,
	"aes-192-ctr":                   true,
	"aes-256-ctr":                   true,
	"aes-128-cfb":                   true,
	"aes-192-cfb":                   true,
	"aes-256-cfb":                   true,
	"chacha20":                      true,
	"chacha20-ietf":                 true,
	"xchacha20":                     true,
}

// clash 的 aead_ 系列是旧名字
var clashSSMethods = map[string]string{
	"dummy":                   "none",
	"aead_aes_128_gcm":        "aes-128-gcm",
	"aead_aes_192_gcm":        "aes-192-gcm",
	"aead_aes_256_gcm":        "aes-256-gcm",
	"aead_chacha20_poly1305":  "chacha20-ietf-poly1305",
	"aead_xchacha20_poly1305": "xchacha20-ietf-poly1305",
}

var vmessMethods = map[string]bool{"auto": true, "aes-128-gcm": true, "chacha20-poly1305": true, "none": true, "zero": true}

// clashProxy 是 yaml 里 proxies 列表的一项
type clashProxy map[string]any

func (p clashProxy) str(key string) (string, bool) {
	v, ok := p[key]
	if !ok || v == nil {
		return "", false
	}
	return utils.AnyToString(v), true
}

func (p clashProxy) strPtr(key string) *string {
	if s, ok := p.str(key); ok {
		return &s
	}
	return nil
}

func (p clashProxy) flag(key string) bool {
	b, _ := p[key].(bool)
	return b
}

func (p clashProxy) port(key string) (int32, bool) {
	v, ok := utils.AnyToInt64(p[key])
	if !ok || v < 0 || v > 65535 {
		return 0, false
	}
	return int32(v), true
}

func (p clashProxy) sub(key string) clashProxy {
	m, _ := p[key].(map[string]any)
	return m
}

func (p clashProxy) list(key string) []string {
	l, ok := p[key].([]any)
	if !ok {
		return nil
	}
	r := make([]string, 0, len(l))
	for _, v := range l {
		r = append(r, utils.AnyToString(v))
	}
	return r
}

func (p clashProxy) lines(key string) *string {
	l := p.list(key)
	if l == nil {
		return nil
	}
	return utils.Ptr(strings.Join(l, "\n"))
}

// 读 server/port/name, 缺了就不是有效的节点
func (p clashProxy) endpoint(b *bean.Base) bool {
	server, ok := p.str("server")
	if !ok {
		return false
	}
	port, ok := p.port("port")
	if !ok {
		return false
	}
	b.ServerAddress = utils.Ptr(server)
	b.ServerPort = utils.Ptr(port)
	b.Name = p.strPtr("name")
	return true
}

// parseClashProxy converts one clash proxy. Types or options we can not represent give nil.
func parseClashProxy(p clashProxy) bean.Bean {
	typ, _ := p.str("type")
	switch typ {
	case "socks5":
		b := &bean.SOCKS{}
		if !p.endpoint(&b.Base) {
			return nil
		}
		b.Protocol = utils.Ptr(bean.SOCKSProtocol5)
		b.Username = p.strPtr("username")
		b.Password = p.strPtr("password")
		if p.flag("tls") {
			b.Security = utils.Ptr("tls")
			b.AllowInsecure = utils.Ptr(p.flag("skip-cert-verify"))
		}
		return b
	case "http":
		b := &bean.HTTP{}
		if !p.endpoint(&b.Base) {
			return nil
		}
		b.Username = p.strPtr("username")
		b.Password = p.strPtr("password")
		if p.flag("tls") {
			b.Security = utils.Ptr("tls")
			b.SNI = p.strPtr("sni")
			b.AllowInsecure = utils.Ptr(p.flag("skip-cert-verify"))
		}
		return b
	case "ss":
		return clashShadowsocks(p)
	case "vmess", "vless", "trojan":
		return clashV2Ray(p, typ)
	case "hysteria":
		return clashHysteria(p)
	case "hysteria2":
		return clashHysteria2(p)
	case "tuic":
		return clashTuic(p)
	case "anytls":
		b := &bean.AnyTLS{}
		if !p.endpoint(&b.Base) {
			return nil
		}
		b.Password = p.strPtr("password")
		b.Security = utils.Ptr("tls")
		b.SNI = p.strPtr("sni")
		b.ALPN = p.lines("alpn")
		b.AllowInsecure = utils.Ptr(p.flag("skip-cert-verify"))
		return b
	}
	return nil
}

func clashShadowsocks(p clashProxy) bean.Bean {
	b := &bean.Shadowsocks{}
	if !p.endpoint(&b.Base) {
		return nil
	}
	b.Password = p.strPtr("password")

	cipher, _ := p.str("cipher")
	cipher = strings.ToLower(cipher)
	if m, ok := clashSSMethods[cipher]; ok {
		cipher = m
	}
	if !ssMethods[cipher] {
		return nil
	}
	b.Method = utils.Ptr(cipher)

	if _, has := p["plugin"]; has {
		opts := p.sub("plugin-opts")
		var parts []string
		put := func(clashKey, key string) {
			if v, ok := opts.str(clashKey); ok {
				parts = append(parts, key+"="+v)
			}
		}
		plugin, _ := p.str("plugin")
		switch plugin {
		case "":
		case "obfs":
			parts = append(parts, "obfs-local")
			put("mode", "obfs")
			put("host", "obfs-host")
		case "v2ray-plugin":
			if opts.flag("v2ray-http-upgrade") {
				return nil
			}
			parts = append(parts, "v2ray-plugin")
			put("mode", "mode")
			if opts.flag("tls") {
				parts = append(parts, "tls")
			}
			put("host", "host")
			put("path", "path")
			if opts.flag("mux") {
				parts = append(parts, "mux=8")
			}
		default:
			return nil
		}
		b.Plugin = utils.Ptr(strings.Join(parts, ";"))
	}
	return b
}

func clashV2Ray(p clashProxy, typ string) bean.Bean {
	var b bean.Bean
	var v *bean.StandardV2Ray
	switch typ {
	case "vmess":
		vm := &bean.VMess{}
		b, v = vm, &vm.StandardV2Ray
	case "vless":
		vl := &bean.VLESS{}
		b, v = vl, &vl.StandardV2Ray
	default:
		tr := &bean.Trojan{}
		b, v = tr, &tr.StandardV2Ray
	}
	if !p.endpoint(&v.Base) {
		return nil
	}
	_, isTrojan := b.(*bean.Trojan)

	network, _ := p.str("network")
	if isTrojan {
		switch network {
		case "ws", "grpc":
			v.Type = utils.Ptr(network)
		default:
			v.Type = utils.Ptr("tcp")
		}
	} else {
		switch network {
		case "h2":
			v.Type = utils.Ptr("http")
		case "http":
			v.Type = utils.Ptr("tcp")
			v.HeaderType = utils.Ptr("http")
		case "ws", "grpc":
			v.Type = utils.Ptr(network)
		default:
			v.Type = utils.Ptr("tcp")
		}
	}

	if tr, ok := b.(*bean.Trojan); ok {
		v.Security = utils.Ptr("tls")
		v.SNI = p.strPtr("sni")
		tr.Password = p.strPtr("password")
	} else {
		if p.flag("tls") {
			v.Security = utils.Ptr("tls")
			v.SNI = p.strPtr("servername")
		} else {
			v.Security = utils.Ptr("none")
		}
		if id, ok := p.str("uuid"); ok && id != "" {
			v.UUID = utils.Ptr(utils.NormalizeUUIDStr(id))
		}
	}
	if *v.Security == "tls" {
		v.ALPN = p.lines("alpn")
		v.AllowInsecure = utils.Ptr(p.flag("skip-cert-verify"))
	}

	switch t := b.(type) {
	case *bean.VMess:
		if aid, ok := p.port("alterId"); ok {
			t.AlterID = utils.Ptr(aid)
		}
		cipher, _ := p.str("cipher")
		if !vmessMethods[cipher] {
			return nil
		}
		t.Encryption = utils.Ptr(cipher)
		t.ExperimentalAuthenticatedLength = utils.Ptr(p.flag("authenticated-length"))
		t.PacketEncoding = utils.Ptr(clashPacketEncoding(p, "none"))
	case *bean.VLESS:
		t.PacketEncoding = utils.Ptr(clashPacketEncoding(p, "xudp"))
		if *v.Type != "ws" {
			if flow, _ := p.str("flow"); flow != "" {
				if !strings.HasPrefix(flow, "xtls-rprx-vision") {
					return nil
				}
				t.Flow = utils.Ptr("xtls-rprx-vision-udp443")
				t.PacketEncoding = utils.Ptr("xudp")
			}
		}
	}

	if reality := p.sub("reality-opts"); len(reality) > 0 {
		v.Security = utils.Ptr("reality")
		v.RealityPublicKey = reality.strPtr("public-key")
		v.RealityShortID = reality.strPtr("short-id")
	}

	switch *v.Type {
	case "tcp":
		if utils.Val(v.HeaderType) == "http" {
			if opts := p.sub("http-opts"); opts != nil {
				v.Path = opts.lines("path")
				for k, hv := range opts.sub("headers") {
					if strings.EqualFold(k, "host") {
						if l, ok := hv.([]any); ok {
							hosts := make([]string, 0, len(l))
							for _, h := range l {
								hosts = append(hosts, utils.AnyToString(h))
							}
							v.Host = utils.Ptr(strings.Join(hosts, "\n"))
						}
					}
				}
			}
		}
	case "ws":
		clashWebsocket(p, v, isTrojan)
	case "http":
		if opts := p.sub("h2-opts"); opts != nil {
			v.Host = opts.lines("host")
			v.Path = opts.strPtr("path")
		}
	case "grpc":
		if opts := p.sub("grpc-opts"); opts != nil {
			v.GrpcServiceName = opts.strPtr("grpc-service-name")
		}
	}

	if isTrojan {
		if ss := p.sub("ss-opts"); ss.flag("enabled") {
			// trojan-go 的 ss 加密层没有对应的记录类型
			return nil
		}
	}
	return b
}

func clashPacketEncoding(p clashProxy, def string) string {
	enc := def
	if p.flag("packet-addr") {
		enc = "packet"
	}
	if p.flag("xudp") {
		enc = "xudp"
	}
	switch pe, _ := p.str("packet-encoding"); pe {
	case "packetaddr", "packet":
		enc = "packet"
	case "xudp":
		enc = "xudp"
	}
	return enc
}

func clashWebsocket(p clashProxy, v *bean.StandardV2Ray, isTrojan bool) {
	secure := utils.Val(v.Security) == "tls" || utils.Val(v.Security) == "reality"
	if isTrojan && secure && utils.Val(v.SNI) != "" {
		v.Host = utils.Ptr(*v.SNI)
	}
	opts := p.sub("ws-opts")
	if opts == nil {
		return
	}
	for k, hv := range opts.sub("headers") {
		if !strings.EqualFold(k, "host") {
			continue
		}
		if h := utils.AnyToString(hv); h != "" {
			v.Host = utils.Ptr(h)
			if !isTrojan && secure && utils.Val(v.SNI) == "" {
				v.SNI = utils.Ptr(h)
			}
		}
	}
	v.Path = opts.strPtr("path")
	if ed, ok := opts.port("max-early-data"); ok {
		v.WsMaxEarlyData = utils.Ptr(ed)
	}
	v.EarlyDataHeaderName = opts.strPtr("early-data-header-name")
	if opts.flag("v2ray-http-upgrade") {
		v.Type = utils.Ptr("httpupgrade")
		v.WsMaxEarlyData = nil
		v.EarlyDataHeaderName = nil
	}

	// path 里的 ?ed=2048
	if path := utils.Val(v.Path); path != "" {
		if base, rawQuery, ok := strings.Cut(path, "?"); ok {
			var rest []string
			ed := ""
			for _, kv := range strings.Split(rawQuery, "&") {
				if strings.HasPrefix(kv, "ed=") {
					ed = strings.TrimPrefix(kv, "ed=")
					continue
				}
				rest = append(rest, kv)
			}
			if ed != "" {
				if len(rest) > 0 {
					base += "?" + strings.Join(rest, "&")
				}
				v.Path = utils.Ptr(base)
				if n, ok := utils.AnyToInt64(ed); ok {
					v.WsMaxEarlyData = utils.Ptr(int32(n))
				}
				v.EarlyDataHeaderName = utils.Ptr("Sec-WebSocket-Protocol")
			}
		}
	}
}

func clashPorts(p clashProxy) (string, bool) {
	if ports, ok := p.str("ports"); ok && bean.IsValidHysteriaPort(ports) {
		return ports, true
	}
	if port, ok := p.port("port"); ok {
		return utils.AnyToString(port), true
	}
	return "", false
}

func clashHysteria(p clashProxy) bean.Bean {
	b := &bean.Hysteria{}
	server, ok := p.str("server")
	if !ok {
		return nil
	}
	ports, ok := clashPorts(p)
	if !ok {
		return nil
	}
	b.ServerAddress = utils.Ptr(server)
	b.ServerPorts = utils.Ptr(ports)
	b.Name = p.strPtr("name")

	proto, ok := p.str("protocol")
	if !ok {
		proto, ok = p.str("obfs-protocol")
	}
	if ok {
		switch proto {
		case "faketcp":
			b.Protocol = utils.Ptr(bean.HysteriaProtocolFakeTCP)
		case "wechat-video":
			b.Protocol = utils.Ptr(bean.HysteriaProtocolWechatVideo)
		case "udp", "":
			b.Protocol = utils.Ptr(bean.HysteriaProtocolUDP)
		default:
			return nil
		}
	}
	if s, _ := p.str("auth-str"); s != "" {
		b.AuthPayloadType = utils.Ptr(bean.HysteriaAuthString)
		b.AuthPayload = utils.Ptr(s)
	}
	if s, _ := p.str("auth"); s != "" {
		b.AuthPayloadType = utils.Ptr(bean.HysteriaAuthBase64)
		b.AuthPayload = utils.Ptr(s)
	}
	b.SNI = p.strPtr("sni")
	if alpn := p.list("alpn"); len(alpn) > 0 {
		b.ALPN = utils.Ptr(alpn[0])
	}
	b.AllowInsecure = utils.Ptr(p.flag("skip-cert-verify"))
	if obfs, _ := p.str("obfs"); obfs != "" {
		b.Obfuscation = utils.Ptr(obfs)
	}
	if hop, ok := utils.AnyToInt64(p["hop-interval"]); ok && hop > 0 {
		b.HopInterval = utils.Ptr(hop)
	}
	return b
}

func clashHysteria2(p clashProxy) bean.Bean {
	b := &bean.Hysteria2{}
	server, ok := p.str("server")
	if !ok {
		return nil
	}
	ports, ok := clashPorts(p)
	if !ok {
		return nil
	}
	b.ServerAddress = utils.Ptr(server)
	b.ServerPorts = utils.Ptr(ports)
	b.Name = p.strPtr("name")
	b.Auth = p.strPtr("password")
	b.SNI = p.strPtr("sni")
	b.AllowInsecure = utils.Ptr(p.flag("skip-cert-verify"))

	if obfs, ok := p.str("obfs"); ok {
		switch obfs {
		case "":
		case "salamander":
			b.Obfs = p.strPtr("obfs-password")
		default:
			return nil
		}
	}
	if hop, ok := utils.AnyToInt64(p["hop-interval"]); ok && hop > 0 {
		b.HopInterval = utils.Ptr(hop)
	}
	return b
}

func clashTuic(p clashProxy) bean.Bean {
	// 只有 token 的是 tuic v4
	if _, v4 := p["token"]; v4 {
		return nil
	}
	b := &bean.Tuic5{}

	server, ok := p.str("ip")
	if !ok {
		server, ok = p.str("server")
	}
	if !ok {
		return nil
	}
	port, ok := p.port("port")
	if !ok {
		return nil
	}
	b.ServerAddress = utils.Ptr(server)
	b.ServerPort = utils.Ptr(port)
	b.Name = p.strPtr("name")
	b.UUID = p.strPtr("uuid")
	b.Password = p.strPtr("password")

	mode, _ := p.str("udp-relay-mode")
	if mode != "native" && mode != "quic" {
		mode = "native"
	}
	b.UDPRelayMode = utils.Ptr(mode)
	cc, _ := p.str("congestion-controller")
	if cc != "cubic" && cc != "bbr" && cc != "new_reno" {
		cc = "cubic"
	}
	b.CongestionControl = utils.Ptr(cc)

	b.DisableSNI = utils.Ptr(p.flag("disable-sni"))
	b.ZeroRTTHandshake = utils.Ptr(p.flag("reduce-rtt"))
	b.AllowInsecure = utils.Ptr(p.flag("skip-cert-verify"))

	b.SNI = p.strPtr("sni")
	if b.SNI == nil {
		if _, hasIP := p.str("ip"); hasIP {
			b.SNI = p.strPtr("server")
		}
	}
	if _, has := p["alpn"]; has {
		b.ALPN = p.lines("alpn")
	} else {
		b.ALPN = utils.Ptr("h3")
	}
	return b
}
