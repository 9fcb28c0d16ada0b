package bean

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/e1732a364fed/vs_profile/utils"
	"golang.org/x/net/idna"
)

// DisplayName is the name if set, otherwise a name derived from the record.
func DisplayName(b Bean) string {
	if name := utils.Val(b.GetBase().Name); name != "" {
		return name
	}
	if _, ok := b.(*Balancer); ok {
		return fmt.Sprintf("Balancer %d", Hash(b)%1000000007)
	}
	return DisplayAddress(b)
}

func DisplayAddress(b Bean) string {
	base := b.GetBase()
	addr := utils.Val(base.ServerAddress)
	switch v := b.(type) {
	case *Hysteria:
		return joinHostPorts(addr, utils.Val(v.ServerPorts))
	case *Hysteria2:
		return joinHostPorts(addr, utils.Val(v.ServerPorts))
	}
	return joinHostPorts(addr, strconv.Itoa(int(utils.Val(base.ServerPort))))
}

func joinHostPorts(host, ports string) string {
	if isIPv6(host) {
		return "[" + host + "]:" + ports
	}
	return wrapIDN(host) + ":" + ports
}

func isIPv6(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && ip.To4() == nil
}

// punycode 域名显示为 unicode 形式
func wrapIDN(host string) string {
	if !strings.Contains(host, "xn--") {
		return host
	}
	u, err := idna.ToUnicode(host)
	if err != nil {
		return host
	}
	return u
}

// Network lists the transport networks the protocol needs.
func Network(b Bean) string {
	switch b.(type) {
	case *Hysteria, *Hysteria2, *Tuic5, *Juicity, *ShadowQUIC:
		return "udp"
	case *ShadowTLS:
		return "tcp"
	}
	return "tcp,udp"
}

// CanMapping reports whether the profile can be reached through a local port mapping.
func CanMapping(b Bean, f Features) bool {
	switch v := b.(type) {
	case *Shadowsocks:
		return v.PluginName() == ""
	case *Hysteria:
		if utils.Val(v.Protocol) == HysteriaProtocolFakeTCP {
			return false
		}
		if !f.HysteriaPortHopping {
			return true
		}
		return !IsValidHysteriaMultiPort(utils.Val(v.ServerPorts))
	case *Hysteria2:
		if !f.HysteriaPortHopping {
			return true
		}
		return !IsValidHysteriaMultiPort(utils.Val(v.ServerPorts))
	}
	return true
}

// NeedProtect reports whether the outbound sockets of the profile must bypass the tunnel.
func NeedProtect(b Bean, f Features) bool {
	switch v := b.(type) {
	case *Hysteria:
		return f.HysteriaPortHopping && IsValidHysteriaMultiPort(utils.Val(v.ServerPorts))
	case *Hysteria2:
		if f.Hysteria2ProviderCore {
			return false
		}
		return !CanMapping(b, f)
	}
	return false
}

func CanTCPing(b Bean) bool {
	var t string
	switch v := b.(type) {
	case *SOCKS:
		t = utils.Val(v.Type)
	case *HTTP:
		t = utils.Val(v.Type)
	case *Shadowsocks:
		t = utils.Val(v.Type)
	case *VMess:
		t = utils.Val(v.Type)
	case *VLESS:
		t = utils.Val(v.Type)
	case *Trojan:
		t = utils.Val(v.Type)
	default:
		return true
	}
	return t != "kcp" && t != "quic" && t != "hysteria2"
}

func ProtocolName(b Bean) string {
	switch v := b.(type) {
	case *Shadowsocks:
		if strings.HasPrefix(utils.Val(v.Method), "2022-blake3-") {
			return "Shadowsocks 2022"
		}
		return "Shadowsocks"
	case *SOCKS:
		switch utils.Val(v.Protocol) {
		case SOCKSProtocol4:
			return "SOCKS4"
		case SOCKSProtocol4A:
			return "SOCKS4A"
		}
		return "SOCKS5"
	case *HTTP:
		if utils.Val(v.Security) == "tls" {
			return "HTTPS"
		}
		return "HTTP"
	case *VMess:
		return "VMess"
	case *VLESS:
		return "VLESS"
	case *Trojan:
		return "Trojan"
	case *Hysteria:
		return "Hysteria"
	case *Hysteria2:
		return "Hysteria2"
	case *Tuic5:
		return "TUIC"
	case *Juicity:
		return "Juicity"
	case *AnyTLS:
		return "AnyTLS"
	case *ShadowTLS:
		return "ShadowTLS"
	case *HTTP3:
		return "HTTP3"
	case *ShadowQUIC:
		return "ShadowQUIC"
	case *TrustTunnel:
		return "TrustTunnel"
	case *Balancer:
		return "Balancer"
	}
	return b.Kind().String()
}

// IsInsecure reports profiles whose traffic is not protected by an authenticated cipher.
// Balancers are judged by their members, which is up to the caller.
func IsInsecure(b Bean) bool {
	switch v := b.(type) {
	case *Shadowsocks:
		switch v.PluginName() {
		case "", "obfs-local":
		case "v2ray-plugin":
			opts := v.PluginOptions()
			if _, ok := opts["tls"]; ok {
				return false
			}
			if opts["mode"] == "quic" {
				return false
			}
		default:
			return false
		}
		switch utils.Val(v.Method) {
		case "aes-128-gcm", "aes-192-gcm", "aes-256-gcm", "chacha20-poly1305", "xchacha20-poly1305",
			"2022-blake3-aes-128-gcm", "2022-blake3-aes-256-gcm", "2022-blake3-chacha20-poly1305":
			return false
		}
		return v2rayInsecure(&v.StandardV2Ray)
	case *VMess:
		switch utils.Val(v.Encryption) {
		case "auto", "aes-128-gcm", "chacha20-poly1305":
			return false
		}
		return v2rayInsecure(&v.StandardV2Ray)
	case *SOCKS:
		return v2rayInsecure(&v.StandardV2Ray)
	case *HTTP:
		return v2rayInsecure(&v.StandardV2Ray)
	case *VLESS:
		return v2rayInsecure(&v.StandardV2Ray)
	case *Trojan:
		return v2rayInsecure(&v.StandardV2Ray)
	case *Juicity:
		addr := utils.Val(v.ServerAddress)
		if addr == "localhost" || isLoopback(addr) {
			return false
		}
		if !utils.Val(v.AllowInsecure) {
			return false
		}
		return utils.Val(v.PinnedPeerCertificateChainSha256) == "" &&
			utils.Val(v.PinnedPeerCertificatePublicKeySha256) == "" &&
			utils.Val(v.PinnedPeerCertificateSha256) == ""
	}
	return false
}

// 没有 tls/reality 的明文, 或者 tls 却跳过了证书校验
func v2rayInsecure(v *StandardV2Ray) bool {
	addr := utils.Val(v.ServerAddress)
	if addr == "localhost" || isLoopback(addr) {
		return false
	}
	switch utils.Val(v.Security) {
	case "tls":
		return utils.Val(v.AllowInsecure) && utils.Val(v.PinnedPeerCertificateChainSha256) == ""
	case "reality":
		return false
	}
	return true
}

func isLoopback(host string) bool {
	ip := net.ParseIP(host)
	return ip != nil && ip.IsLoopback()
}

// IsValidHysteriaPort accepts a single port, or a comma separated list of ports and
// "from-to" ranges, every port within 1-65535.
func IsValidHysteriaPort(s string) bool {
	if p, err := strconv.Atoi(s); err == nil {
		return p >= 1 && p <= 65535
	}
	for _, r := range strings.Split(s, ",") {
		if p, err := strconv.Atoi(r); err == nil {
			if p <= 0 || p >= 65536 {
				return false
			}
			continue
		}
		if !strings.Contains(r, "-") {
			return false
		}
		parts := strings.Split(r, "-")
		if len(parts) != 2 {
			return false
		}
		from, err1 := strconv.Atoi(parts[0])
		to, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil || from <= 0 || from >= 65536 || to <= 0 || to >= 65536 || from > to {
			return false
		}
	}
	return true
}

// IsValidHysteriaMultiPort is a valid port spec that is not a single port.
func IsValidHysteriaMultiPort(s string) bool {
	if _, err := strconv.Atoi(s); err == nil {
		return false
	}
	return IsValidHysteriaPort(s)
}
