package share

import (
	"encoding/json"
	"net/url"
	"strconv"
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/e1732a364fed/vs_profile/bean"
	"github.com/e1732a364fed/vs_profile/utils"
)

var vmessMethods = map[string]bool{
	"auto":              true,
	"aes-128-gcm":       true,
	"chacha20-poly1305": true,
	"none":              true,
	"zero":              true,
}

const wsEarlyDataHeader = "Sec-WebSocket-Protocol"

// vmess://uuid@host:port?type=ws&security=tls#name, vless 和 trojan 同理.
// vmess 还有 v2rayN 的 base64(json) 格式.
func parseV2Ray(link string) (bean.Bean, error) {
	scheme, body, _ := strings.Cut(link, "://")
	scheme = strings.ToLower(scheme)

	if scheme == "vmess" {
		payload, _, _ := strings.Cut(body, "#")
		if !strings.Contains(payload, "@") {
			return parseV2RayN(payload)
		}
	}

	u, err := parseURL(link)
	if err != nil {
		return nil, err
	}
	q := u.Query()
	user, pass, hasPass := userPass(u)

	var b bean.Bean
	var v *bean.StandardV2Ray

	switch scheme {
	case "vmess":
		vm := &bean.VMess{}
		method := "auto"
		if e, ok := q["encryption"]; ok {
			method = strings.ToLower(e[0])
		}
		if !vmessMethods[method] {
			return nil, invalid("vmess link, unknown encryption", method)
		}
		vm.Encryption = utils.Ptr(method)
		vm.UUID = utils.Ptr(uuidOf(user))
		b, v = vm, &vm.StandardV2Ray
	case "vless":
		vl := &bean.VLESS{}
		encryption := "none"
		if e, ok := q["encryption"]; ok {
			encryption = e[0]
			if encryption != "none" && !strings.HasPrefix(encryption, "mlkem768x25519plus.") {
				return nil, invalid("vless link, unknown encryption", encryption)
			}
		}
		vl.Encryption = utils.Ptr(encryption)
		vl.UUID = utils.Ptr(uuidOf(user))

		flow, err := parseFlow(q.Get("flow"))
		if err != nil {
			return nil, err
		}
		vl.Flow = utils.Ptr(flow)
		if flow != "" {
			vl.PacketEncoding = utils.Ptr("xudp")
		}
		b, v = vl, &vl.StandardV2Ray
	default:
		tr := &bean.Trojan{}
		if hasPass {
			user += ":" + pass
		}
		tr.Password = utils.Ptr(user)
		b, v = tr, &tr.StandardV2Ray
	}

	if err = setEndpoint(&v.Base, u, 443); err != nil {
		return nil, err
	}
	if scheme != "trojan" && utils.Val(v.UUID) == "" {
		return nil, invalid(scheme+" link without id", link)
	}

	if err = parseTransport(v, q); err != nil {
		return nil, err
	}
	parseSecurity(v, q, scheme == "trojan")
	return b, nil
}

// 只支持 vision, 其它老的 xtls flow 当作没有
func parseFlow(flow string) (string, error) {
	switch flow {
	case "", "none":
		return "", nil
	case "xtls-rprx-vision", "xtls-rprx-vision-udp443":
		return "xtls-rprx-vision-udp443", nil
	case "xtls-rprx-origin", "xtls-rprx-origin-udp443", "xtls-rprx-direct", "xtls-rprx-direct-udp443",
		"xtls-rprx-splice", "xtls-rprx-splice-udp443":
		return "", nil
	}
	return "", invalid("vless link, unsupported flow", flow)
}

func uuidOf(s string) string {
	s = strings.TrimSpace(s)
	if govalidator.IsUUID(strings.ToLower(s)) {
		return utils.NormalizeUUIDStr(s)
	}
	return s
}

func parseTransport(v *bean.StandardV2Ray, q url.Values) error {
	t := strings.ToLower(q.Get("type"))

	switch t {
	case "", "tcp":
		v.Type = utils.Ptr("tcp")
		if q.Get("headerType") == "http" {
			v.HeaderType = utils.Ptr("http")
			v.Host = utils.Ptr(q.Get("host"))
			v.Path = utils.Ptr(q.Get("path"))
		}
	case "kcp":
		v.Type = utils.Ptr("kcp")
		v.MKcpSeed = utils.Ptr(q.Get("seed"))
		v.HeaderType = utils.Ptr(q.Get("headerType"))
	case "http", "h2":
		v.Type = utils.Ptr("http")
		v.Host = utils.Ptr(q.Get("host"))
		v.Path = utils.Ptr(q.Get("path"))
	case "xhttp", "splithttp":
		v.Type = utils.Ptr("splithttp")
		v.Host = utils.Ptr(q.Get("host"))
		v.Path = utils.Ptr(q.Get("path"))
	case "httpupgrade":
		v.Type = utils.Ptr("httpupgrade")
		v.Host = utils.Ptr(q.Get("host"))
		v.Path = utils.Ptr(q.Get("path"))
		setEarlyData(v, q)
	case "ws":
		v.Type = utils.Ptr("ws")
		v.Host = utils.Ptr(q.Get("host"))
		path := q.Get("path")
		if p, rawQuery, ok := strings.Cut(path, "?"); ok {
			if pq, err := url.ParseQuery(rawQuery); err == nil && pq.Has("ed") {
				if ed, err := strconv.Atoi(pq.Get("ed")); err == nil && ed > 0 {
					v.WsMaxEarlyData = utils.Ptr(int32(ed))
					v.EarlyDataHeaderName = utils.Ptr(wsEarlyDataHeader)
					path = p
				}
			}
		}
		v.Path = utils.Ptr(path)
		setEarlyData(v, q)
	case "quic":
		v.Type = utils.Ptr("quic")
		v.HeaderType = utils.Ptr(q.Get("headerType"))
		v.QuicSecurity = utils.Ptr(q.Get("quicSecurity"))
		v.QuicKey = utils.Ptr(q.Get("key"))
	case "grpc":
		v.Type = utils.Ptr("grpc")
		v.GrpcServiceName = utils.Ptr(q.Get("serviceName"))
	case "meek":
		v.Type = utils.Ptr("meek")
		v.MeekURL = utils.Ptr(q.Get("url"))
	case "hysteria2":
		return unsupported("v2ray link, transport", t)
	default:
		v.Type = utils.Ptr("tcp")
	}
	return nil
}

func setEarlyData(v *bean.StandardV2Ray, q url.Values) {
	if eh := q.Get("eh"); eh != "" {
		v.EarlyDataHeaderName = utils.Ptr(eh)
	}
	if ed, err := strconv.Atoi(q.Get("ed")); err == nil && ed > 0 {
		v.WsMaxEarlyData = utils.Ptr(int32(ed))
	}
}

func parseSecurity(v *bean.StandardV2Ray, q url.Values, isTrojan bool) {
	security := strings.ToLower(q.Get("security"))
	switch security {
	case "none", "tls", "reality":
	case "xtls":
		security = "tls"
	default:
		security = "none"
		if isTrojan {
			security = "tls"
		}
	}
	v.Security = utils.Ptr(security)

	switch security {
	case "tls":
		sni := q.Get("sni")
		if sni == "" && isTrojan {
			sni = q.Get("peer")
		}
		v.SNI = utils.Ptr(sni)
		if alpn := q.Get("alpn"); alpn != "" {
			v.ALPN = utils.Ptr(commaToLines(alpn))
		}
		v.AllowInsecure = utils.Ptr(anyPositive(q, "allowInsecure", "insecure", "allow_insecure"))
		if fp := normalizeFingerprint(q.Get("fp")); fp != "" {
			v.UtlsFingerprint = utils.Ptr(fp)
		}
	case "reality":
		v.SNI = utils.Ptr(q.Get("sni"))
		v.RealityPublicKey = utils.Ptr(q.Get("pbk"))
		v.RealityShortID = utils.Ptr(q.Get("sid"))
		v.RealitySpiderX = utils.Ptr(q.Get("spx"))
		if fp := normalizeFingerprint(q.Get("fp")); fp != "" {
			v.RealityFingerprint = utils.Ptr(fp)
		}
	}
}

// v2rayN 的 vmess 链接, base64 之后是一个 json 对象, 数字可能是字符串
func parseV2RayN(payload string) (bean.Bean, error) {
	data, err := decodeBase64(payload)
	if err != nil {
		return nil, invalid("vmess link, bad base64", payload)
	}
	var m map[string]any
	if err = json.Unmarshal(data, &m); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "vmess link, bad json", ErrDetail: utils.ErrInvalidData, Data: err.Error()}
	}
	str := func(key string) string { return strings.TrimSpace(utils.AnyToString(m[key])) }

	b := &bean.VMess{}
	host := str("add")
	if err = checkHost(host); err != nil {
		return nil, err
	}
	port, ok := utils.AnyToInt64(m["port"])
	if !ok || port <= 0 || port > 65535 {
		return nil, invalid("vmess link, bad port", m["port"])
	}
	b.ServerAddress = utils.Ptr(host)
	b.ServerPort = utils.Ptr(int32(port))
	b.Name = utils.Ptr(str("ps"))

	id := uuidOf(str("id"))
	if id == "" {
		return nil, invalid("vmess link without id", payload)
	}
	b.UUID = utils.Ptr(id)
	if aid, ok := utils.AnyToInt64(m["aid"]); ok {
		b.AlterID = utils.Ptr(int32(aid))
	}

	method := strings.ToLower(str("scy"))
	if method == "" {
		method = "auto"
	}
	if !vmessMethods[method] {
		return nil, invalid("vmess link, unknown encryption", method)
	}
	b.Encryption = utils.Ptr(method)

	// 第一版格式里 ws/h2 的 host 字段写成 "host;path"
	version, _ := utils.AnyToInt64(m["v"])
	net := strings.ToLower(str("net"))
	hostField, pathField := str("host"), str("path")
	if version < 2 && (net == "ws" || net == "h2") {
		if h, p, ok := strings.Cut(hostField, ";"); ok {
			hostField, pathField = h, p
		}
	}

	q := url.Values{}
	q.Set("type", net)
	q.Set("host", hostField)
	q.Set("path", pathField)
	q.Set("headerType", str("type"))
	q.Set("seed", pathField)
	q.Set("serviceName", pathField)
	q.Set("quicSecurity", hostField)
	q.Set("key", pathField)
	if err = parseTransport(&b.StandardV2Ray, q); err != nil {
		return nil, err
	}

	q = url.Values{}
	q.Set("security", str("tls"))
	q.Set("sni", str("sni"))
	q.Set("alpn", str("alpn"))
	q.Set("fp", str("fp"))
	if insecure, ok := utils.AnyToBool(m["insecure"]); ok && insecure {
		q.Set("allowInsecure", "1")
	}
	parseSecurity(&b.StandardV2Ray, q, false)
	return b, nil
}

// owner 决定 scheme 和用户信息, v 是它内嵌的传输层
func v2rayURI(owner bean.Bean, v *bean.StandardV2Ray) (string, error) {
	var scheme, user string
	isTrojan := false

	switch t := owner.(type) {
	case *bean.VMess:
		if utils.Val(t.AlterID) != 0 {
			return "", unsupported("vmess link with alterId", utils.Val(t.AlterID))
		}
		scheme, user = "vmess", utils.Val(v.UUID)
	case *bean.VLESS:
		scheme, user = "vless", utils.Val(v.UUID)
	case *bean.Trojan:
		scheme, user = "trojan", utils.Val(t.Password)
		isTrojan = true
	default:
		return "", unsupported("v2ray link", owner.Kind().String())
	}

	u, err := newURL(scheme, &v.Base)
	if err != nil {
		return "", err
	}
	u.User = url.User(user)
	q := url.Values{}

	switch t := owner.(type) {
	case *bean.VMess:
		q.Set("encryption", utils.Val(v.Encryption))
	case *bean.VLESS:
		q.Set("encryption", utils.Val(v.Encryption))
		if flow := utils.Val(t.Flow); flow != "" {
			q.Set("flow", strings.TrimSuffix(flow, "-udp443"))
		}
	}

	if err = transportQuery(v, q, isTrojan); err != nil {
		return "", err
	}
	if err = securityQuery(v, q, isTrojan); err != nil {
		return "", err
	}

	u.RawQuery = q.Encode()
	return u.String(), nil
}

func transportQuery(v *bean.StandardV2Ray, q url.Values, isTrojan bool) error {
	t := utils.Val(v.Type)
	switch t {
	case "", "tcp":
		if utils.Val(v.HeaderType) == "http" {
			q.Set("type", "tcp")
			q.Set("headerType", "http")
			setNonEmpty(q, "host", utils.Val(v.Host))
			setNonEmpty(q, "path", utils.Val(v.Path))
		} else if !isTrojan {
			q.Set("type", "tcp")
		}
	case "kcp":
		q.Set("type", t)
		setNonEmpty(q, "headerType", utils.Val(v.HeaderType))
		setNonEmpty(q, "seed", utils.Val(v.MKcpSeed))
	case "http", "httpupgrade", "splithttp":
		if t == "splithttp" {
			q.Set("type", "xhttp")
		} else {
			q.Set("type", t)
		}
		setNonEmpty(q, "host", utils.Val(v.Host))
		setNonEmpty(q, "path", utils.Val(v.Path))
		if t == "httpupgrade" {
			earlyDataQuery(v, q)
		}
	case "ws":
		q.Set("type", t)
		setNonEmpty(q, "host", utils.Val(v.Host))
		path := utils.Val(v.Path)
		ed := utils.Val(v.WsMaxEarlyData)
		if ed > 0 && utils.Val(v.EarlyDataHeaderName) == wsEarlyDataHeader {
			path += "?ed=" + strconv.Itoa(int(ed))
		} else {
			earlyDataQuery(v, q)
		}
		setNonEmpty(q, "path", path)
	case "quic":
		q.Set("type", t)
		setNonEmpty(q, "headerType", utils.Val(v.HeaderType))
		setNonEmpty(q, "quicSecurity", utils.Val(v.QuicSecurity))
		setNonEmpty(q, "key", utils.Val(v.QuicKey))
	case "grpc":
		q.Set("type", t)
		setNonEmpty(q, "serviceName", utils.Val(v.GrpcServiceName))
	case "meek":
		q.Set("type", t)
		setNonEmpty(q, "url", utils.Val(v.MeekURL))
	default:
		return unsupported("v2ray link, transport", t)
	}
	return nil
}

func earlyDataQuery(v *bean.StandardV2Ray, q url.Values) {
	if ed := utils.Val(v.WsMaxEarlyData); ed > 0 {
		q.Set("ed", strconv.Itoa(int(ed)))
		setNonEmpty(q, "eh", utils.Val(v.EarlyDataHeaderName))
	}
}

func securityQuery(v *bean.StandardV2Ray, q url.Values, isTrojan bool) error {
	switch s := utils.Val(v.Security); s {
	case "", "none":
		if isTrojan {
			q.Set("security", "none")
		}
	case "tls":
		if !isTrojan {
			q.Set("security", "tls")
		}
		sni := utils.Val(v.SNI)
		if !isTrojan || sni != utils.Val(v.ServerAddress) {
			setNonEmpty(q, "sni", sni)
		}
		setNonEmpty(q, "alpn", linesToComma(utils.Val(v.ALPN)))
		if utils.Val(v.AllowInsecure) && utils.Val(v.PinnedPeerCertificateChainSha256) == "" {
			q.Set("allowInsecure", "1")
		}
		setNonEmpty(q, "fp", utils.Val(v.UtlsFingerprint))
	case "reality":
		pbk := utils.Val(v.RealityPublicKey)
		if pbk == "" {
			return invalid("reality without public key", utils.Val(v.ServerAddress))
		}
		q.Set("security", "reality")
		setNonEmpty(q, "sni", utils.Val(v.SNI))
		q.Set("pbk", pbk)
		setNonEmpty(q, "sid", utils.Val(v.RealityShortID))
		setNonEmpty(q, "spx", utils.Val(v.RealitySpiderX))
		fp := utils.Val(v.RealityFingerprint)
		if fp == "" {
			fp = "chrome"
		}
		q.Set("fp", fp)
	default:
		return unsupported("v2ray link, security", s)
	}
	return nil
}

func setNonEmpty(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}
