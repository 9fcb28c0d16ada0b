/*
Package bean defines the proxy profile records and their versioned binary codec.

A record is one of the concrete types in this package (SOCKS, Shadowsocks, VMess ...), all
sharing an embedded Base. Records are persisted as a sequence of independently versioned
layers: the protocol layer (which for the v2ray family nests the shared StandardV2Ray
transport layer), followed by the extra-metadata layer. Every layer starts with its own
int version counter, and decoders replay every historical layout of that layer.

Fields that may be missing from old layouts are pointers. DecodeRaw leaves them nil,
Materialize fills every one of them with a fixed default; Decode does both.
*/
package bean

import (
	"strconv"

	"github.com/e1732a364fed/vs_profile/utils"
)

// Kind is the persisted protocol tag of a record. The numbers are stored next to the
// record bytes and inside share payloads, never renumber them.
type Kind int32

const (
	KindSOCKS       Kind = 0
	KindHTTP        Kind = 1
	KindShadowsocks Kind = 2
	KindVMess       Kind = 4
	KindVLESS       Kind = 5
	KindTrojan      Kind = 6
	KindHysteria    Kind = 8
	KindTuic5       Kind = 10
	KindHysteria2   Kind = 12
	KindJuicity     Kind = 13
	KindShadowTLS   Kind = 14
	KindAnyTLS      Kind = 15
	KindHTTP3       Kind = 16
	KindShadowQUIC  Kind = 17
	KindTrustTunnel Kind = 18
	KindBalancer    Kind = 100
)

var kindNames = map[Kind]string{
	KindSOCKS:       "socks",
	KindHTTP:        "http",
	KindShadowsocks: "ss",
	KindVMess:       "vmess",
	KindVLESS:       "vless",
	KindTrojan:      "trojan",
	KindHysteria:    "hysteria",
	KindTuic5:       "tuic5",
	KindHysteria2:   "hysteria2",
	KindJuicity:     "juicity",
	KindShadowTLS:   "shadowtls",
	KindAnyTLS:      "anytls",
	KindHTTP3:       "http3",
	KindShadowQUIC:  "shadowquic",
	KindTrustTunnel: "trusttunnel",
	KindBalancer:    "balancer",
}

var kindsByName map[string]Kind

func init() {
	kindsByName = make(map[string]Kind, len(kindNames))
	for k, n := range kindNames {
		kindsByName[n] = k
	}
}

func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) Valid() bool {
	_, ok := kindNames[k]
	return ok
}

func KindByName(name string) (Kind, bool) {
	k, ok := kindsByName[name]
	return k, ok
}

// AllKindNames 按字母排序
func AllKindNames() []string {
	return utils.GetMapSortedKeySlice(kindsByName)
}

// extraType values of the extra-metadata layer.
const (
	ExtraTypeNone   int32 = 0
	ExtraTypeSIP008 int32 = 1
	ExtraTypeOOCv1  int32 = 2
)

// Base holds the attributes every record has.
type Base struct {
	ServerAddress *string
	ServerPort    *int32
	Name          *string

	ExtraType *int32
	ProfileID *string

	// derived by Materialize, never persisted
	FinalAddress string
	FinalPort    int32
}

func (b *Base) GetBase() *Base { return b }

func (*Base) sealed() {}

// Bean is implemented by the record types of this package only.
type Bean interface {
	Kind() Kind
	GetBase() *Base
	sealed()
}

func (*SOCKS) Kind() Kind       { return KindSOCKS }
func (*HTTP) Kind() Kind        { return KindHTTP }
func (*Shadowsocks) Kind() Kind { return KindShadowsocks }
func (*VMess) Kind() Kind       { return KindVMess }
func (*VLESS) Kind() Kind       { return KindVLESS }
func (*Trojan) Kind() Kind      { return KindTrojan }
func (*Hysteria) Kind() Kind    { return KindHysteria }
func (*Hysteria2) Kind() Kind   { return KindHysteria2 }
func (*Tuic5) Kind() Kind       { return KindTuic5 }
func (*Juicity) Kind() Kind     { return KindJuicity }
func (*AnyTLS) Kind() Kind      { return KindAnyTLS }
func (*ShadowTLS) Kind() Kind   { return KindShadowTLS }
func (*HTTP3) Kind() Kind       { return KindHTTP3 }
func (*ShadowQUIC) Kind() Kind  { return KindShadowQUIC }
func (*TrustTunnel) Kind() Kind { return KindTrustTunnel }
func (*Balancer) Kind() Kind    { return KindBalancer }

// newRaw returns an empty record of the kind, every field absent.
func newRaw(k Kind) (Bean, bool) {
	switch k {
	case KindSOCKS:
		return &SOCKS{}, true
	case KindHTTP:
		return &HTTP{}, true
	case KindShadowsocks:
		return &Shadowsocks{}, true
	case KindVMess:
		return &VMess{}, true
	case KindVLESS:
		return &VLESS{}, true
	case KindTrojan:
		return &Trojan{}, true
	case KindHysteria:
		return &Hysteria{}, true
	case KindHysteria2:
		return &Hysteria2{}, true
	case KindTuic5:
		return &Tuic5{}, true
	case KindJuicity:
		return &Juicity{}, true
	case KindAnyTLS:
		return &AnyTLS{}, true
	case KindShadowTLS:
		return &ShadowTLS{}, true
	case KindHTTP3:
		return &HTTP3{}, true
	case KindShadowQUIC:
		return &ShadowQUIC{}, true
	case KindTrustTunnel:
		return &TrustTunnel{}, true
	case KindBalancer:
		return &Balancer{}, true
	}
	return nil, false
}

// New returns a materialized record of the kind with every attribute at its default.
func New(k Kind) (Bean, error) {
	b, ok := newRaw(k)
	if !ok {
		return nil, utils.ErrInErr{ErrDesc: "bean.New, unknown kind", ErrDetail: utils.ErrWrongParameter, Data: int32(k)}
	}
	Materialize(b)
	return b, nil
}

// Features are the user toggles some queries depend on.
type Features struct {
	HysteriaPortHopping   bool
	Hysteria2ProviderCore bool
}
