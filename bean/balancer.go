package bean

import (
	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

const balancerVersion = 3

const (
	BalancerTypeList  int32 = 0
	BalancerTypeGroup int32 = 1
)

// Balancer picks among other stored profiles, either an explicit id list or a whole group.
// It has no endpoint span.
type Balancer struct {
	Base

	Type          *int32
	Strategy      *string
	Proxies       []int64
	GroupID       *int64
	ProbeURL      *string
	ProbeInterval *int32
	NameFilter    *string
	NameFilter1   *string
}

func encodeBalancer(out *wire.Output, b *Balancer) {
	out.WriteInt(balancerVersion)
	out.Int32(b.Type)
	out.Str(b.Strategy)
	t := utils.Val(b.Type)
	switch t {
	case BalancerTypeList:
		out.WriteLongList(b.Proxies)
	case BalancerTypeGroup:
		out.Int64(b.GroupID)
	}
	out.Str(b.ProbeURL)
	out.Int32(b.ProbeInterval)
	if t == BalancerTypeGroup {
		out.Str(b.NameFilter)
		out.Str(b.NameFilter1)
	}
}

func decodeBalancer(in *wire.Input, b *Balancer) {
	version := in.ReadVersion("balancer layer", balancerVersion)
	b.Type = in.Int32()
	b.Strategy = in.Str()
	if in.Err() != nil {
		return
	}
	switch *b.Type {
	case BalancerTypeList:
		b.Proxies = in.ReadLongList()
	case BalancerTypeGroup:
		b.GroupID = in.Int64()
	default:
		in.Fail(wire.UnknownDiscriminator("balancer type", *b.Type))
		return
	}
	if version >= 1 {
		b.ProbeURL = in.Str()
		b.ProbeInterval = in.Int32()
	}
	if version >= 2 && *b.Type == BalancerTypeGroup {
		b.NameFilter = in.Str()
	}
	if version >= 3 && *b.Type == BalancerTypeGroup {
		b.NameFilter1 = in.Str()
	}
}
