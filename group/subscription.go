/*
Package group maintains subscription groups: the subscription record itself and the refresh
that reconciles a freshly fetched profile list with the profiles already stored in the group.

Fetching is left to the caller; refresh works on the downloaded text.
*/
package group

import (
	"regexp"
	"strconv"

	"github.com/e1732a364fed/vs_profile/utils"
	"github.com/e1732a364fed/vs_profile/wire"
)

const (
	SubscriptionTypeRaw    int32 = 0
	SubscriptionTypeOOCv1  int32 = 1
	SubscriptionTypeSIP008 int32 = 2
)

const (
	subscriptionVersion      = 7
	subscriptionShareVersion = 6
)

// Subscription is the persisted settings of a subscription group. Pointer fields are absent
// until Materialize.
type Subscription struct {
	Type                    *int32
	Link                    *string
	Deduplication           *bool
	UpdateWhenConnectedOnly *bool
	CustomUserAgent         *string
	AutoUpdate              *bool
	AutoUpdateDelay         *int32 // 分钟
	LastUpdated             *int64 // unix 秒
	BytesUsed               *int64
	BytesRemaining          *int64
	ExpiryDate              *int64
	NameFilter              *string
}

func (s *Subscription) Materialize() {
	utils.SetDefault(&s.Type, SubscriptionTypeRaw)
	utils.SetDefault(&s.Link, "")
	utils.SetDefault(&s.Deduplication, false)
	utils.SetDefault(&s.UpdateWhenConnectedOnly, false)
	utils.SetDefault(&s.CustomUserAgent, "")
	utils.SetDefault(&s.AutoUpdate, false)
	utils.SetDefault(&s.AutoUpdateDelay, 1440)
	utils.SetDefault(&s.LastUpdated, 0)
	utils.SetDefault(&s.BytesUsed, 0)
	utils.SetDefault(&s.BytesRemaining, 0)
	utils.SetDefault(&s.ExpiryDate, 0)
	utils.SetDefault(&s.NameFilter, "")
}

func (s *Subscription) Encode() []byte {
	out := wire.NewOutput()
	out.WriteInt(subscriptionVersion)
	out.Int32(s.Type)
	out.Str(s.Link)
	out.Bool(s.Deduplication)
	out.Bool(s.UpdateWhenConnectedOnly)
	out.Str(s.CustomUserAgent)
	out.Bool(s.AutoUpdate)
	out.Int32(s.AutoUpdateDelay)
	out.Int64(s.LastUpdated)
	out.Int64(s.BytesUsed)
	out.Int64(s.BytesRemaining)
	out.Int64(s.ExpiryDate)
	out.Str(s.NameFilter)
	return out.Bytes()
}

// EncodeShare leaves out the local update schedule.
func (s *Subscription) EncodeShare() []byte {
	out := wire.NewOutput()
	out.WriteInt(subscriptionShareVersion)
	out.Int32(s.Type)
	out.Str(s.Link)
	out.Bool(s.Deduplication)
	out.Bool(s.UpdateWhenConnectedOnly)
	out.Str(s.CustomUserAgent)
	out.Int64(s.BytesUsed)
	out.Int64(s.BytesRemaining)
	out.Int64(s.ExpiryDate)
	out.Str(s.NameFilter)
	return out.Bytes()
}

func DecodeSubscription(data []byte) (*Subscription, error) {
	s := &Subscription{}
	in := wire.NewInput(data)
	s.decode(in)
	if err := in.Err(); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "decode subscription", ErrDetail: wireErr(err), Data: err}
	}
	s.Materialize()
	return s, nil
}

func DecodeSubscriptionShare(data []byte) (*Subscription, error) {
	s := &Subscription{}
	in := wire.NewInput(data)
	s.decodeShare(in)
	if err := in.Err(); err != nil {
		return nil, utils.ErrInErr{ErrDesc: "decode shared subscription", ErrDetail: wireErr(err), Data: err}
	}
	s.Materialize()
	return s, nil
}

func wireErr(err error) error {
	if ee, ok := err.(utils.ErrInErr); ok && ee.ErrDetail != nil {
		return ee.ErrDetail
	}
	return err
}

func (s *Subscription) decode(in *wire.Input) {
	version := in.ReadVersion("subscription", subscriptionVersion)
	s.Type = in.Int32()
	if in.Err() != nil {
		return
	}
	typ := *s.Type
	oocToken := version < 7 && typ == SubscriptionTypeOOCv1

	if oocToken {
		in.SkipString() // token
		s.Link = utils.Ptr("")
	} else {
		s.Link = in.Str()
	}
	if version < 6 {
		in.SkipBool() // forceResolve
	}
	s.Deduplication = in.Bool()
	if version < 2 {
		in.SkipBool()
	}
	s.UpdateWhenConnectedOnly = in.Bool()
	s.CustomUserAgent = in.Str()
	s.AutoUpdate = in.Bool()
	s.AutoUpdateDelay = in.Int32()
	if version <= 3 {
		s.LastUpdated = in.WidenInt()
	} else {
		s.LastUpdated = in.Int64()
	}

	if typ == SubscriptionTypeRaw && version == 3 {
		in.SkipString() // subscriptionUserinfo
	}
	if typ != SubscriptionTypeRaw || version >= 4 {
		s.BytesUsed = in.Int64()
		s.BytesRemaining = in.Int64()
	}
	if version >= 4 {
		s.ExpiryDate = in.Int64()
	}
	if version >= 5 {
		s.NameFilter = in.Str()
	}

	if oocToken {
		in.SkipString() // username
		if version <= 3 {
			in.SkipInt()
		}
		in.SkipStringList() // protocols
		// 更早的版本没有这几个集合
		if in.Err() == nil && in.Remaining() > 0 {
			in.SkipStringList()
			if version >= 1 {
				in.SkipStringList()
			}
			in.SkipStringList()
		}
	}
}

func (s *Subscription) decodeShare(in *wire.Input) {
	version := in.ReadVersion("shared subscription", subscriptionShareVersion)
	s.Type = in.Int32()
	if in.Err() != nil {
		return
	}
	typ := *s.Type
	oocToken := version < 6 && typ == SubscriptionTypeOOCv1

	if oocToken {
		in.SkipString()
		s.Link = utils.Ptr("")
	} else {
		s.Link = in.Str()
	}
	if version < 5 {
		in.SkipBool()
	}
	s.Deduplication = in.Bool()
	if version < 1 {
		in.SkipBool()
	}
	s.UpdateWhenConnectedOnly = in.Bool()
	s.CustomUserAgent = in.Str()

	if typ == SubscriptionTypeRaw && version == 2 {
		in.SkipString()
	}
	if typ != SubscriptionTypeRaw || version >= 3 {
		s.BytesUsed = in.Int64()
		s.BytesRemaining = in.Int64()
	}
	if version >= 3 {
		s.ExpiryDate = in.Int64()
	}
	if version >= 4 {
		s.NameFilter = in.Str()
	}

	if oocToken {
		in.SkipString()
		if version <= 2 {
			in.SkipInt()
		}
		in.SkipStringList()
	}
}

var userinfoRegexps = map[string]*regexp.Regexp{
	"upload":   regexp.MustCompile(`upload=([0-9]+)`),
	"download": regexp.MustCompile(`download=([0-9]+)`),
	"total":    regexp.MustCompile(`total=([0-9]+)`),
	"expire":   regexp.MustCompile(`expire=([0-9]+)`),
}

func userinfoValue(header, key string) int64 {
	m := userinfoRegexps[key].FindStringSubmatch(header)
	if len(m) < 2 {
		return -1
	}
	v, err := strconv.ParseInt(m[1], 10, 64)
	if err != nil {
		return -1
	}
	return v
}

// ApplyUserinfo records the traffic counters of a Subscription-Userinfo response header,
// e.g. "upload=1; download=2; total=10; expire=1700000000". -1 means unknown.
func (s *Subscription) ApplyUserinfo(header string) {
	if header == "" {
		s.BytesUsed = utils.Ptr(int64(-1))
		s.BytesRemaining = utils.Ptr(int64(-1))
		s.ExpiryDate = utils.Ptr(int64(-1))
		return
	}

	upload := userinfoValue(header, "upload")
	download := userinfoValue(header, "download")
	total := userinfoValue(header, "total")

	if upload > 0 || download > 0 {
		var used int64
		if upload > 0 {
			used += upload
		}
		if download > 0 {
			used += download
		}
		s.BytesUsed = utils.Ptr(used)
		if total > 0 {
			s.BytesRemaining = utils.Ptr(total - used)
		} else {
			s.BytesRemaining = utils.Ptr(int64(-1))
		}
	} else {
		s.BytesUsed = utils.Ptr(int64(-1))
		s.BytesRemaining = utils.Ptr(int64(-1))
	}
	s.ExpiryDate = utils.Ptr(userinfoValue(header, "expire"))
}
