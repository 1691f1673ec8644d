package appdelegate

import (
	"encoding/json"
	"maps"
	"sync"

	"github.com/takimoto3/appdelegate/payload"
)

var userInfoBufSize = 512

var userInfoPool = sync.Pool{
	New: func() any {
		b := make([]byte, 0, userInfoBufSize)
		return &b
	},
}

// MarshalJSON implements the `json.Marshaler` interface. Custom data is
// merged at the root level, alongside the `aps` dictionary.
func (n *RemoteNotification) MarshalJSON() ([]byte, error) {
	if len(n.UserInfo) == 0 {
		return json.Marshal(map[string]any{payload.ServiceKey: n.APS})
	}
	mp := maps.Clone(n.UserInfo)
	mp[payload.ServiceKey] = n.APS
	return json.Marshal(mp)
}

// MarshalJSONFast renders the notification with the payload package's
// encoders. User info values are limited to the types payload.EncodeValue
// supports.
func (n *RemoteNotification) MarshalJSONFast() ([]byte, error) {
	apsBytes, err := n.APS.MarshalJSONFast()
	if err != nil {
		return nil, err
	}

	var userInfoBytes []byte
	if len(n.UserInfo) > 0 {
		ptr := userInfoPool.Get().(*[]byte)
		b := (*ptr)[:0]
		defer func() {
			*ptr = b
			userInfoPool.Put(ptr)
		}()

		b, err = marshalUserInfo(b, n.UserInfo)
		if err != nil {
			return nil, err
		}
		userInfoBytes = b
	}

	// 8 = { } + "aps": + comma
	b := make([]byte, 0, len(apsBytes)+len(userInfoBytes)+8)
	b = append(b, '{')
	b = append(b, `"aps":`...)
	b = append(b, apsBytes...)
	if len(userInfoBytes) > 0 {
		b = append(b, ',')
		b = append(b, userInfoBytes...)
	}
	b = append(b, '}')
	return b, nil
}

func marshalUserInfo(b []byte, data map[string]any) ([]byte, error) {
	first := true
	for k, v := range data {
		if !first {
			b = append(b, ',')
		}
		first = false
		var err error
		b, err = payload.EncodeValue(b, k)
		if err != nil {
			return nil, err
		}
		b = append(b, ':')
		b, err = payload.EncodeValue(b, v)
		if err != nil {
			return nil, err
		}
	}
	return b, nil
}
