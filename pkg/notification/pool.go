// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package notification

import (
	"gopkg.in/typ.v4/sync2"
)

// subscriberPool reuses the slices used to fan a notification out to subscribers outside the hub lock.
var subscriberPool = &sync2.Pool[[]*subscriber]{
	New: func() []*subscriber {
		return make([]*subscriber, 0, 4)
	},
}

func borrowSubscribers() []*subscriber {
	return subscriberPool.Get()[:0]
}

func returnSubscribers(subscribers []*subscriber) {
	clear(subscribers)
	subscriberPool.Put(subscribers[:0])
}
