package notification

import (
	"fmt"
	"sync"
	"testing"
	"time"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dinkside/rally-core/pkg/models"
	"github.com/dinkside/rally-core/pkg/testsetup"
)

func numbered(playerID string, i int) models.Notification {
	return New(models.NotificationExperience, playerID, testsetup.Epoch.Add(time.Duration(i)*time.Second), fmt.Sprintf("n%d", i), nil)
}

func titles(list []models.Notification) []string {
	result := make([]string, 0, len(list))
	for _, n := range list {
		result = append(result, n.Title)
	}
	return result
}

func TestFeed_NeverExceedsCapacityAndDropsOldestFirst(t *testing.T) {
	feed := NewFeed(DefaultCapacity)
	for i := 1; i <= 25; i++ {
		evicted := feed.Push(numbered("p1", i))
		if i <= 20 {
			assert.Nil(t, evicted)
		} else {
			require.NotNil(t, evicted)
			assert.Equal(t, fmt.Sprintf("n%d", i-20), evicted.Title)
		}
		assert.LessOrEqual(t, feed.Len(), 20)
	}

	list := feed.List()
	require.Len(t, list, 20)
	assert.Equal(t, "n25", list[0].Title)
	assert.Equal(t, "n6", list[19].Title)
}

func TestFeed_SmallCapacity(t *testing.T) {
	feed := NewFeed(3)
	for i := 1; i <= 4; i++ {
		feed.Push(numbered("p1", i))
	}
	assert.Equal(t, []string{"n4", "n3", "n2"}, titles(feed.List()))
	assert.Equal(t, DefaultCapacity, NewFeed(0).Capacity())
}

func TestHub_FeedsArePerPlayer(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	hub := NewHub(2)

	hub.Publish(g.TestScope, numbered("a", 1), numbered("b", 2), numbered("a", 3), numbered("a", 4))

	g.Expect(titles(hub.Notifications("a"))).To(Equal([]string{"n4", "n3"}))
	g.Expect(titles(hub.Notifications("b"))).To(Equal([]string{"n2"}))
	g.Expect(hub.Notifications("nobody")).To(BeEmpty())
}

func TestHub_SubscribeReceivesOnlyOwnNotifications(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	hub := NewHub(DefaultCapacity)

	ch, cancel := hub.Subscribe("a", 4)
	hub.Publish(g.TestScope, numbered("b", 1), numbered("a", 2))

	g.Eventually(ch).Should(Receive(WithTransform(func(n models.Notification) string { return n.Title }, Equal("n2"))))
	g.Consistently(ch, 20*time.Millisecond).ShouldNot(Receive())

	cancel()
	cancel()
	g.Eventually(ch).Should(BeClosed())
	hub.Publish(g.TestScope, numbered("a", 3))
	g.Expect(hub.Notifications("a")).To(HaveLen(2))
}

func TestHub_SlowSubscriberDoesNotBlock(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	hub := NewHub(DefaultCapacity)
	ch, _ := hub.Subscribe("a", 1)

	hub.Publish(g.TestScope, numbered("a", 1), numbered("a", 2), numbered("a", 3))

	g.Expect(hub.Notifications("a")).To(HaveLen(3))
	g.Expect(ch).To(HaveLen(1))
}

func TestHub_CloseClosesSubscribers(t *testing.T) {
	g := testsetup.ParallelWithGomega(t)
	hub := NewHub(DefaultCapacity)
	ch, cancel := hub.Subscribe("a", 1)

	hub.Close()
	g.Expect(ch).To(BeClosed())
	cancel()

	late, _ := hub.Subscribe("a", 1)
	g.Expect(late).To(BeClosed())
	hub.Publish(g.TestScope, numbered("a", 1))
	g.Expect(hub.Notifications("a")).To(BeEmpty())
}

func TestHub_ConcurrentPublishAndUnsubscribe(t *testing.T) {
	scope := testsetup.NewTestScope()
	defer scope.Finish()
	hub := NewHub(DefaultCapacity)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				hub.Publish(scope, numbered("a", i*100+j))
			}
		}(i)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				_, cancel := hub.Subscribe("a", 1)
				cancel()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, hub.Notifications("a"), DefaultCapacity)
}

func TestBuilders(t *testing.T) {
	match := &models.Match{ID: "m1", ProposalID: "p1", PlayerIDs: [2]string{"a", "b"}}

	confirmed := MatchConfirmed("b", testsetup.Epoch, match)
	assert.Equal(t, "a", confirmed.Payload[models.PayloadOpponentID])
	assert.NotEmpty(t, confirmed.ID)

	summary := MatchSummary("a", testsetup.Epoch, "m1", true, 1000, 1016)
	assert.Equal(t, 16, summary.Payload[models.PayloadRatingDelta])
	assert.Equal(t, "Match won", summary.Title)

	level := LevelUp("a", testsetup.Epoch, 1, 2)
	assert.Equal(t, models.NotificationLevelUp, level.Type)
	assert.Equal(t, 2, level.Payload[models.PayloadLevel])
}
