package consumer

import (
	"context"

	"github.com/alitto/pond/v2"
)

// PollOnce runs a single poll of c outside Run and waits for the groups it submitted
func PollOnce(ctx context.Context, c Consumer) (int, error) {
	n, err := StartPoll(ctx, c)
	Wait(c)
	return n, err
}

// StartPoll runs a single poll of c without waiting for its groups
func StartPoll(ctx context.Context, c Consumer) (int, error) {
	cc := c.(*consumer)
	if cc.pool == nil {
		cc.pool = pond.NewPool(cc.config.PoolSize)
	}
	return cc.pollOnce(ctx)
}

// Wait blocks until every submitted group of c has finished
func Wait(c Consumer) {
	c.(*consumer).inflight.Wait()
}
