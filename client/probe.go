package client

import (
	"context"
	"net/http"
	"time"

	pkgerrors "github.com/absmach/edgefl/pkg/errors"
	"github.com/absmach/edgefl/pkg/fl"
	"golang.org/x/sync/errgroup"
)

const defaultProbeLimit = 8

// ProbeNodes issues a GET against every node URL and reports which ones
// answered. Unreachable nodes are recorded in the result, not returned as
// errors; only a cancelled context fails the whole probe.
func (c *Client) ProbeNodes(ctx context.Context, nodeURLs []string) ([]fl.NodeStatus, error) {
	urls := fl.CleanNodeURLs(nodeURLs)
	if len(urls) == 0 {
		return nil, pkgerrors.ErrMissingNodes
	}

	statuses := make([]fl.NodeStatus, len(urls))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.probeLimit)

	for i, u := range urls {
		g.Go(func() error {
			statuses[i] = c.probe(ctx, ServerURL(u))

			return ctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return statuses, err
	}

	return statuses, nil
}

func (c *Client) probe(ctx context.Context, nodeURL string) fl.NodeStatus {
	status := fl.NodeStatus{URL: nodeURL}
	defer func(begin time.Time) {
		probeDuration.WithLabelValues(reachableLabel(status.Reachable)).Observe(time.Since(begin).Seconds())
	}(time.Now())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, nodeURL, http.NoBody)
	if err != nil {
		status.Error = err.Error()

		return status
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		status.Error = err.Error()

		return status
	}
	defer resp.Body.Close()

	status.StatusCode = resp.StatusCode
	status.Reachable = true

	return status
}

func reachableLabel(ok bool) string {
	if ok {
		return "true"
	}

	return "false"
}
