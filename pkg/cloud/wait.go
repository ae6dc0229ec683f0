package cloud

import (
	"context"
	"time"

	"k8s.io/apimachinery/pkg/util/wait"

	"github.com/mensylisir/coexm/pkg/common"
	"github.com/mensylisir/coexm/pkg/containerinfra"
	"github.com/mensylisir/coexm/pkg/session"
)

// DefaultWaitInterval is the poll period for cluster state waits.
const DefaultWaitInterval = 10 * time.Second

// WaitOptions tune a wait loop. A zero Timeout waits until ctx is done.
type WaitOptions struct {
	Interval time.Duration
	Timeout  time.Duration
}

func (o WaitOptions) interval() time.Duration {
	if o.Interval <= 0 {
		return DefaultWaitInterval
	}
	return o.Interval
}

// WaitForCOEClusterStatus polls the cluster until it reaches target (e.g.
// CREATE_COMPLETE). Polling bypasses the list cache so progress is visible.
// Any *_FAILED status aborts the wait with the service's status_reason.
func (c *Cloud) WaitForCOEClusterStatus(ctx context.Context, nameOrID, target string, opts WaitOptions) (containerinfra.Object, error) {
	cluster, err := c.GetCOECluster(ctx, nameOrID, nil)
	if err != nil {
		return nil, err
	}
	if cluster == nil {
		return nil, newNotFoundError("COE cluster %s not found.", nameOrID)
	}
	id := cluster.ID()

	var last containerinfra.Object
	condition := func(ctx context.Context) (bool, error) {
		record, err := c.svc.GetCluster(ctx, id)
		if err != nil {
			return false, NewCloudError(err, "Error fetching COE cluster %s", nameOrID)
		}
		last = record

		status := record.StringValue("status")
		c.log.Debugf("COE cluster %s status: %s", nameOrID, status)
		if status == target {
			return true, nil
		}
		if common.IsFailedStatus(status) {
			reason := record.StringValue("status_reason")
			return false, NewCloudError(nil, "COE cluster %s reached status %s: %s", nameOrID, status, reason)
		}
		return false, nil
	}

	if err := c.poll(ctx, opts, condition); err != nil {
		if wait.Interrupted(err) {
			return nil, NewCloudError(err, "Timed out waiting for COE cluster %s to reach status %s", nameOrID, target)
		}
		return nil, err
	}
	return last, nil
}

// WaitForCOEClusterDeleted polls until the cluster is gone. A cluster that
// never existed is already gone, so resolution failure returns nil.
func (c *Cloud) WaitForCOEClusterDeleted(ctx context.Context, nameOrID string, opts WaitOptions) error {
	cluster, err := c.GetCOECluster(ctx, nameOrID, nil)
	if err != nil {
		return err
	}
	if cluster == nil {
		return nil
	}
	id := cluster.ID()

	condition := func(ctx context.Context) (bool, error) {
		record, err := c.svc.GetCluster(ctx, id)
		if err != nil {
			if session.IsNotFound(err) {
				return true, nil
			}
			return false, NewCloudError(err, "Error fetching COE cluster %s", nameOrID)
		}

		status := record.StringValue("status")
		c.log.Debugf("COE cluster %s status: %s", nameOrID, status)
		if status == common.StatusDeleteFailed {
			reason := record.StringValue("status_reason")
			return false, NewCloudError(nil, "COE cluster %s reached status %s: %s", nameOrID, status, reason)
		}
		return false, nil
	}

	if err := c.poll(ctx, opts, condition); err != nil {
		if wait.Interrupted(err) {
			return NewCloudError(err, "Timed out waiting for COE cluster %s to be deleted", nameOrID)
		}
		return err
	}
	c.invalidate(common.CacheKeyCOEClusters)
	return nil
}

func (c *Cloud) poll(ctx context.Context, opts WaitOptions, condition wait.ConditionWithContextFunc) error {
	if opts.Timeout > 0 {
		return wait.PollUntilContextTimeout(ctx, opts.interval(), opts.Timeout, true, condition)
	}
	return wait.PollUntilContextCancel(ctx, opts.interval(), true, condition)
}
