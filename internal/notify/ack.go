// Package notify carries the session-scoped notification state and the
// ticking source behind countdown views. Acknowledgements live only in the
// session; they never touch the task record or the persisted snapshot.
package notify

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

const ackSessionKey = "acknowledged_tasks"

func init() {
	// Session values are gob-encoded by the session backend.
	gob.Register([]int64{})
}

// AcknowledgedIDs returns the set of task ids acknowledged in the current
// session.
func AcknowledgedIDs(c *gin.Context) map[int64]struct{} {
	session := sessions.Default(c)
	ids, _ := session.Get(ackSessionKey).([]int64)

	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Acknowledge suppresses the due-soon notification for a task for the
// remainder of the session.
func Acknowledge(c *gin.Context, taskID int64) error {
	session := sessions.Default(c)
	ids, _ := session.Get(ackSessionKey).([]int64)

	for _, id := range ids {
		if id == taskID {
			return nil
		}
	}

	session.Set(ackSessionKey, append(ids, taskID))
	return session.Save()
}
