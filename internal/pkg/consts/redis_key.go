package consts

const (
	FollowerHistoryKey = "follower:history:"
)

const (
	FollowerSnapshotJobLock = "lock:follower:snapshot:"
)
