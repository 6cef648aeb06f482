package model

// Profile 业务账号的公开资料快照，每次请求从上游重新拉取
type Profile struct {
	Username          string
	ID                string
	Name              string
	ProfilePictureURL string
	Biography         string
	Website           string
	FollowersCount    int
	FollowsCount      int
	MediaCount        int
	Category          *string
}

// BusinessDiscovery 上游 business_discovery 的校验后结果
type BusinessDiscovery struct {
	Profile Profile
	Media   []Post
}
