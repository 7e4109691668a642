package entity

// CallerIdentity is the resolved AWS identity of the active profile.
type CallerIdentity struct {
	AccountID string `json:"account_id"`
	Arn       string `json:"arn"`
	UserID    string `json:"user_id"`
}

// WebACLRef references a deployed Web ACL. LockToken is required by the
// WAF API for every update or delete (optimistic concurrency).
type WebACLRef struct {
	Id        string `json:"id"`
	Name      string `json:"name"`
	Arn       string `json:"arn"`
	LockToken string `json:"lock_token,omitempty"`
}

// GraphqlApi is the subset of the AppSync API description the stack needs.
type GraphqlApi struct {
	ApiId string `json:"api_id"`
	Name  string `json:"name"`
	Arn   string `json:"arn"`
}
