package dto

type PushSubscribeRequest struct {
	Endpoint string            `json:"endpoint"`
	Keys     map[string]string `json:"keys,omitempty"`
	MemberID string            `json:"memberId,omitempty"`
}

type PushSubscribeResponse struct {
	Success        bool   `json:"success"`
	SubscriptionID string `json:"subscriptionId"`
}

type PushBroadcastRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type PushBroadcastResponse struct {
	Success bool `json:"success"`
	Sent    int  `json:"sent"`
	Removed int  `json:"removed"`
	Failed  int  `json:"failed"`
}
