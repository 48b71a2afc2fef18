package history

// Record is a history row as returned by GET /v1/histories.
type Record struct {
	ID         int64  `json:"id"`
	Message    string `json:"message"` // JSON-encoded {"sender": ..., "content": ...}
	Status     bool   `json:"status"`
	ReceivedAt int64  `json:"received_at"`
	CreatedAt  int64  `json:"created_at"`
	Req        string `json:"req"`
	Resp       string `json:"resp"`
	Err        string `json:"err"`
}

// ListResponse is the body of a successful list request.
type ListResponse struct {
	List  []Record `json:"list"`
	Count int      `json:"count"`
}

// Message is the decoded form of Record.Message. Only the fields the
// table shows are kept.
type Message struct {
	Sender  string `json:"sender"`
	Content string `json:"content"`
}

// DisplayRecord is a Record reshaped for rendering.
type DisplayRecord struct {
	Key        int64  `json:"key"`
	ID         int64  `json:"id"`
	Sender     string `json:"sender"`
	Content    string `json:"content"`
	Status     string `json:"status"`
	StatusOK   bool   `json:"-"`
	ReceivedAt string `json:"received_at"`
	CreatedAt  string `json:"created_at"`

	// Raw fields used by the detail view.
	Message string `json:"message"`
	Req     string `json:"req"`
	Resp    string `json:"resp"`
	Err     string `json:"err"`
}

// Page is one normalized list response.
type Page struct {
	Records []DisplayRecord `json:"list"`
	Total   int             `json:"count"`
}
