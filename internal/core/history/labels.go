package history

import "strings"

// Labels holds the user-visible strings for one locale.
type Labels struct {
	Success string
	Failure string

	DetailMessage  string
	DetailRequest  string
	DetailResponse string
	DetailError    string

	ColumnID         string
	ColumnSender     string
	ColumnContent    string
	ColumnStatus     string
	ColumnReceivedAt string
	ColumnCreatedAt  string

	RequestFailed string
}

var chinese = Labels{
	Success: "成功",
	Failure: "失败",

	DetailMessage:  "消息",
	DetailRequest:  "发送请求",
	DetailResponse: "请求响应",
	DetailError:    "错误详情",

	ColumnID:         "Id",
	ColumnSender:     "通知方式",
	ColumnContent:    "内容",
	ColumnStatus:     "状态",
	ColumnReceivedAt: "消息接收时间",
	ColumnCreatedAt:  "消息发送时间",

	RequestFailed: "请求错误:(",
}

var english = Labels{
	Success: "Success",
	Failure: "Failed",

	DetailMessage:  "Message",
	DetailRequest:  "Request",
	DetailResponse: "Response",
	DetailError:    "Error",

	ColumnID:         "Id",
	ColumnSender:     "Sender",
	ColumnContent:    "Content",
	ColumnStatus:     "Status",
	ColumnReceivedAt: "Received",
	ColumnCreatedAt:  "Created",

	RequestFailed: "Request failed :(",
}

// LabelsFor returns the label set for a locale. Unknown locales fall
// back to Chinese.
func LabelsFor(locale string) Labels {
	switch strings.ToLower(strings.TrimSpace(locale)) {
	case "en", "en-us", "en_us", "english":
		return english
	default:
		return chinese
	}
}

// StatusLabel maps a delivery status to its label.
func (l Labels) StatusLabel(ok bool) string {
	if ok {
		return l.Success
	}
	return l.Failure
}
