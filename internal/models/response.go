package models

// Response is the envelope every operation answers with.
// Success carries Data, failure carries Message.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK wraps a successful payload.
func OK(data interface{}) *Response {
	return &Response{Success: true, Data: data}
}

// Fail wraps an error into a failure envelope. The error's message is passed through.
func Fail(err error) *Response {
	message := MsgUnknownFailure
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	return &Response{Success: false, Message: message}
}
