package providers

// CompletionResponse is the provider-neutral result of one inference
// call. Handlers only ever see Response; Usage feeds the token metrics.
type CompletionResponse struct {
	ID       string
	Model    string
	Response string
	Usage    Usage
}

// Usage counts the tokens billed for a single completion.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

func (u Usage) Total() int {
	return u.PromptTokens + u.CompletionTokens
}
