package response

// Terminal replies, returned when neither generation path produced text.
const (
	MessageLLMUnavailable  = "Sorry, I can't help you with that now. There are problems with the LLM service."
	MessageProcessingError = "Sorry, something went wrong while processing your request."
)
