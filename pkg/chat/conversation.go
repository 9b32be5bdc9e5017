package chat

type Conversation struct {
	Messages []Message
	Model    string
}

func NewConversation(model string) Conversation {
	return Conversation{
		Messages: make([]Message, 0),
		Model:    model,
	}
}

func AddMessage(conv Conversation, msg Message) Conversation {
	messages := make([]Message, len(conv.Messages)+1)
	copy(messages, conv.Messages)
	messages[len(conv.Messages)] = msg

	return Conversation{
		Messages: messages,
		Model:    conv.Model,
	}
}
