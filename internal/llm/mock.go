package llm

import "context"

// MockClient allows tests to run without a live LLM.
type MockClient struct {
	Response  string
	Embedding []float32
	Err       error
}

func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	return m.Response, m.Err
}

func (m *MockClient) GenerateChat(ctx context.Context, messages []ChatMessage) (string, error) {
	return m.Response, m.Err
}

func (m *MockClient) CreateEmbedding(ctx context.Context, text string) ([]float32, error) {
	return m.Embedding, m.Err
}
