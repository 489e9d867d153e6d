// pkg/ai/mock_client.go

package ai

type mockClient struct{}

func NewMock() Client { return &mockClient{} }

func (m *mockClient) SummarizeSweep(d SweepDigest, advisoryCtx string) string {
	return fallbackSummary(d)
}
