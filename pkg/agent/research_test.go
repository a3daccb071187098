package agent_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/agent"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/claims"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/oracle"
	"github.com/DevolRaman750/AI-Research-Verification-Agent/pkg/web"
)

type stubSearch struct{ results []web.SearchResult }

func (s *stubSearch) Search(ctx context.Context, query string, limit int) ([]web.SearchResult, error) {
	return s.results, nil
}

type stubFetcher struct{ html map[string]string }

func (s *stubFetcher) Fetch(ctx context.Context, url string) (string, error) {
	return s.html[url], nil
}

func TestResearchAgentEndToEndHighConfidence(t *testing.T) {
	longText := "<html><head><title>Water facts</title></head><body>" +
		"Water boils at 100 degrees Celsius at standard atmospheric pressure according to this reference page about thermodynamics." +
		" The same figure appears in standard chemistry textbooks and in the reference tables published by national measurement institutes." +
		"</body></html>"

	env := &web.Environment{
		Search:  &stubSearch{results: []web.SearchResult{{URL: "https://a.example", Title: "a"}, {URL: "https://b.example", Title: "b"}}},
		Fetcher: &stubFetcher{html: map[string]string{"https://a.example": longText, "https://b.example": longText}},
	}

	extractionResponse := "- Water boils at 100 degrees Celsius at standard atmospheric pressure\n"
	fakeOracle := &oracle.Fake{Responses: []string{extractionResponse, extractionResponse, "Water boils at 100C at standard pressure, per agreeing sources."}}
	extractor := claims.NewExtractor(fakeOracle)
	synthesizer := agent.NewSynthesizer(fakeOracle)

	ra := agent.NewResearchAgent(env, extractor, synthesizer)
	result := ra.Research(context.Background(), "At what temperature does water boil?", 2)

	require.NotEmpty(t, result.Answer)
	require.NotEmpty(t, result.Evidence)
}

func TestResearchAgentNoDocumentsYieldsLowConfidence(t *testing.T) {
	env := &web.Environment{Search: &stubSearch{}, Fetcher: &stubFetcher{}}
	extractor := claims.NewExtractor(&oracle.Fake{})
	synthesizer := agent.NewSynthesizer(&oracle.Fake{})

	ra := agent.NewResearchAgent(env, extractor, synthesizer)
	result := ra.Research(context.Background(), "q", 2)

	require.Equal(t, "LOW", string(result.ConfidenceLevel))
	require.Empty(t, result.Evidence)
}
